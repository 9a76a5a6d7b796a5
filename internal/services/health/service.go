package health

import "time"

// SessionCounter reports how many builder sessions are live.
type SessionCounter interface {
	Len() int
}

// Status is the health payload.
type Status struct {
	OK            bool   `json:"ok"`
	Sessions      int    `json:"sessions"`
	AIProvider    string `json:"aiProvider,omitempty"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// Service encapsulates health-related checks.
type Service struct {
	Sessions SessionCounter
	Provider string
	started  time.Time
	now      func() time.Time
}

// NewService constructs a new health service.
func NewService(sessions SessionCounter, provider string) *Service {
	return &Service{Sessions: sessions, Provider: provider, started: time.Now(), now: time.Now}
}

// Status returns the health payload. It never probes the model; /api/ai/status does that.
func (s *Service) Status() Status {
	st := Status{OK: true, AIProvider: s.Provider}
	if s.Sessions != nil {
		st.Sessions = s.Sessions.Len()
	}
	st.UptimeSeconds = int64(s.now().Sub(s.started) / time.Second)
	return st
}
