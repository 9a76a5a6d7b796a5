package builder

import (
	"context"
	"sync"
	"time"

	"resume-builder/internal/shared/telemetry"
)

// Store holds builder sessions.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	GetOrCreate(ctx context.Context, id string) (Session, error)
	// Update applies fn to a copy of the session and commits it only when fn succeeds.
	Update(ctx context.Context, id string, fn func(*Session) error) (Session, error)
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory and evicts idle ones.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs a MemoryStore. A ttl of zero disables eviction.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the session.
func (s *MemoryStore) Get(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// GetOrCreate returns the session, creating a fresh one when absent.
func (s *MemoryStore) GetOrCreate(ctx context.Context, id string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(id).Clone(), nil
}

// Update runs fn under the write lock. Missing sessions are created first.
func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*Session) error) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.getOrCreateLocked(id)
	draft := current.Clone()
	if err := fn(&draft); err != nil {
		return current.Clone(), err
	}
	now := s.now().UTC()
	draft.UpdatedAt = now
	draft.Resume.UpdatedAt = &now
	s.sessions[id] = &draft
	return draft.Clone(), nil
}

// Delete removes a session.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep evicts sessions idle for longer than the ttl and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper sweeps on every tick until ctx is cancelled.
func (s *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if n := s.Sweep(t); n > 0 {
				telemetry.Info("session.sweep", map[string]any{"evicted": n, "remaining": s.Len()})
			}
		}
	}
}

func (s *MemoryStore) getOrCreateLocked(id string) *Session {
	sess, ok := s.sessions[id]
	if !ok {
		fresh := NewSession(id, s.now().UTC())
		sess = &fresh
		s.sessions[id] = sess
	}
	return sess
}
