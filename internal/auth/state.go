package auth

import (
	"sync"
	"time"
)

type pendingSignIn struct {
	sessionID string
	provider  string
	expires   time.Time
}

// stateStore keeps OAuth state values until they are used or expire.
type stateStore struct {
	mu    sync.Mutex
	items map[string]pendingSignIn
	now   func() time.Time
}

func newStateStore(now func() time.Time) *stateStore {
	return &stateStore{items: make(map[string]pendingSignIn), now: now}
}

func (s *stateStore) put(state string, p pendingSignIn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[state] = p
	s.sweep()
}

// consume removes state and returns its sign-in when it exists, has not expired and belongs to provider.
func (s *stateStore) consume(state, provider string) (pendingSignIn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[state]
	if !ok {
		return pendingSignIn{}, false
	}
	delete(s.items, state)
	if s.now().After(p.expires) || p.provider != provider {
		return pendingSignIn{}, false
	}
	return p, true
}

// sweep drops expired states. Callers hold mu.
func (s *stateStore) sweep() {
	now := s.now()
	for k, p := range s.items {
		if now.After(p.expires) {
			delete(s.items, k)
		}
	}
}
