// Package session keeps per-conversation turn history in process memory.
// Sessions are created lazily, only ever appended to, and evicted after a
// TTL of inactivity so the map cannot grow without bound.
package session

import (
	"sync"
	"time"

	"github.com/chippyinn/concierge/internal/domain"
)

// Store maps session keys to turn histories.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*entry
	now      func() time.Time
}

type entry struct {
	turns    []domain.Turn
	deadline time.Time
}

// NewStore creates a session store with the given inactivity TTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Append adds a turn to the session, creating it if needed, and refreshes the
// session's eviction deadline.
func (s *Store) Append(id string, turn domain.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.now().After(e.deadline) {
		e = &entry{}
		s.sessions[id] = e
	}
	e.turns = append(e.turns, turn)
	e.deadline = s.now().Add(s.ttl)
}

// History returns a copy of the session's turns, oldest first.
// An unknown or expired session yields an empty history.
func (s *Store) History(id string) []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok || s.now().After(e.deadline) {
		return nil
	}
	return append([]domain.Turn(nil), e.turns...)
}

// Sweep drops expired sessions and returns how many were evicted.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, e := range s.sessions {
		if now.After(e.deadline) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
