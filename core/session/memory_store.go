package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Suitable for development, tests
// and single-instance deployments.
type MemoryStore[Data any] struct {
	mu       sync.RWMutex
	sessions map[string]Session[Data]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore[Data any]() *MemoryStore[Data] {
	return &MemoryStore[Data]{
		sessions: make(map[string]Session[Data]),
	}
}

// Get returns a copy of the stored session.
func (s *MemoryStore[Data]) Get(_ context.Context, id string) (Session[Data], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session[Data]{}, ErrNotFound
	}
	return sess, nil
}

// Save stores sess if its version follows the stored one.
func (s *MemoryStore[Data]) Save(_ context.Context, sess Session[Data]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if existing, ok := s.sessions[sess.ID]; ok {
		current = existing.Version
	}
	if sess.Version != current+1 {
		return ErrConflict
	}

	s.sessions[sess.ID] = sess
	return nil
}

// Delete removes the session.
func (s *MemoryStore[Data]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// DeleteExpired removes all expired sessions and returns how many were removed.
func (s *MemoryStore[Data]) DeleteExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var n int64
	for id, sess := range s.sessions {
		if now.After(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions.
func (s *MemoryStore[Data]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
