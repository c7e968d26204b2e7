package progress

import (
	"context"
	"fmt"
	"sync"
)

// Store persists learner progress.
type Store interface {
	// Get returns the user's progress, or empty progress for a user with
	// no completions yet.
	Get(ctx context.Context, userID string) (Progress, error)
	// Record applies c atomically and reports whether anything changed.
	Record(ctx context.Context, userID string, c Completion) (Progress, bool, error)
}

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	users map[string]Progress
	mu    sync.RWMutex
}

// NewMemoryStore creates a new in-memory progress store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]Progress),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (Progress, error) {
	if userID == "" {
		return Progress{}, fmt.Errorf("user_id is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.users[userID]
	if !ok {
		return New(userID), nil
	}
	return p.Clone(), nil
}

func (s *MemoryStore) Record(_ context.Context, userID string, c Completion) (Progress, bool, error) {
	if userID == "" {
		return Progress{}, false, fmt.Errorf("user_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.users[userID]
	if !ok {
		p = New(userID)
	}
	next, changed := Apply(p, c)
	if changed {
		s.users[userID] = next
	}
	return next.Clone(), changed, nil
}
