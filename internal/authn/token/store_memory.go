package token

import (
	"context"
	"sync"

	"flowauth/internal/authn/models"
)

// MemoryStore keeps the token record in process memory. Used by tests and
// by hosts that do not want tokens on disk.
type MemoryStore struct {
	mu    sync.RWMutex
	state *models.TokenState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, state *models.TokenState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.state = &copied
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (*models.TokenState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state == nil {
		return nil, ErrNotFound
	}
	copied := *s.state
	return &copied, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = nil
	return nil
}

var _ Store = (*MemoryStore)(nil)
