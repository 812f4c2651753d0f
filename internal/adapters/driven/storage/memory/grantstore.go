package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driven"
)

// Ensure GrantStore implements the interface.
var _ driven.GrantStore = (*GrantStore)(nil)

// GrantStore is an in-memory implementation of driven.GrantStore.
type GrantStore struct {
	mu     sync.RWMutex
	grants map[string]domain.Grant
}

// NewGrantStore creates a new in-memory grant store.
func NewGrantStore() *GrantStore {
	return &GrantStore{
		grants: make(map[string]domain.Grant),
	}
}

// Save stores a grant, replacing any grant for the same email.
func (s *GrantStore) Save(_ context.Context, grant domain.Grant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if existing, ok := s.grants[grant.Email]; ok {
		grant.ID = existing.ID
		grant.CreatedAt = existing.CreatedAt
	} else if grant.CreatedAt.IsZero() {
		grant.CreatedAt = now
	}
	grant.UpdatedAt = now
	grant.Scopes = append([]string(nil), grant.Scopes...)
	s.grants[grant.Email] = grant
	return nil
}

// GetByEmail retrieves the grant for an account.
func (s *GrantStore) GetByEmail(_ context.Context, email string) (*domain.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grant, ok := s.grants[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &grant, nil
}

// List returns all grants ordered by creation time.
func (s *GrantStore) List(_ context.Context) ([]domain.Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	grants := make([]domain.Grant, 0, len(s.grants))
	for _, g := range s.grants {
		grants = append(grants, g)
	}
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].CreatedAt.Before(grants[j].CreatedAt)
	})
	return grants, nil
}

// Delete removes the grant for an account.
func (s *GrantStore) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants, email)
	return nil
}
