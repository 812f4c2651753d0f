package driven

import (
	"context"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// GrantStore persists OAuth refresh grants, one per Google account.
type GrantStore interface {
	// Save stores a grant. Creates if new, replaces the grant for the same
	// email if one exists.
	Save(ctx context.Context, grant domain.Grant) error

	// GetByEmail retrieves the grant for an account.
	// Returns domain.ErrNotFound when the account has no grant.
	GetByEmail(ctx context.Context, email string) (*domain.Grant, error)

	// List returns all grants ordered by creation time.
	List(ctx context.Context) ([]domain.Grant, error)

	// Delete removes the grant for an account.
	Delete(ctx context.Context, email string) error
}
