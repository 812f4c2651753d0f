package driving

import (
	"context"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// ManagerService wires operator actions to accounts, the developer token and
// the Google Ads API.
type ManagerService interface {
	// Start loads the persisted developer token and account list.
	// Missing values leave defaults; storage failures are logged.
	Start(ctx context.Context)

	// SetDeveloperToken validates and, when valid, persists the token.
	// A valid token with a selected account triggers a refresh.
	SetDeveloperToken(ctx context.Context, token string) (domain.TokenValidation, error)

	// ClearDeveloperToken removes the stored developer token.
	ClearDeveloperToken(ctx context.Context) error

	// LoadAccounts signs in with the current Google identity.
	LoadAccounts(ctx context.Context) ([]domain.Account, error)

	// AddAccount prompts for another Google account.
	AddAccount(ctx context.Context) (*domain.Account, error)

	// SelectAccount switches account and refreshes when the token is valid.
	SelectAccount(ctx context.Context, email string) (*domain.Account, error)

	// Refresh reloads the customer list for the selected account.
	Refresh(ctx context.Context) ([]domain.Customer, error)

	// CreateChildMCC creates a child account under parentID. An empty name
	// defaults to "MCC for <email>". Success triggers a refresh.
	CreateChildMCC(ctx context.Context, parentID, name string) (*domain.Customer, error)

	// Snapshot returns a copy of the current state.
	Snapshot() domain.ManagerSnapshot

	// Subscribe registers fn to receive a snapshot after every state change.
	Subscribe(fn func(domain.ManagerSnapshot)) (unsubscribe func())
}
