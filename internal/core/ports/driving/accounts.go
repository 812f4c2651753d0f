package driving

import (
	"context"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// AccountService tracks the Google accounts the operator has signed in with
// and which one is selected.
//
// Every mutating call persists before returning and notifies subscribers on
// success.
type AccountService interface {
	// Load fetches the current identity, merges it into the stored list and
	// persists the result. Calling Load twice in a row yields the same list.
	Load(ctx context.Context) ([]domain.Account, error)

	// Add prompts for another Google account and appends it when new.
	// An account already in the list is returned without changing the list
	// or the selection.
	Add(ctx context.Context) (*domain.Account, error)

	// Select makes the account with the given email the selected one.
	// Returns domain.ErrNotFound if the email is not in the list.
	Select(ctx context.Context, email string) (*domain.Account, error)

	// Restore reads the stored list and selection without contacting the
	// identity provider.
	Restore(ctx context.Context) error

	// Accounts returns a copy of the account list.
	Accounts() []domain.Account

	// Selected returns the selected account, or nil.
	Selected() *domain.Account

	// Subscribe registers fn to be called after each successful change.
	// The returned function removes the subscription.
	Subscribe(fn func()) (unsubscribe func())
}
