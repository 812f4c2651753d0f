package driven

import (
	"context"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// AdsClient is the Google Ads REST API as seen by the core.
//
// Every method returns either a value or an error; none panics. API failures
// are *domain.APIError values wrapping domain.ErrAPI.
type AdsClient interface {
	// ResolveRootCustomer returns the id of the first customer accessible to
	// the access token. Returns domain.ErrNoAccessibleCustomers when there
	// are none.
	ResolveRootCustomer(ctx context.Context, accessToken, developerToken string) (string, error)

	// ListChildCustomers resolves the root customer and lists the non-closed
	// customers in its hierarchy ordered by descriptive name.
	ListChildCustomers(ctx context.Context, accessToken, developerToken string) ([]domain.Customer, error)

	// CreateChildCustomer creates a customer under the given manager.
	CreateChildCustomer(
		ctx context.Context, accessToken, developerToken string, req domain.NewCustomer,
	) (*domain.Customer, error)
}
