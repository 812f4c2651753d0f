package driven

import (
	"context"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// TokenRequest describes an access token request to the identity provider.
type TokenRequest struct {
	// Interactive allows the provider to prompt the user. When false the
	// provider only uses cached tokens and stored grants.
	Interactive bool

	// Scopes are the OAuth scopes required.
	Scopes []string

	// Account is an optional email hint. Empty lets the user pick an account
	// when Interactive is true, or selects the most recent account otherwise.
	Account string

	// SelectAccount forces the account picker even when a cached token or
	// stored grant could satisfy the request. Requires Interactive.
	SelectAccount bool
}

// IdentityProvider obtains OAuth access tokens and user profiles.
//
// Implementations never panic; failures are returned as errors wrapping
// domain.ErrAuth or domain.ErrConfig.
type IdentityProvider interface {
	// GetToken returns an access token for the request.
	GetToken(ctx context.Context, req TokenRequest) (string, error)

	// ClearCachedTokens drops every cached access token so the next
	// interactive request shows the account picker.
	ClearCachedTokens(ctx context.Context) error

	// RemoveCachedToken drops a single cached access token.
	RemoveCachedToken(ctx context.Context, token string) error

	// FetchProfile returns the profile of the token's owner.
	FetchProfile(ctx context.Context, token string) (*domain.Profile, error)
}
