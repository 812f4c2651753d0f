package domain

import "time"

// Grant is the long-lived OAuth consent for one Google account.
// It lets the identity session mint access tokens without prompting.
//
// Grants are stored unencrypted.
type Grant struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`
	// Email identifies the Google account the grant belongs to.
	Email string `json:"email"`
	// RefreshToken exchanges for new access tokens.
	RefreshToken string `json:"refresh_token"`
	// Scopes the grant was issued for.
	Scopes []string `json:"scopes"`
	// CreatedAt is when the grant was first stored.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the grant was last replaced.
	UpdatedAt time.Time `json:"updated_at"`
}

// HasRefreshToken returns true if the grant can mint access tokens.
func (g *Grant) HasRefreshToken() bool {
	return g != nil && g.RefreshToken != ""
}
