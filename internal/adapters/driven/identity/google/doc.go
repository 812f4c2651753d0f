// Package google implements driven.IdentityProvider against Google's OAuth
// 2.0 endpoints.
//
// A Session is the explicit identity cache for one mcc process:
//
//   - Access tokens are cached in memory until shortly before they expire.
//   - Refresh grants are persisted per account in a driven.GrantStore, so
//     later runs can mint access tokens without prompting.
//   - Interactive sign-in runs the authorization-code flow with PKCE,
//     a loopback redirect on 127.0.0.1 and prompt=select_account.
//
// Profiles are read from the oauth2/v2 userinfo endpoint.
package google
