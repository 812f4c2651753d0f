// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - TokenStore: developer token, account list and selection pointer
//   - GrantStore: OAuth refresh grants per Google account
//   - IdentityProvider: access tokens and user profiles
//   - AdsClient: Google Ads customer listing and creation
//   - ConfigStore: application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
