// Package domain defines the core business entities for mcc.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Account: A signed-in Google identity
//   - Customer: A Google Ads customer (manager or client)
//   - Grant: Stored OAuth consent for one account
//   - AppSettings: OAuth client, API location and defaults
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
