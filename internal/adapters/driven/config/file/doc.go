// Package file provides the TOML configuration store.
//
// Settings live in ~/.mcc/config.toml, grouped into tables:
//
//	[oauth]
//	client_id = "..."
//	scopes = ["https://www.googleapis.com/auth/adwords"]
//
//	[api]
//	version = "v18"
//
// Keys are addressed with dot notation ("oauth.client_id").
package file
