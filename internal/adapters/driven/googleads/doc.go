// Package googleads implements driven.AdsClient over the Google Ads REST API.
//
// Responses are read with gjson and request bodies are built with sjson, so
// the client only depends on the handful of fields it uses rather than the
// full generated API surface.
package googleads
