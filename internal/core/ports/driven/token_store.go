package driven

import "context"

// TokenStore is the key-value persistence used for the developer token, the
// account list and the selected-account pointer.
//
// Values are opaque strings; callers encode structured values as JSON.
// Implementations serialise their own reads and writes but give no ordering
// guarantees across keys.
type TokenStore interface {
	// Get returns the value for key. The boolean is false when the key is
	// absent, which is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// WatchableTokenStore is a TokenStore that can report changes made by other
// processes, such as a second mcc invocation editing the same file.
type WatchableTokenStore interface {
	TokenStore

	// Watch calls onChange after the backing storage changes, until ctx is
	// cancelled. It returns once the watch is established.
	Watch(ctx context.Context, onChange func()) error
}
