package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrAuth indicates the identity provider rejected the request or the
	// user cancelled interactive consent.
	ErrAuth = errors.New("authentication failed")

	// ErrNoCachedGrant indicates a silent token request found no stored grant
	// for the account. The user must sign in interactively first.
	ErrNoCachedGrant = fmt.Errorf("%w: no cached grant for account", ErrAuth)

	// Configuration Errors.

	// ErrConfig indicates missing or invalid configuration such as the OAuth
	// client id, scopes, or the developer token.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidToken indicates the developer token failed format validation.
	ErrInvalidToken = fmt.Errorf("%w: invalid developer token", ErrConfig)

	// ErrNoAccountSelected indicates an action needs a selected account.
	ErrNoAccountSelected = fmt.Errorf("%w: no account selected", ErrConfig)

	// API Errors.

	// ErrAPI indicates the Google Ads API returned a non-2xx response.
	ErrAPI = errors.New("ads api error")

	// ErrNoAccessibleCustomers indicates the access token cannot reach any
	// customer account.
	ErrNoAccessibleCustomers = fmt.Errorf("no accessible customers: %w", ErrNotFound)

	// Storage Errors.

	// ErrStorage indicates the token store failed to read or write.
	ErrStorage = errors.New("storage error")
)

// APIError carries the status and message text returned by the Ads API.
type APIError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int
	// Message is the server's error text, or a generic message when the
	// response carried none.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("ads api error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrAPI.
func (e *APIError) Unwrap() error {
	return ErrAPI
}

// StorageError wraps a token store failure with the key being accessed.
func StorageError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrStorage, op, key, err)
}
