// Package messages defines Bubbletea message types for the TUI.
// Messages carry the results of manager calls, which run off the UI
// goroutine, back into the Elm update loop.
package messages

import (
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// StateChanged carries a manager snapshot published after any change.
type StateChanged struct {
	Snapshot domain.ManagerSnapshot
}

// Started is sent once persisted state has been restored.
type Started struct{}

// TokenSubmitted is the result of saving the developer token.
type TokenSubmitted struct {
	Validation domain.TokenValidation
	Err        error
}

// AccountAdded is the result of signing in with another account.
type AccountAdded struct {
	Account *domain.Account
	Err     error
}

// AccountSelected is the result of switching account.
type AccountSelected struct {
	Account *domain.Account
	Err     error
}

// CustomersLoaded is the result of a refresh.
type CustomersLoaded struct {
	Customers []domain.Customer
	Err       error
}

// ChildCreated is the result of creating a child account.
type ChildCreated struct {
	Customer *domain.Customer
	Err      error
}

// Quit requests the application to exit.
type Quit struct{}
