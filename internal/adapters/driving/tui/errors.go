package tui

import "errors"

// Port validation errors.
var (
	ErrMissingManagerService = errors.New("tui: manager service is required")
	ErrMissingCustomerView   = errors.New("tui: customer view service is required")
)
