package mcp

import (
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Manager runs account, token and customer actions.
	Manager driving.ManagerService

	// NewCustomerView builds a fresh view per request so concurrent tool
	// calls never share filter or sort state. Optional; without it customers
	// are returned in API order.
	NewCustomerView func() driving.CustomerViewService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Manager == nil {
		return ErrMissingManagerService
	}
	return nil
}
