package tui

import "github.com/custodia-labs/mcc-cli/internal/core/ports/driving"

// Ports holds the driving ports the TUI depends on.
type Ports struct {
	// Manager orchestrates accounts, the developer token and customers.
	Manager driving.ManagerService
	// Customers holds filter, sort and selection state for the table.
	Customers driving.CustomerViewService
}

// Validate checks that all required ports are set.
func (p *Ports) Validate() error {
	if p.Manager == nil {
		return ErrMissingManagerService
	}
	if p.Customers == nil {
		return ErrMissingCustomerView
	}
	return nil
}
