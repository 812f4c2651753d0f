package driving

import "github.com/custodia-labs/mcc-cli/internal/core/domain"

// CustomerViewService holds the customer table's derived state: the list,
// the search filter, the sort order and the selected row.
//
// It has no network or storage side effects.
type CustomerViewService interface {
	// SetCustomers replaces the list, keeping filter and sort state.
	SetCustomers(customers []domain.Customer)

	// SetFilter sets the search term.
	SetFilter(term string)

	// FilterTerm returns the current search term.
	FilterTerm() string

	// Sort toggles the direction when field is already active, otherwise
	// sorts ascending by field.
	Sort(field domain.SortField)

	// SortBy sets the sort order explicitly.
	SortBy(field domain.SortField, dir domain.SortDirection)

	// Order returns the active sort order.
	Order() domain.SortOrder

	// Visible returns the filtered then sorted list.
	Visible() []domain.Customer

	// Select marks the customer with id as the single selected row.
	Select(id string)

	// Selected returns the selected customer, or nil when nothing is
	// selected or the selected id is no longer in the list.
	Selected() *domain.Customer

	// ClearSelection unselects any row.
	ClearSelection()
}
