package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
)

// Ensure CustomerView implements the interface.
var _ driving.CustomerViewService = (*CustomerView)(nil)

// CustomerView holds the customer table's list, filter, sort and selection.
// The zero value is not usable; use NewCustomerView.
type CustomerView struct {
	mu        sync.RWMutex
	customers []domain.Customer
	filter    string
	order     domain.SortOrder
	selected  string
}

// NewCustomerView creates a view sorted by name ascending.
func NewCustomerView() *CustomerView {
	return &CustomerView{
		order: domain.SortOrder{Field: domain.SortFieldName, Direction: domain.SortAsc},
	}
}

// SetCustomers replaces the list, keeping filter and sort state.
func (v *CustomerView) SetCustomers(customers []domain.Customer) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.customers = append([]domain.Customer(nil), customers...)
}

// SetFilter sets the search term.
func (v *CustomerView) SetFilter(term string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = term
}

// FilterTerm returns the current search term.
func (v *CustomerView) FilterTerm() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// Sort toggles direction on the active field, or sorts ascending by a new one.
func (v *CustomerView) Sort(field domain.SortField) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.order.Field == field {
		v.order.Direction = v.order.Direction.Toggle()
		return
	}
	v.order = domain.SortOrder{Field: field, Direction: domain.SortAsc}
}

// SortBy sets the sort order explicitly.
func (v *CustomerView) SortBy(field domain.SortField, dir domain.SortDirection) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.order = domain.SortOrder{Field: field, Direction: dir}
}

// Order returns the active sort order.
func (v *CustomerView) Order() domain.SortOrder {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.order
}

// Visible returns the filtered then sorted list.
func (v *CustomerView) Visible() []domain.Customer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return SortCustomers(FilterCustomers(v.customers, v.filter), v.order)
}

// Select marks the customer with id as the single selected row.
func (v *CustomerView) Select(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = id
}

// Selected returns the selected customer, or nil.
func (v *CustomerView) Selected() *domain.Customer {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.selected == "" {
		return nil
	}
	for i := range v.customers {
		if v.customers[i].ID == v.selected {
			c := v.customers[i]
			return &c
		}
	}
	return nil
}

// ClearSelection unselects any row.
func (v *CustomerView) ClearSelection() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = ""
}

// FilterCustomers keeps customers whose name or id contains term,
// ignoring case. An empty term returns the list unchanged.
func FilterCustomers(customers []domain.Customer, term string) []domain.Customer {
	if term == "" {
		return append([]domain.Customer(nil), customers...)
	}
	needle := strings.ToLower(term)
	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.ID), needle) {
			out = append(out, c)
		}
	}
	return out
}

// SortCustomers returns a stably sorted copy. Strings compare without case;
// customers with no level sort after those with one when ascending.
func SortCustomers(customers []domain.Customer, order domain.SortOrder) []domain.Customer {
	out := append([]domain.Customer(nil), customers...)
	less := func(a, b domain.Customer) bool { return compareCustomers(a, b, order.Field) < 0 }
	if order.Direction == domain.SortDesc {
		less = func(a, b domain.Customer) bool { return compareCustomers(a, b, order.Field) > 0 }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func compareCustomers(a, b domain.Customer, field domain.SortField) int {
	switch field {
	case domain.SortFieldID:
		return strings.Compare(strings.ToLower(a.ID), strings.ToLower(b.ID))
	case domain.SortFieldType:
		return strings.Compare(strings.ToLower(string(a.Type)), strings.ToLower(string(b.Type)))
	case domain.SortFieldLevel:
		return compareLevels(a.Level, b.Level)
	default:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
}

func compareLevels(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}
