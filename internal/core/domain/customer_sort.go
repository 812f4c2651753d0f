package domain

import (
	"fmt"
	"strings"
)

// SortField is a customer table column that can be sorted.
type SortField string

const (
	SortFieldID    SortField = "id"
	SortFieldName  SortField = "name"
	SortFieldType  SortField = "type"
	SortFieldLevel SortField = "level"
)

// SortFields lists the sortable columns in display order.
var SortFields = []SortField{SortFieldID, SortFieldName, SortFieldType, SortFieldLevel}

// ParseSortField converts user input to a SortField.
func ParseSortField(s string) (SortField, error) {
	f := SortField(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortFields {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sort field %q (want id, name, type or level)", ErrInvalidInput, s)
}

// SortDirection is ascending or descending.
type SortDirection int

const (
	SortAsc SortDirection = iota
	SortDesc
)

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// String returns "asc" or "desc".
func (d SortDirection) String() string {
	if d == SortDesc {
		return "desc"
	}
	return "asc"
}

// SortOrder is the active sort column and direction.
type SortOrder struct {
	Field     SortField
	Direction SortDirection
}
