package domain

import (
	"fmt"
	"strings"
)

// CustomerType distinguishes manager accounts from client accounts.
type CustomerType string

const (
	// CustomerTypeMCC is a manager ("My Client Center") account.
	CustomerTypeMCC CustomerType = "MCC"
	// CustomerTypeCustomer is a regular client account.
	CustomerTypeCustomer CustomerType = "CUSTOMER"
)

// customerResourcePrefix prefixes customer resource names.
const customerResourcePrefix = "customers/"

// Customer is a Google Ads customer returned by a refresh.
// Customers are never persisted.
type Customer struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Type         CustomerType `json:"type"`
	Level        *int         `json:"level,omitempty"`
	CurrencyCode string       `json:"currencyCode,omitempty"`
	TimeZone     string       `json:"timeZone,omitempty"`
	ResourceName string       `json:"resourceName,omitempty"`
	Status       string       `json:"status,omitempty"`
}

// IsManager reports whether the customer is an MCC.
func (c Customer) IsManager() bool {
	return c.Type == CustomerTypeMCC
}

// DefaultCustomerName is used when the API returns no descriptive name.
func DefaultCustomerName(id string) string {
	return "Customer " + id
}

// CustomerIDFromResourceName extracts the id from "customers/<id>".
func CustomerIDFromResourceName(resourceName string) (string, error) {
	id, ok := strings.CutPrefix(resourceName, customerResourcePrefix)
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: resource name %q", ErrInvalidInput, resourceName)
	}
	return id, nil
}

// CustomerResourceName builds "customers/<id>".
func CustomerResourceName(id string) string {
	return customerResourcePrefix + id
}

// NewCustomer describes a child customer to create under a manager.
type NewCustomer struct {
	ParentID        string
	DescriptiveName string
	CurrencyCode    string
	TimeZone        string
}

// Validate checks that the request names a parent and a descriptive name.
func (n NewCustomer) Validate() error {
	if n.ParentID == "" {
		return fmt.Errorf("%w: parent customer id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(n.DescriptiveName) == "" {
		return fmt.Errorf("%w: descriptive name is required", ErrInvalidInput)
	}
	return nil
}
