package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

func TestCustomersList_SortedByName(t *testing.T) {
	m := &fakeManager{customers: testCustomers}
	withServices(t, m, nil)

	out, err := executeCommand(t, "", "customers", "list")

	require.NoError(t, err)
	assert.Equal(t, 1, m.refreshed)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "3 customers")
	agency, brand, shop := strings.Index(out, "Agency"), strings.Index(out, "Brand"), strings.Index(out, "shop")
	assert.Less(t, agency, brand)
	assert.Less(t, brand, shop)
}

func TestCustomersList_Search(t *testing.T) {
	withServices(t, &fakeManager{customers: testCustomers}, nil)

	out, err := executeCommand(t, "", "customers", "list", "--search", "BR")

	require.NoError(t, err)
	assert.Contains(t, out, "Brand")
	assert.NotContains(t, out, "Agency")
	assert.Contains(t, out, "1 customers")
}

func TestCustomersList_SortByIDDescending(t *testing.T) {
	withServices(t, &fakeManager{customers: testCustomers}, nil)

	out, err := executeCommand(t, "", "customers", "list", "--sort", "id", "--desc")

	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "300"), strings.Index(out, "200"))
	assert.Less(t, strings.Index(out, "200"), strings.Index(out, "100"))
}

func TestCustomersList_MissingLevelShowsDash(t *testing.T) {
	withServices(t, &fakeManager{customers: testCustomers}, nil)

	out, err := executeCommand(t, "", "customers", "list", "--search", "shop")

	require.NoError(t, err)
	var row string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "shop") {
			row = line
		}
	}
	require.NotEmpty(t, row)
	assert.Contains(t, row, "-")
}

func TestCustomersList_InvalidSort(t *testing.T) {
	m := &fakeManager{customers: testCustomers}
	withServices(t, m, nil)

	_, err := executeCommand(t, "", "customers", "list", "--sort", "budget")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, m.refreshed)
}

func TestCustomersList_Empty(t *testing.T) {
	withServices(t, &fakeManager{}, nil)

	out, err := executeCommand(t, "", "customers", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No customers found")
}

func TestCustomersList_RefreshError(t *testing.T) {
	withServices(t, &fakeManager{err: domain.ErrNoAccountSelected}, nil)

	_, err := executeCommand(t, "", "customers", "list")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoAccountSelected))
	assert.Contains(t, err.Error(), "failed to list customers")
}

func TestCustomersCreateChild(t *testing.T) {
	m := &fakeManager{}
	withServices(t, m, nil)

	out, err := executeCommand(t, "", "customers", "create-child", "1234567890", "--name", "Team A")

	require.NoError(t, err)
	assert.Equal(t, []createCall{{"1234567890", "Team A"}}, m.creates)
	assert.Contains(t, out, "Created Team A (999)")
}

func TestCustomersCreateChild_DefaultsToRoot(t *testing.T) {
	m := &fakeManager{}
	withServices(t, m, nil)

	out, err := executeCommand(t, "", "customers", "create-child")

	require.NoError(t, err)
	assert.Equal(t, []createCall{{"", ""}}, m.creates)
	assert.Contains(t, out, "Created MCC for alice@example.com (999)")
}

func TestCustomersCreateChild_Error(t *testing.T) {
	withServices(t, &fakeManager{err: &domain.APIError{StatusCode: 400, Message: "bad currency"}}, nil)

	_, err := executeCommand(t, "", "customers", "create-child", "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAPI)
	assert.Contains(t, err.Error(), "bad currency")
}
