package mcp

import (
	"context"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
	"github.com/custodia-labs/mcc-cli/internal/core/services"
)

// mockManagerService is a mock implementation of driving.ManagerService.
type mockManagerService struct {
	snapshot  domain.ManagerSnapshot
	customers []domain.Customer
	created   *domain.Customer
	err       error

	selected    string
	createCalls []createCall
}

type createCall struct {
	parentID string
	name     string
}

func (m *mockManagerService) Start(_ context.Context) {}

func (m *mockManagerService) SetDeveloperToken(_ context.Context, token string) (domain.TokenValidation, error) {
	return domain.ValidateDeveloperToken(token), m.err
}

func (m *mockManagerService) ClearDeveloperToken(_ context.Context) error {
	return m.err
}

func (m *mockManagerService) LoadAccounts(_ context.Context) ([]domain.Account, error) {
	return m.snapshot.Accounts, m.err
}

func (m *mockManagerService) AddAccount(_ context.Context) (*domain.Account, error) {
	return nil, m.err
}

func (m *mockManagerService) SelectAccount(_ context.Context, email string) (*domain.Account, error) {
	if m.err != nil {
		return nil, m.err
	}
	i := domain.FindAccount(m.snapshot.Accounts, email)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	m.selected = email
	acc := m.snapshot.Accounts[i]
	m.snapshot.Selected = &acc
	return &acc, nil
}

func (m *mockManagerService) Refresh(_ context.Context) ([]domain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.snapshot.Customers = m.customers
	return m.customers, nil
}

func (m *mockManagerService) CreateChildMCC(_ context.Context, parentID, name string) (*domain.Customer, error) {
	m.createCalls = append(m.createCalls, createCall{parentID, name})
	return m.created, m.err
}

func (m *mockManagerService) Snapshot() domain.ManagerSnapshot {
	return m.snapshot
}

func (m *mockManagerService) Subscribe(_ func(domain.ManagerSnapshot)) func() {
	return func() {}
}

func newView() driving.CustomerViewService {
	return services.NewCustomerView()
}

func intPtr(n int) *int {
	return &n
}

var (
	alice = domain.Account{ID: "1", Email: "alice@example.com", Name: "Alice"}
	bob   = domain.Account{ID: "2", Email: "bob@example.com", Name: "Bob"}

	testCustomers = []domain.Customer{
		{ID: "100", Name: "Agency", Type: domain.CustomerTypeMCC, Level: intPtr(0)},
		{ID: "300", Name: "shop", Type: domain.CustomerTypeCustomer, Level: intPtr(1)},
		{ID: "200", Name: "Brand", Type: domain.CustomerTypeCustomer, Level: intPtr(1)},
	}
)
