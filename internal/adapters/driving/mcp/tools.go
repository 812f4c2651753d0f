package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// ListAccountsInput is the input schema for the list_accounts tool.
type ListAccountsInput struct{}

// AccountsOutput is the output schema for the list_accounts tool.
type AccountsOutput struct {
	Accounts []AccountOutput `json:"accounts"`
	Selected string          `json:"selected,omitempty"`
}

// AccountOutput represents a signed-in Google account.
type AccountOutput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// SelectAccountInput is the input schema for the select_account tool.
type SelectAccountInput struct {
	Email string `json:"email" jsonschema:"email of a signed-in Google account"`
}

// ListCustomersInput is the input schema for the list_customers tool.
type ListCustomersInput struct {
	Search string `json:"search,omitempty" jsonschema:"case-insensitive match on customer name or id"`
	Sort   string `json:"sort,omitempty" jsonschema:"sort column: id, name, type or level (default name)"`
	Desc   bool   `json:"desc,omitempty" jsonschema:"sort descending"`
}

// CustomersOutput is the output schema for the list_customers tool.
type CustomersOutput struct {
	Account   string           `json:"account"`
	Customers []CustomerOutput `json:"customers"`
	Count     int              `json:"count"`
}

// CustomerOutput represents a Google Ads customer.
type CustomerOutput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Level        *int   `json:"level,omitempty"`
	CurrencyCode string `json:"currency_code,omitempty"`
	TimeZone     string `json:"time_zone,omitempty"`
}

// CreateChildMCCInput is the input schema for the create_child_mcc tool.
type CreateChildMCCInput struct {
	ParentID string `json:"parent_id,omitempty" jsonschema:"manager customer id to create under (default: the root accessible customer)"`
	Name     string `json:"name,omitempty" jsonschema:"descriptive name (default: MCC for <account email>)"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_accounts",
		Description: "List the Google accounts signed in to mcc and which one is selected",
	}, s.handleListAccounts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_account",
		Description: "Select the Google account used for Google Ads requests",
	}, s.handleSelectAccount)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_customers",
		Description: "Refresh and list the Google Ads customers reachable from the selected account",
	}, s.handleListCustomers)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_child_mcc",
		Description: "Create a child customer account under a Google Ads manager account",
	}, s.handleCreateChildMCC)
}

func (s *Server) handleListAccounts(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListAccountsInput,
) (*mcp.CallToolResult, AccountsOutput, error) {
	snap := s.ports.Manager.Snapshot()

	output := AccountsOutput{Accounts: make([]AccountOutput, len(snap.Accounts))}
	if snap.Selected != nil {
		output.Selected = snap.Selected.Email
	}
	for i, acc := range snap.Accounts {
		output.Accounts[i] = toAccountOutput(acc, output.Selected)
	}
	return nil, output, nil
}

func (s *Server) handleSelectAccount(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectAccountInput,
) (*mcp.CallToolResult, AccountOutput, error) {
	if input.Email == "" {
		return nil, AccountOutput{}, fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	acc, err := s.ports.Manager.SelectAccount(ctx, input.Email)
	if err != nil {
		return nil, AccountOutput{}, err
	}
	return nil, toAccountOutput(*acc, acc.Email), nil
}

func (s *Server) handleListCustomers(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListCustomersInput,
) (*mcp.CallToolResult, CustomersOutput, error) {
	customers, err := s.ports.Manager.Refresh(ctx)
	if err != nil {
		return nil, CustomersOutput{}, err
	}

	if s.ports.NewCustomerView != nil {
		view := s.ports.NewCustomerView()
		view.SetCustomers(customers)
		view.SetFilter(input.Search)
		if input.Sort != "" || input.Desc {
			field := domain.SortFieldName
			if input.Sort != "" {
				if field, err = domain.ParseSortField(input.Sort); err != nil {
					return nil, CustomersOutput{}, err
				}
			}
			dir := domain.SortAsc
			if input.Desc {
				dir = domain.SortDesc
			}
			view.SortBy(field, dir)
		}
		customers = view.Visible()
	}

	output := CustomersOutput{
		Customers: make([]CustomerOutput, len(customers)),
		Count:     len(customers),
	}
	if sel := s.ports.Manager.Snapshot().Selected; sel != nil {
		output.Account = sel.Email
	}
	for i := range customers {
		output.Customers[i] = toCustomerOutput(customers[i])
	}
	return nil, output, nil
}

func (s *Server) handleCreateChildMCC(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateChildMCCInput,
) (*mcp.CallToolResult, CustomerOutput, error) {
	created, err := s.ports.Manager.CreateChildMCC(ctx, input.ParentID, input.Name)
	if err != nil {
		return nil, CustomerOutput{}, err
	}
	return nil, toCustomerOutput(*created), nil
}

func toAccountOutput(acc domain.Account, selected string) AccountOutput {
	return AccountOutput{
		Email:    acc.Email,
		Name:     acc.Name,
		Selected: acc.Email == selected,
	}
}

func toCustomerOutput(c domain.Customer) CustomerOutput {
	return CustomerOutput{
		ID:           c.ID,
		Name:         c.Name,
		Type:         string(c.Type),
		Level:        c.Level,
		CurrencyCode: c.CurrencyCode,
		TimeZone:     c.TimeZone,
	}
}
