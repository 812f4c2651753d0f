package manager

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/services"
)

type mockManager struct {
	snapshot  domain.ManagerSnapshot
	customers []domain.Customer
	err       error

	started   bool
	tokens    []string
	added     int
	selected  []string
	refreshed int
	creates   []string
}

func (m *mockManager) Start(_ context.Context) { m.started = true }

func (m *mockManager) SetDeveloperToken(_ context.Context, token string) (domain.TokenValidation, error) {
	m.tokens = append(m.tokens, token)
	v := domain.ValidateDeveloperToken(token)
	if !v.Valid {
		return v, domain.ErrInvalidToken
	}
	m.snapshot.DeveloperToken = token
	m.snapshot.TokenValidation = v
	return v, nil
}

func (m *mockManager) ClearDeveloperToken(_ context.Context) error { return m.err }

func (m *mockManager) LoadAccounts(_ context.Context) ([]domain.Account, error) {
	return m.snapshot.Accounts, m.err
}

func (m *mockManager) AddAccount(_ context.Context) (*domain.Account, error) {
	m.added++
	return nil, m.err
}

func (m *mockManager) SelectAccount(_ context.Context, email string) (*domain.Account, error) {
	m.selected = append(m.selected, email)
	return nil, m.err
}

func (m *mockManager) Refresh(_ context.Context) ([]domain.Customer, error) {
	m.refreshed++
	if m.err != nil {
		return nil, m.err
	}
	m.snapshot.Customers = m.customers
	return m.customers, nil
}

func (m *mockManager) CreateChildMCC(_ context.Context, parentID, _ string) (*domain.Customer, error) {
	m.creates = append(m.creates, parentID)
	return &domain.Customer{ID: "999", Name: "New MCC"}, m.err
}

func (m *mockManager) Snapshot() domain.ManagerSnapshot { return m.snapshot }

func (m *mockManager) Subscribe(_ func(domain.ManagerSnapshot)) func() { return func() {} }

func intPtr(n int) *int { return &n }

var (
	alice = domain.Account{ID: "1", Email: "alice@example.com", Name: "Alice"}
	bob   = domain.Account{ID: "2", Email: "bob@example.com", Name: "Bob"}

	testCustomers = []domain.Customer{
		{ID: "100", Name: "Agency", Type: domain.CustomerTypeMCC, Level: intPtr(0)},
		{ID: "300", Name: "shop", Type: domain.CustomerTypeCustomer, Level: intPtr(1)},
		{ID: "200", Name: "Brand", Type: domain.CustomerTypeCustomer, Level: intPtr(1)},
	}
)

const validToken = "ABCDEFGHIJ0123456789"

func readySnapshot() domain.ManagerSnapshot {
	return domain.ManagerSnapshot{
		State:           domain.StateReady,
		Accounts:        []domain.Account{alice, bob},
		Selected:        &alice,
		DeveloperToken:  validToken,
		TokenValidation: domain.TokenValidation{Valid: true},
		Customers:       testCustomers,
	}
}

func newTestView(m *mockManager) *View {
	v := NewView(nil, nil, m, services.NewCustomerView())
	v.SetDimensions(120, 40)
	return v
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// run executes cmd and feeds its message back into the view.
func run(t *testing.T, v *View, cmd tea.Cmd) *View {
	t.Helper()
	require.NotNil(t, cmd)
	v, _ = v.Update(cmd())
	return v
}

func TestNewView_StartsOnToken(t *testing.T) {
	v := newTestView(&mockManager{})

	assert.Equal(t, FieldToken, v.Focus())
	assert.True(t, v.CapturesText())
}

func TestView_InitStartsManager(t *testing.T) {
	m := &mockManager{}
	v := newTestView(m)

	msg := v.Init()()

	assert.True(t, m.started)
	assert.IsType(t, messages.Started{}, msg)
}

func TestView_StartedSeedsTokenAndRefreshesWhenReady(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot(), customers: testCustomers}
	v := newTestView(m)

	v, cmd := v.Update(messages.Started{})

	assert.Equal(t, validToken, v.token.Value())
	v = run(t, v, cmd)
	assert.Equal(t, 1, m.refreshed)
	assert.Contains(t, v.View(), "Agency")
	assert.Contains(t, v.View(), "3 customers")
}

func TestView_StartedWithoutAccountDoesNotRefresh(t *testing.T) {
	m := &mockManager{}
	v := newTestView(m)

	_, cmd := v.Update(messages.Started{})

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "Sign in to get started")
}

func TestView_TabCyclesFocus(t *testing.T) {
	v := newTestView(&mockManager{})

	v, _ = v.Update(key(tea.KeyTab))
	assert.Equal(t, FieldAccount, v.Focus())
	assert.False(t, v.CapturesText())

	v, _ = v.Update(key(tea.KeyTab))
	assert.Equal(t, FieldSearch, v.Focus())

	v, _ = v.Update(key(tea.KeyTab))
	assert.Equal(t, FieldTable, v.Focus())

	v, _ = v.Update(key(tea.KeyTab))
	assert.Equal(t, FieldToken, v.Focus())

	v, _ = v.Update(key(tea.KeyShiftTab))
	assert.Equal(t, FieldTable, v.Focus())
}

func TestView_SubmitValidToken(t *testing.T) {
	m := &mockManager{}
	v := newTestView(m)
	v.token.SetValue(validToken)

	v, cmd := v.Update(key(tea.KeyEnter))
	v = run(t, v, cmd)

	assert.Equal(t, []string{validToken}, m.tokens)
	assert.True(t, v.token.Validation().Valid)
	assert.Equal(t, FieldAccount, v.Focus())
}

func TestView_SubmitInvalidTokenShowsMessage(t *testing.T) {
	m := &mockManager{}
	v := newTestView(m)
	v.token.SetValue("short")

	v, cmd := v.Update(key(tea.KeyEnter))
	v = run(t, v, cmd)

	assert.Equal(t, FieldToken, v.Focus())
	assert.False(t, v.token.Validation().Valid)
	assert.Contains(t, v.View(), "Developer token should be at least 20 characters")
}

func TestView_RevealToken(t *testing.T) {
	v := newTestView(&mockManager{})

	v, _ = v.Update(key(tea.KeyCtrlR))

	assert.True(t, v.token.Revealed())
}

func TestView_AddAccountFromDropdown(t *testing.T) {
	m := &mockManager{}
	v := newTestView(m)
	v.setFocus(FieldAccount)

	v, _ = v.Update(key(tea.KeyEnter))
	require.True(t, v.accounts.IsOpen())

	v, cmd := v.Update(key(tea.KeyEnter))
	run(t, v, cmd)

	assert.Equal(t, 1, m.added)
}

func TestView_SelectOtherAccount(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot()}
	v := newTestView(m)
	v, _ = v.Update(messages.StateChanged{Snapshot: m.snapshot})
	v.setFocus(FieldAccount)

	v, _ = v.Update(key(tea.KeyEnter))
	v, _ = v.Update(key(tea.KeyDown))
	v, cmd := v.Update(key(tea.KeyEnter))
	run(t, v, cmd)

	assert.Equal(t, []string{bob.Email}, m.selected)
}

func TestView_SelectCurrentAccountIsNoop(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot()}
	v := newTestView(m)
	v, _ = v.Update(messages.StateChanged{Snapshot: m.snapshot})
	v.setFocus(FieldAccount)

	v, _ = v.Update(key(tea.KeyEnter))
	_, cmd := v.Update(key(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Empty(t, m.selected)
}

func TestView_SearchFiltersTable(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot()}
	v := newTestView(m)
	v, _ = v.Update(messages.StateChanged{Snapshot: m.snapshot})
	v.setFocus(FieldSearch)

	v, _ = v.Update(runes("b"))
	v, _ = v.Update(runes("r"))

	assert.Equal(t, "br", v.customers.FilterTerm())
	require.Len(t, v.customers.Visible(), 1)
	assert.Equal(t, "Brand", v.customers.Visible()[0].Name)

	v, _ = v.Update(key(tea.KeyEnter))
	assert.Equal(t, FieldTable, v.Focus())
}

func TestView_TableSortAndSelect(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot()}
	v := newTestView(m)
	v, _ = v.Update(messages.StateChanged{Snapshot: m.snapshot})
	v.setFocus(FieldTable)

	v, _ = v.Update(runes("1"))
	assert.Equal(t, domain.SortFieldID, v.customers.Order().Field)
	assert.Equal(t, "100", v.table.Current().ID)

	v, _ = v.Update(key(tea.KeyDown))
	v, _ = v.Update(key(tea.KeySpace))
	require.NotNil(t, v.customers.Selected())
	assert.Equal(t, "200", v.customers.Selected().ID)
}

func TestView_RefreshKey(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot(), customers: testCustomers}
	v := newTestView(m)
	v.setFocus(FieldTable)

	v, cmd := v.Update(runes("r"))
	assert.Contains(t, v.View(), "Refreshing customers...")
	v = run(t, v, cmd)

	assert.Equal(t, 1, m.refreshed)
	assert.NotContains(t, v.View(), "Refreshing customers...")
}

func TestView_CreateChildUnderSelectedManager(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot()}
	v := newTestView(m)
	v, _ = v.Update(messages.StateChanged{Snapshot: m.snapshot})
	v.setFocus(FieldTable)
	v.customers.Select("100")
	v, _ = v.Update(key(tea.KeyDown))

	v, cmd := v.Update(runes("c"))
	run(t, v, cmd)

	assert.Equal(t, []string{"100"}, m.creates)
}

func TestView_CreateChildFallsBackToRoot(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot()}
	v := newTestView(m)
	v, _ = v.Update(messages.StateChanged{Snapshot: m.snapshot})
	v.setFocus(FieldTable)
	v, _ = v.Update(key(tea.KeyDown))

	_, cmd := v.Update(runes("c"))
	require.NotNil(t, cmd)
	cmd()

	assert.Equal(t, []string{""}, m.creates)
}

func TestView_ActionErrorShownInStatus(t *testing.T) {
	m := &mockManager{snapshot: readySnapshot(), err: errors.New("quota exceeded")}
	v := newTestView(m)
	v.setFocus(FieldTable)

	v, cmd := v.Update(runes("r"))
	v = run(t, v, cmd)

	assert.Contains(t, v.View(), "Error: quota exceeded")
}

func TestView_StateChangedUpdatesControls(t *testing.T) {
	v := newTestView(&mockManager{})
	snap := readySnapshot()
	snap.Loading = true

	v, _ = v.Update(messages.StateChanged{Snapshot: snap})

	assert.Equal(t, snap.State, v.Snapshot().State)
	assert.Len(t, v.customers.Visible(), 3)
	assert.Contains(t, v.View(), "alice@example.com")
	assert.Contains(t, v.View(), "refreshing...")
}
