// Package manager provides the single-page account manager view: developer
// token input, account selector, customer search and customer table.
package manager

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/components/dropdown"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/components/table"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
	"github.com/custodia-labs/mcc-cli/internal/core/ports/driving"
)

// Field identifies which control has keyboard focus.
type Field int

const (
	FieldToken Field = iota
	FieldAccount
	FieldSearch
	FieldTable
	fieldCount
)

// chromeHeight is the number of lines used by everything except table rows.
const chromeHeight = 16

// View is the account manager page.
type View struct {
	ctx       context.Context
	manager   driving.ManagerService
	customers driving.CustomerViewService
	styles    *styles.Styles
	keymap    *keymap.KeyMap

	token    *input.TokenInput
	accounts *dropdown.Accounts
	search   *input.SearchInput
	table    *table.Customers
	status   *status.Bar

	focus       Field
	snapshot    domain.ManagerSnapshot
	tokenSeeded bool
	width       int
}

// NewView creates the page. The customer view holds filter, sort and
// selection state for the table.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	manager driving.ManagerService,
	customers driving.CustomerViewService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	v := &View{
		ctx:       context.Background(),
		manager:   manager,
		customers: customers,
		styles:    s,
		keymap:    km,
		token:     input.NewTokenInput(s),
		accounts:  dropdown.NewAccounts(s),
		search:    input.NewSearchInput(s),
		table:     table.NewCustomers(s, customers),
		status:    status.NewBar(s, km),
		width:     80,
	}
	v.setFocus(FieldToken)
	return v
}

// WithContext sets the context passed to manager calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init restores persisted state.
func (v *View) Init() tea.Cmd {
	ctx, manager := v.ctx, v.manager
	return func() tea.Msg {
		manager.Start(ctx)
		return messages.Started{}
	}
}

// Update handles messages for the page.
//
//nolint:gocyclo // central message handler
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.Started:
		v.apply(v.manager.Snapshot())
		if v.snapshot.Ready() {
			return v, v.refreshCmd()
		}
		return v, nil

	case messages.StateChanged:
		v.apply(msg.Snapshot)
		return v, nil

	case messages.TokenSubmitted:
		v.finish(msg.Err)
		v.token.SetValidation(msg.Validation)
		if msg.Err == nil {
			v.setFocus(FieldAccount)
		}
		return v, nil

	case messages.AccountAdded:
		v.finish(msg.Err)
		return v, nil

	case messages.AccountSelected:
		v.finish(msg.Err)
		return v, nil

	case messages.CustomersLoaded:
		v.finish(msg.Err)
		return v, nil

	case messages.ChildCreated:
		v.finish(msg.Err)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if !v.accounts.IsOpen() {
		switch {
		case keymap.Matches(keyStr, v.keymap.NextField):
			return v, v.setFocus((v.focus + 1) % fieldCount)
		case keymap.Matches(keyStr, v.keymap.PrevField):
			return v, v.setFocus((v.focus + fieldCount - 1) % fieldCount)
		}
	}

	switch v.focus {
	case FieldToken:
		return v.handleTokenKey(msg)
	case FieldAccount:
		return v.handleAccountKey(keyStr)
	case FieldSearch:
		return v.handleSearchKey(msg)
	case FieldTable:
		return v.handleTableKey(keyStr)
	case fieldCount:
	}
	return v, nil
}

func (v *View) handleTokenKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		return v, v.submitTokenCmd(v.token.Value())
	case keymap.Matches(msg.String(), v.keymap.RevealToken):
		v.token.ToggleReveal()
		return v, nil
	}
	var cmd tea.Cmd
	v.token, cmd = v.token.Update(msg)
	return v, cmd
}

func (v *View) handleAccountKey(keyStr string) (*View, tea.Cmd) {
	if !v.accounts.IsOpen() {
		if keymap.Matches(keyStr, v.keymap.Select) || keymap.Matches(keyStr, v.keymap.Down) {
			v.accounts.Open()
		}
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.accounts.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.accounts.MoveDown()
	case keymap.Matches(keyStr, v.keymap.Cancel):
		v.accounts.Close()
	case keymap.Matches(keyStr, v.keymap.Select):
		choice := v.accounts.Choose()
		if choice.Add {
			return v, v.addAccountCmd()
		}
		if choice.Account == nil {
			return v, nil
		}
		if sel := v.snapshot.Selected; sel != nil && sel.Email == choice.Account.Email {
			return v, nil
		}
		return v, v.selectAccountCmd(choice.Account.Email)
	}
	return v, nil
}

func (v *View) handleSearchKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		return v, v.setFocus(FieldTable)
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.customers.SetFilter(v.search.Value())
	v.table.Refresh()
	return v, cmd
}

func (v *View) handleTableKey(keyStr string) (*View, tea.Cmd) {
	km := v.keymap
	switch {
	case keymap.Matches(keyStr, km.Up):
		v.table.MoveUp()
	case keymap.Matches(keyStr, km.Down):
		v.table.MoveDown()
	case keymap.Matches(keyStr, km.Select):
		v.table.SelectCurrent()
	case keymap.Matches(keyStr, km.SortID):
		v.table.Sort(domain.SortFieldID)
	case keymap.Matches(keyStr, km.SortName):
		v.table.Sort(domain.SortFieldName)
	case keymap.Matches(keyStr, km.SortType):
		v.table.Sort(domain.SortFieldType)
	case keymap.Matches(keyStr, km.SortLevel):
		v.table.Sort(domain.SortFieldLevel)
	case keymap.Matches(keyStr, km.Refresh):
		return v, v.refreshCmd()
	case keymap.Matches(keyStr, km.CreateChild):
		return v, v.createChildCmd(v.parentForCreate())
	}
	return v, nil
}

// parentForCreate picks the selected manager row, then the manager row under
// the cursor, else the root customer.
func (v *View) parentForCreate() string {
	if sel := v.customers.Selected(); sel != nil && sel.IsManager() {
		return sel.ID
	}
	if cur := v.table.Current(); cur != nil && cur.IsManager() {
		return cur.ID
	}
	return ""
}

// apply renders a manager snapshot.
func (v *View) apply(snap domain.ManagerSnapshot) {
	v.snapshot = snap
	if !v.tokenSeeded {
		v.token.SetValue(snap.DeveloperToken)
		v.tokenSeeded = true
	}
	v.token.SetValidation(snap.TokenValidation)
	v.accounts.SetAccounts(snap.Accounts, snap.Selected)
	v.customers.SetCustomers(snap.Customers)
	v.table.SetLoading(snap.Loading)
	v.table.Refresh()
	v.status.SetSnapshot(snap)
}

// finish applies the latest snapshot after an action and shows its error.
func (v *View) finish(err error) {
	v.status.SetWorking("")
	v.apply(v.manager.Snapshot())
	if err != nil {
		v.status.SetError(err)
	}
}

func (v *View) setFocus(f Field) tea.Cmd {
	v.focus = f
	v.token.Blur()
	v.accounts.Blur()
	v.search.Blur()
	v.table.Blur()

	v.status.SetHints(v.keymap.ShortHelp())
	switch f {
	case FieldToken:
		return v.token.Focus()
	case FieldAccount:
		v.accounts.Focus()
	case FieldSearch:
		return v.search.Focus()
	case FieldTable:
		v.table.Focus()
		v.status.SetHints(v.keymap.TableHelp())
	case fieldCount:
	}
	return nil
}

func (v *View) submitTokenCmd(token string) tea.Cmd {
	v.status.SetWorking("Saving developer token")
	ctx, manager := v.ctx, v.manager
	return func() tea.Msg {
		validation, err := manager.SetDeveloperToken(ctx, token)
		return messages.TokenSubmitted{Validation: validation, Err: err}
	}
}

func (v *View) addAccountCmd() tea.Cmd {
	v.status.SetWorking("Waiting for Google sign-in in your browser")
	ctx, manager := v.ctx, v.manager
	return func() tea.Msg {
		acc, err := manager.AddAccount(ctx)
		return messages.AccountAdded{Account: acc, Err: err}
	}
}

func (v *View) selectAccountCmd(email string) tea.Cmd {
	v.status.SetWorking("Switching to " + email)
	ctx, manager := v.ctx, v.manager
	return func() tea.Msg {
		acc, err := manager.SelectAccount(ctx, email)
		return messages.AccountSelected{Account: acc, Err: err}
	}
}

func (v *View) refreshCmd() tea.Cmd {
	v.status.SetWorking("Refreshing customers")
	ctx, manager := v.ctx, v.manager
	return func() tea.Msg {
		customers, err := manager.Refresh(ctx)
		return messages.CustomersLoaded{Customers: customers, Err: err}
	}
}

func (v *View) createChildCmd(parentID string) tea.Cmd {
	v.status.SetWorking("Creating child MCC")
	ctx, manager := v.ctx, v.manager
	return func() tea.Msg {
		created, err := manager.CreateChildMCC(ctx, parentID, "")
		return messages.ChildCreated{Customer: created, Err: err}
	}
}

// View renders the page.
func (v *View) View() string {
	title := v.styles.Title.Render("mcc") + v.styles.Muted.Render("  Google Ads Manager")
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		v.token.View(),
		v.accounts.View(),
		v.search.View(),
		"",
		v.table.View(),
		"",
		v.status.View(),
	)
}

// SetDimensions sizes the page to the terminal.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.token.SetWidth(width)
	v.search.SetWidth(width)
	v.status.SetWidth(width)
	v.table.SetHeight(height - chromeHeight)
}

// Focus returns the focused field.
func (v *View) Focus() Field {
	return v.focus
}

// CapturesText reports whether keys go to a text input.
func (v *View) CapturesText() bool {
	return v.focus == FieldToken || v.focus == FieldSearch
}

// Snapshot returns the last rendered manager snapshot.
func (v *View) Snapshot() domain.ManagerSnapshot {
	return v.snapshot
}
