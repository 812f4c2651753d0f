// Package dropdown provides the account selector for the TUI.
package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// AddAccountLabel is the trailing option that signs in another account.
const AddAccountLabel = "+ Add account"

// Choice is what the operator picked from the open dropdown.
type Choice struct {
	// Account is set when an existing account was picked.
	Account *domain.Account
	// Add is true when the add-account option was picked.
	Add bool
}

// Accounts is a dropdown listing signed-in accounts plus an add option.
type Accounts struct {
	styles   *styles.Styles
	accounts []domain.Account
	selected string
	open     bool
	cursor   int
	focused  bool
}

// NewAccounts creates an empty, closed account selector.
func NewAccounts(s *styles.Styles) *Accounts {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Accounts{styles: s}
}

// SetAccounts replaces the options and the selected email.
func (a *Accounts) SetAccounts(accounts []domain.Account, selected *domain.Account) {
	a.accounts = append([]domain.Account(nil), accounts...)
	a.selected = ""
	if selected != nil {
		a.selected = selected.Email
	}
	if a.cursor > len(a.accounts) {
		a.cursor = len(a.accounts)
	}
}

// Open shows the options with the cursor on the selected account.
func (a *Accounts) Open() {
	a.open = true
	a.cursor = 0
	if i := domain.FindAccount(a.accounts, a.selected); i >= 0 {
		a.cursor = i
	}
}

// Close hides the options.
func (a *Accounts) Close() {
	a.open = false
}

// IsOpen reports whether the options are shown.
func (a *Accounts) IsOpen() bool {
	return a.open
}

// MoveUp moves the cursor up.
func (a *Accounts) MoveUp() {
	if a.cursor > 0 {
		a.cursor--
	}
}

// MoveDown moves the cursor down; the add option is last.
func (a *Accounts) MoveDown() {
	if a.cursor < len(a.accounts) {
		a.cursor++
	}
}

// Choose closes the dropdown and returns the option under the cursor.
func (a *Accounts) Choose() Choice {
	a.open = false
	if a.cursor >= len(a.accounts) {
		return Choice{Add: true}
	}
	acc := a.accounts[a.cursor]
	return Choice{Account: &acc}
}

// Focus marks the selector as the active field.
func (a *Accounts) Focus() { a.focused = true }

// Blur clears focus and closes the options.
func (a *Accounts) Blur() {
	a.focused = false
	a.open = false
}

// Focused returns whether the selector is the active field.
func (a *Accounts) Focused() bool { return a.focused }

// View renders the selector and, when open, its options.
func (a *Accounts) View() string {
	current := a.styles.Muted.Render("No account (press enter to sign in)")
	if i := domain.FindAccount(a.accounts, a.selected); i >= 0 {
		current = a.styles.Normal.Render(a.accounts[i].Label())
	}

	arrow := "▾"
	if a.open {
		arrow = "▴"
	}
	label := a.styles.Label.Render("Account")
	box := a.styles.FieldFor(a.focused).Render(current + " " + arrow)
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	head := lipgloss.JoinHorizontal(lipgloss.Center, label, box)
	if !a.open {
		return head
	}

	indent := strings.Repeat(" ", a.styles.Label.GetWidth()+2)
	lines := []string{head}
	for i, acc := range a.accounts {
		lines = append(lines, indent+a.renderOption(i, acc.Label()))
	}
	lines = append(lines, indent+a.renderOption(len(a.accounts), AddAccountLabel))
	return strings.Join(lines, "\n")
}

func (a *Accounts) renderOption(i int, text string) string {
	if i == a.cursor {
		return a.styles.Selected.Render("> " + text)
	}
	return a.styles.Normal.Render("  " + text)
}
