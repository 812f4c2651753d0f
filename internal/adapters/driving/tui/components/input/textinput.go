// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// field is the shared wrapper around a bubbles textinput.
type field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
}

func newField(s *styles.Styles, label, placeholder string) field {
	if s == nil {
		s = styles.DefaultStyles()
	}
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	return field{textinput: ti, styles: s, label: label}
}

func (f *field) render(suffix string) string {
	label := f.styles.Label.Render(f.label)
	box := f.styles.FieldFor(f.textinput.Focused()).Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box, " ", suffix)
}

// Value returns the current input value.
func (f *field) Value() string { return f.textinput.Value() }

// SetValue sets the input value.
func (f *field) SetValue(v string) { f.textinput.SetValue(v) }

// Focus sets focus on the input.
func (f *field) Focus() tea.Cmd { return f.textinput.Focus() }

// Blur removes focus from the input.
func (f *field) Blur() { f.textinput.Blur() }

// Focused returns whether the input is focused.
func (f *field) Focused() bool { return f.textinput.Focused() }

// SetWidth sets the width of the text area.
func (f *field) SetWidth(width int) {
	inputWidth := width - 30
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// TokenInput edits the developer token. The value is masked unless
// revealed and the last validation is shown next to the field.
type TokenInput struct {
	field
	revealed   bool
	validation domain.TokenValidation
}

// NewTokenInput creates a masked token input.
func NewTokenInput(s *styles.Styles) *TokenInput {
	t := &TokenInput{
		field:      newField(s, "Developer token", "Enter your Google Ads developer token"),
		validation: domain.ValidateDeveloperToken(""),
	}
	t.textinput.EchoMode = textinput.EchoPassword
	t.textinput.EchoCharacter = '*'
	return t
}

// Update handles input messages.
func (t *TokenInput) Update(msg tea.Msg) (*TokenInput, tea.Cmd) {
	var cmd tea.Cmd
	t.textinput, cmd = t.textinput.Update(msg)
	return t, cmd
}

// View renders the token input with its validation state.
func (t *TokenInput) View() string {
	return t.render(t.status())
}

func (t *TokenInput) status() string {
	switch {
	case t.validation.Valid:
		return t.styles.Success.Render("✓ valid")
	case t.validation.Message != "":
		return t.styles.Warning.Render(t.validation.Message)
	default:
		return ""
	}
}

// ToggleReveal switches between masked and plain display.
func (t *TokenInput) ToggleReveal() {
	t.revealed = !t.revealed
	if t.revealed {
		t.textinput.EchoMode = textinput.EchoNormal
	} else {
		t.textinput.EchoMode = textinput.EchoPassword
	}
}

// Revealed reports whether the token is shown in plain text.
func (t *TokenInput) Revealed() bool {
	return t.revealed
}

// SetValidation sets the validation result shown beside the field.
func (t *TokenInput) SetValidation(v domain.TokenValidation) {
	t.validation = v
}

// Validation returns the validation result being shown.
func (t *TokenInput) Validation() domain.TokenValidation {
	return t.validation
}

// SearchInput is the customer table filter.
type SearchInput struct {
	field
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	return &SearchInput{field: newField(s, "Search", "Filter by name or id...")}
}

// Update handles input messages.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd
}

// View renders the search input.
func (s *SearchInput) View() string {
	return s.render("")
}

// Reset clears the input.
func (s *SearchInput) Reset() {
	s.textinput.Reset()
}
