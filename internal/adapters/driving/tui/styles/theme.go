// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	// Manager highlights MCC rows in the customer table.
	Manager lipgloss.Color
}

// DefaultTheme returns the default colour theme, loosely following Google's
// brand palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#4285F4"), // Blue
		Secondary:  lipgloss.Color("#34A853"), // Green
		Foreground: lipgloss.Color("#E8EAED"),
		Muted:      lipgloss.Color("#9AA0A6"),
		Success:    lipgloss.Color("#81C995"),
		Warning:    lipgloss.Color("#FDD663"),
		Error:      lipgloss.Color("#F28B82"),
		Border:     lipgloss.Color("#5F6368"),
		Manager:    lipgloss.Color("#FBBC04"), // Yellow
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Label    lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Field frames an unfocused input; FocusedField a focused one.
	Field        lipgloss.Style
	FocusedField lipgloss.Style

	TableHeader lipgloss.Style
	ManagerRow  lipgloss.Style
	StatusBar   lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	field := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			Width(18),
		Normal: lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:  lipgloss.NewStyle().Foreground(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		Field:        field,
		FocusedField: field.BorderForeground(theme.Primary),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary).
			Underline(true),
		ManagerRow: lipgloss.NewStyle().Foreground(theme.Manager),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#202124")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// FieldFor returns the frame style for an input with the given focus.
func (s *Styles) FieldFor(focused bool) lipgloss.Style {
	if focused {
		return s.FocusedField
	}
	return s.Field
}
