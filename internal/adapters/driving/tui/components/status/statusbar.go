// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/mcc-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// Bar displays the manager state, the last notice or error and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   domain.ManagerState
	notice  string
	err     error
	hints   []key.Binding
	width   int
	working string
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{
		styles: s,
		keymap: km,
		hints:  km.ShortHelp(),
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch {
	case b.working != "":
		return b.styles.Warning.Render(b.working + "...")
	case b.err != nil:
		return b.styles.Error.Render(fmt.Sprintf("Error: %v", b.err))
	case b.notice != "":
		return b.styles.Success.Render(b.notice)
	}

	switch b.state {
	case domain.StateUnauthenticated:
		return b.styles.Muted.Render("Sign in to get started")
	case domain.StateAuthenticated:
		return b.styles.Muted.Render("Enter a developer token")
	case domain.StateRefreshing:
		return b.styles.Warning.Render("Refreshing...")
	case domain.StateError:
		return b.styles.Error.Render("Error")
	case domain.StateReady:
		return b.styles.Muted.Render("Ready")
	}
	return b.styles.Muted.Render("Ready")
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, binding := range b.hints {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Help.Render(strings.Join(hints, " | "))
}

// SetSnapshot updates state, notice and error from a manager snapshot.
func (b *Bar) SetSnapshot(snap domain.ManagerSnapshot) {
	b.state = snap.State
	b.notice = snap.Notice
	b.err = snap.Err
}

// SetError shows err until the next snapshot or Clear.
func (b *Bar) SetError(err error) {
	b.err = err
}

// SetWorking shows a progress label; empty clears it.
func (b *Bar) SetWorking(label string) {
	b.working = label
}

// SetHints sets the key hints shown on the right.
func (b *Bar) SetHints(hints []key.Binding) {
	b.hints = hints
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Err returns the error being shown.
func (b *Bar) Err() error {
	return b.err
}

// Clear drops the notice, error and progress label.
func (b *Bar) Clear() {
	b.notice = ""
	b.err = nil
	b.working = ""
}
