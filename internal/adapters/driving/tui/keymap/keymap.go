// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits from anywhere.
	Quit key.Binding
	// QuitTable exits when the table has focus.
	QuitTable key.Binding
	Help      key.Binding

	NextField key.Binding
	PrevField key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding

	// RevealToken toggles masking of the developer token.
	RevealToken key.Binding

	Refresh     key.Binding
	CreateChild key.Binding
	SortID      key.Binding
	SortName    key.Binding
	SortType    key.Binding
	SortLevel   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		QuitTable: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		RevealToken: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "show/hide token")),

		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		CreateChild: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "create child MCC")),
		SortID:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort by id")),
		SortName:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort by name")),
		SortType:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "sort by type")),
		SortLevel:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "sort by level")),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Help, k.Quit}
}

// TableHelp returns the bindings shown while the table has focus.
func (k *KeyMap) TableHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.CreateChild, k.SortName, k.Help, k.QuitTable}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Up, k.Down, k.Select, k.Cancel},
		{k.RevealToken, k.Refresh, k.CreateChild},
		{k.SortID, k.SortName, k.SortType, k.SortLevel},
		{k.Help, k.QuitTable, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
