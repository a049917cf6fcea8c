// Package tui implements the terminal user interface using Bubble Tea.
package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	Back  key.Binding
	Tab   key.Binding

	// Control
	CtrlC key.Binding

	// Actions
	Gallery key.Binding
	Skip    key.Binding
	Add     key.Binding
	Delete  key.Binding
	Toggle  key.Binding
	Draw    key.Binding
	Yes     key.Binding
	Always  key.Binding
}

// DefaultKeyMap provides the default key bindings for the TUI.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "exit"),
	),
	Gallery: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "gallery"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip to surprise"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "x"),
		key.WithHelp("d", "delete"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle visited"),
	),
	Draw: key.NewBinding(
		key.WithKeys("r", " "),
		key.WithHelp("r", "reveal"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	Always: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "always"),
	),
}

// HelpLine renders short help for the given bindings.
func HelpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if i > 0 && out != "" {
			out += "   "
		}
		out += h.Key + ": " + h.Desc
	}
	return DimStyle.Render(out)
}
