// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Common key binding constants.
const (
	KeyCtrlC = "ctrl+c"
	KeyTab   = "tab"
	KeyEnter = "enter"
	KeyEsc   = "esc"
	KeyUp    = "up"
	KeyDown  = "down"
	KeySpace = " "
)

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model in alternate screen mode.
// Callers check IsTTY first and use the FallbackRunner otherwise.
func Run(m tea.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
