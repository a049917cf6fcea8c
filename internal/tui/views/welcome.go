package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// WelcomeModel is the view model for the welcome screen.
type WelcomeModel struct {
	width  int
	height int
}

// NewWelcomeModel creates a WelcomeModel.
func NewWelcomeModel(width, height int) WelcomeModel {
	return WelcomeModel{width: width, height: height}
}

// Update handles messages for the welcome view.
func (m WelcomeModel) Update(msg tea.Msg) (WelcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == tui.KeyEnter {
			return m, emit(GoMsg{Action: nav.Begin})
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the welcome view.
func (m WelcomeModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Welcome, my love ♥"))
	b.WriteString("\n\n")
	b.WriteString("I made you a little something.\n")
	b.WriteString(tui.AccentStyle.Render("A walk through our story, one page at a time."))
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("Enter: begin · Esc: lock"))

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}
