package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keepsake-app/keepsake/internal/codec"
	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// RevealModel is the view model for the surprise reveal.
type RevealModel struct {
	draw    nav.RevealDraw
	drawn   bool
	preview string
	width   int
	height  int
}

// NewRevealModel creates a RevealModel with nothing drawn.
func NewRevealModel(width, height int) RevealModel {
	return RevealModel{width: width, height: height}
}

// SetDraw shows d. The image is looked up in images; an index that no
// longer exists shows no picture.
func (m *RevealModel) SetDraw(d nav.RevealDraw, drawn bool, images []codec.Payload) {
	m.draw = d
	m.drawn = drawn
	m.preview = ""
	if drawn && d.ImageIndex >= 0 && d.ImageIndex < len(images) {
		m.preview = renderPreview(images[d.ImageIndex], previewCols+8, previewRows+2)
	}
}

// Update handles messages for the reveal view.
func (m RevealModel) Update(msg tea.Msg) (RevealModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Draw):
			return m, emit(DrawMsg{})
		case msg.String() == tui.KeyEnter:
			return m, emit(GoMsg{Action: nav.Propose})
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the reveal view.
func (m RevealModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("A little surprise"))
	b.WriteString("\n\n")

	if !m.drawn {
		b.WriteString(tui.AccentStyle.Render("Press r to reveal something just for you."))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("r: reveal · Enter: one more thing · Esc: back"))
		return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
	}

	msg := lipgloss.NewStyle().Width(boxWidth(m.width) - 8).Render("“" + m.draw.Message + "”")
	b.WriteString(tui.AccentStyle.Render(msg))
	b.WriteString("\n\n")
	if m.preview != "" {
		b.WriteString(m.preview)
		b.WriteString("\n\n")
	}
	b.WriteString(tui.DimStyle.Render("r: another · Enter: one more thing · Esc: back"))

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}
