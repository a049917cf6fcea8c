package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/content"
	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// chromeLines is the vertical space taken by the box, title and footer.
const chromeLines = 10

// TimelineModel is the view model for the scrolling timeline.
type TimelineModel struct {
	entries  []content.Entry
	viewport viewport.Model
	width    int
	height   int
}

// NewTimelineModel creates a TimelineModel over entries.
func NewTimelineModel(entries []content.Entry, width, height int) TimelineModel {
	m := TimelineModel{entries: entries, width: width, height: height}
	m.viewport = viewport.New(boxWidth(width)-6, max(height-chromeLines, 3))
	m.viewport.SetContent(m.renderEntries())
	return m
}

// Update handles messages for the timeline view.
func (m TimelineModel) Update(msg tea.Msg) (TimelineModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case msg.String() == tui.KeyEnter, key.Matches(msg, tui.DefaultKeyMap.Gallery):
			return m, emit(GoMsg{Action: nav.OpenGallery})
		case key.Matches(msg, tui.DefaultKeyMap.Skip):
			return m, emit(GoMsg{Action: nav.OpenReveal})
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = boxWidth(msg.Width) - 6
		m.viewport.Height = max(msg.Height-chromeLines, 3)
		m.viewport.SetContent(m.renderEntries())
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m TimelineModel) renderEntries() string {
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(tui.SelectedStyle.Render("● " + e.Title))
		b.WriteString("\n")
		b.WriteString("  " + e.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the timeline view.
func (m TimelineModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Our story"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(tui.DimStyle.Render("↑↓ scroll · Enter: gallery · s: skip to the surprise · Esc: back"))

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}
