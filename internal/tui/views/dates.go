package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/collection"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// DatesModel is the view model for the date wishlist.
type DatesModel struct {
	dates     []collection.DateSuggestion
	cursor    int
	canDelete bool

	form     bool
	focus    int // 0 name, 1 location
	name     textinput.Model
	location textinput.Model

	width  int
	height int
}

// NewDatesModel creates a DatesModel.
func NewDatesModel(width, height int) DatesModel {
	name := textinput.New()
	name.Placeholder = "Where should we go?"
	name.CharLimit = 120

	loc := textinput.New()
	loc.Placeholder = collection.LocationTBD
	loc.CharLimit = 120

	m := DatesModel{name: name, location: loc, width: width, height: height}
	m.resize()
	return m
}

// SetDates replaces the displayed entries, newest first.
func (m *DatesModel) SetDates(dates []collection.DateSuggestion, canDelete bool) {
	m.dates = dates
	m.canDelete = canDelete
	if m.cursor >= len(dates) {
		m.cursor = max(len(dates)-1, 0)
	}
}

// CloseForm clears and hides the add form after a successful add.
func (m *DatesModel) CloseForm() {
	m.form = false
	m.focus = 0
	m.name.Reset()
	m.location.Reset()
	m.name.Blur()
	m.location.Blur()
	m.cursor = 0
}

// Capturing reports whether the add form owns the keyboard.
func (m DatesModel) Capturing() bool {
	return m.form
}

func (m *DatesModel) resize() {
	w := boxWidth(m.width) - 16
	m.name.Width = w
	m.location.Width = w
}

func (m *DatesModel) setFocus(i int) tea.Cmd {
	m.focus = i
	if i == 0 {
		m.location.Blur()
		return m.name.Focus()
	}
	m.name.Blur()
	return m.location.Focus()
}

// Update handles messages for the dates view.
func (m DatesModel) Update(msg tea.Msg) (DatesModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.form {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case tui.KeyTab, tui.KeyUp, tui.KeyDown:
				return m, m.setFocus(1 - m.focus)
			case tui.KeyEnter:
				return m, emit(AddDateMsg{Name: m.name.Value(), Location: m.location.Value()})
			case tui.KeyEsc:
				m.CloseForm()
				return m, nil
			}
		}
		if m.focus == 0 {
			m.name, cmd = m.name.Update(msg)
		} else {
			m.location, cmd = m.location.Update(msg)
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, tui.DefaultKeyMap.Down):
			if m.cursor < len(m.dates)-1 {
				m.cursor++
			}
		case key.Matches(msg, tui.DefaultKeyMap.Add):
			m.form = true
			return m, tea.Batch(m.setFocus(0), textinput.Blink)
		case key.Matches(msg, tui.DefaultKeyMap.Toggle), msg.String() == tui.KeyEnter:
			if m.cursor < len(m.dates) {
				return m, emit(ToggleDateMsg{ID: m.dates[m.cursor].ID})
			}
		case key.Matches(msg, tui.DefaultKeyMap.Delete):
			if m.canDelete && m.cursor < len(m.dates) {
				return m, emit(DeleteDateMsg{ID: m.dates[m.cursor].ID})
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
	}

	return m, nil
}

// View renders the dates view.
func (m DatesModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Dates we should go on"))
	b.WriteString("\n\n")

	if len(m.dates) == 0 {
		b.WriteString(tui.AccentStyle.Render("Nothing planned yet. Press a to suggest a place."))
		b.WriteString("\n")
	}
	for i, d := range m.dates {
		mark := tui.DateOpen
		if d.Visited {
			mark = tui.DateVisited
		}
		meta := tui.DimStyle.Render(" · " + d.Location + " · " + d.DateAdded.Local().Format("Jan 2, 2006"))
		if i == m.cursor && !m.form {
			b.WriteString(tui.Cursor + " " + mark + " " + tui.SelectedStyle.Render(d.Name) + meta)
		} else {
			b.WriteString("  " + mark + " " + d.Name + meta)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.form {
		b.WriteString(m.fieldLabel(0, "Place    "))
		b.WriteString(m.name.View())
		b.WriteString("\n")
		b.WriteString(m.fieldLabel(1, "Location "))
		b.WriteString(m.location.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Tab: next field · Enter: add · Esc: cancel"))
	} else {
		footer := "↑↓ select · a: add · space: visited"
		if m.canDelete {
			footer += " · d: delete"
		}
		footer += " · Esc: back"
		b.WriteString(tui.DimStyle.Render(footer))
	}

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}

func (m DatesModel) fieldLabel(i int, label string) string {
	if m.focus == i {
		return tui.ActiveFieldStyle.Render(label)
	}
	return tui.DimStyle.Render(label)
}
