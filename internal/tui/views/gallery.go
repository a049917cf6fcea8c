package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keepsake-app/keepsake/internal/codec"
	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// Preview cell box on the gallery screen.
const (
	previewCols = 32
	previewRows = 10
)

// GalleryModel is the view model for the photo gallery.
type GalleryModel struct {
	images      []codec.Payload
	cursor      int
	preview     string
	canDelete   bool
	adding      bool
	compressing bool
	input       textinput.Model
	width       int
	height      int
}

// NewGalleryModel creates a GalleryModel.
func NewGalleryModel(width, height int) GalleryModel {
	ti := textinput.New()
	ti.Placeholder = "/path/to/photo.jpg another.png ..."
	ti.CharLimit = 4096
	ti.Width = boxWidth(width) - 8

	return GalleryModel{input: ti, width: width, height: height}
}

// SetImages replaces the displayed images. canDelete shows the delete
// affordance for the elevated role.
func (m *GalleryModel) SetImages(images []codec.Payload, canDelete bool) {
	m.images = images
	m.canDelete = canDelete
	if m.cursor >= len(images) {
		m.cursor = max(len(images)-1, 0)
	}
	m.refreshPreview()
}

// SetCompressing marks an upload batch in flight.
func (m *GalleryModel) SetCompressing(on bool) {
	m.compressing = on
}

// Capturing reports whether the path input owns the keyboard.
func (m GalleryModel) Capturing() bool {
	return m.adding
}

// Cursor returns the selected image index.
func (m GalleryModel) Cursor() int {
	return m.cursor
}

func (m *GalleryModel) refreshPreview() {
	m.preview = ""
	if m.cursor < len(m.images) {
		m.preview = renderPreview(m.images[m.cursor], previewCols, previewRows)
	}
}

// Update handles messages for the gallery view.
func (m GalleryModel) Update(msg tea.Msg) (GalleryModel, tea.Cmd) {
	var cmd tea.Cmd

	if m.adding {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case tui.KeyEnter:
				paths := SplitPaths(m.input.Value())
				m.adding = false
				m.input.Reset()
				m.input.Blur()
				if len(paths) == 0 {
					return m, nil
				}
				return m, emit(AddImagesMsg{Paths: paths})
			case tui.KeyEsc:
				m.adding = false
				m.input.Reset()
				m.input.Blur()
				return m, nil
			}
		}
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refreshPreview()
			}
		case key.Matches(msg, tui.DefaultKeyMap.Down):
			if m.cursor < len(m.images)-1 {
				m.cursor++
				m.refreshPreview()
			}
		case key.Matches(msg, tui.DefaultKeyMap.Add):
			if m.compressing {
				return m, nil
			}
			m.adding = true
			m.input.Focus()
			return m, textinput.Blink
		case key.Matches(msg, tui.DefaultKeyMap.Delete):
			if m.canDelete && len(m.images) > 0 {
				return m, emit(DeleteImageMsg{Index: m.cursor})
			}
		case msg.String() == tui.KeyEnter:
			return m, emit(GoMsg{Action: nav.OpenReveal})
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = boxWidth(msg.Width) - 8
	}

	return m, nil
}

// View renders the gallery view.
func (m GalleryModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Our gallery"))
	b.WriteString("\n\n")

	if len(m.images) == 0 {
		b.WriteString(tui.AccentStyle.Render("No photos yet. Press a to add the first one."))
		b.WriteString("\n")
	} else {
		var list strings.Builder
		for i, p := range m.images {
			line := fmt.Sprintf("Photo %d  %.1f KB", i+1, payloadSize(p))
			if i == m.cursor {
				list.WriteString(tui.Cursor + " " + tui.SelectedStyle.Render(line))
			} else {
				list.WriteString("  " + line)
			}
			list.WriteString("\n")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", m.preview))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.adding:
		b.WriteString("Files to add (space separated, quotes for spaces):\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: upload · Esc: cancel"))
	case m.compressing:
		b.WriteString(tui.WarningStyle.Render("Compressing photos..."))
	default:
		footer := "↑↓ select · a: add"
		if m.canDelete {
			footer += " · d: delete"
		}
		footer += " · Enter: continue · Esc: back"
		b.WriteString(tui.DimStyle.Render(footer))
	}

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}
