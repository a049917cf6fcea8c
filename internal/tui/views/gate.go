package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// maxBoxWidth is the widest any screen box grows.
const maxBoxWidth = 72

const (
	yearPrompt = "When did our story begin?"
	cityPrompt = "Which city did destiny pick?"
)

// GateModel is the view model for the two-step gate.
type GateModel struct {
	input       textinput.Model
	step        int
	hint        string
	unlocked    bool
	role        gate.Role
	backVisible bool
	width       int
	height      int
}

// NewGateModel creates a GateModel at step 1.
func NewGateModel(width, height int) GateModel {
	ti := textinput.New()
	ti.Placeholder = "a year..."
	ti.CharLimit = 64
	ti.Width = boxWidth(width) - 8
	ti.Focus()

	return GateModel{
		input:  ti,
		step:   1,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the gate view.
func (m GateModel) Init() tea.Cmd {
	return textinput.Blink
}

// SetState mirrors the session's gate state.
func (m *GateModel) SetState(step int, unlocked bool, role gate.Role, backVisible bool) {
	if step != m.step {
		m.hint = ""
		m.input.Reset()
	}
	m.step = step
	m.unlocked = unlocked
	m.role = role
	m.backVisible = backVisible
	if step == 1 {
		m.input.Placeholder = "a year..."
	} else {
		m.input.Placeholder = "a city..."
	}
}

// SetHint shows a rejection hint under the input.
func (m *GateModel) SetHint(hint string) {
	m.hint = hint
}

// Update handles messages for the gate view.
func (m GateModel) Update(msg tea.Msg) (GateModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.unlocked {
			return m, nil
		}
		if msg.String() == tui.KeyEnter {
			value := m.input.Value()
			m.input.Reset()
			return m, emit(SubmitAnswerMsg{Value: value})
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = boxWidth(msg.Width) - 8
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the gate view.
func (m GateModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("♥ A little secret first"))
	b.WriteString("\n\n")

	if m.unlocked {
		if m.role == gate.RoleElevated {
			b.WriteString(tui.SuccessStyle.Render("Unlocked, keeper of the keepsake 🔑"))
		} else {
			b.WriteString(tui.SuccessStyle.Render("Unlocked 💖"))
		}
		b.WriteString("\n\n")
		b.WriteString(tui.AccentStyle.Render("Opening the door..."))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Esc: lock again"))
		return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
	}

	b.WriteString(tui.DimStyle.Render(stepLabel(m.step)))
	b.WriteString("\n")
	if m.step == 1 {
		b.WriteString(yearPrompt)
	} else {
		b.WriteString(cityPrompt)
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.hint != "" {
		b.WriteString(tui.WarningStyle.Render(m.hint))
		b.WriteString("\n\n")
	}

	footer := "Enter: answer"
	if m.backVisible {
		footer += " · Esc: back"
	}
	b.WriteString(tui.DimStyle.Render(footer))

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}

func stepLabel(step int) string {
	if step == 1 {
		return "Step 1 of 2"
	}
	return "Step 2 of 2"
}

// boxWidth caps the screen box at maxBoxWidth.
func boxWidth(width int) int {
	w := maxBoxWidth
	if width-4 < w {
		w = width - 4
	}
	if w < 20 {
		w = 20
	}
	return w
}
