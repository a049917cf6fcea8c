package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// dodgeLines are shown each time "no" slips away.
var dodgeLines = []string{
	"Hmm, that button seems shy.",
	"Nope, it ran off again.",
	"Are you sure you pressed the right one?",
	"The no button has left the chat.",
}

// ProposalModel is the view model for the proposal.
type ProposalModel struct {
	status nav.ProposalStatus
	dodges int
	width  int
	height int
}

// NewProposalModel creates a ProposalModel awaiting an answer.
func NewProposalModel(width, height int) ProposalModel {
	return ProposalModel{width: width, height: height}
}

// SetStatus mirrors the session's proposal status.
func (m *ProposalModel) SetStatus(s nav.ProposalStatus) {
	if s == nav.Pending && m.status != nav.Pending {
		m.dodges = 0
	}
	m.status = s
}

// Update handles messages for the proposal view.
func (m ProposalModel) Update(msg tea.Msg) (ProposalModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.status != nav.Pending {
			if msg.String() == tui.KeyEnter {
				return m, emit(GoMsg{Action: nav.OpenDates})
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, tui.DefaultKeyMap.Yes):
			return m, emit(AcceptMsg{Always: false})
		case key.Matches(msg, tui.DefaultKeyMap.Always):
			return m, emit(AcceptMsg{Always: true})
		case msg.String() == "n":
			m.dodges++
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// View renders the proposal view.
func (m ProposalModel) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Will you be my Valentine? 💌"))
	b.WriteString("\n\n")

	switch m.status {
	case nav.Accepted:
		b.WriteString(tui.SuccessStyle.Render("Yay! You just made my whole year. 💕"))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: plan our dates · Esc: ask again"))
	case nav.AcceptedAlways:
		b.WriteString(tui.SuccessStyle.Render("Always and forever it is. 💞"))
		b.WriteString("\n\n")
		b.WriteString(tui.DimStyle.Render("Enter: plan our dates · Esc: ask again"))
	default:
		b.WriteString(tui.SelectedStyle.Render("[y] Yes"))
		b.WriteString("   ")
		b.WriteString(tui.SelectedStyle.Render("[a] Always"))
		b.WriteString(strings.Repeat(" ", 3+(m.dodges*7)%24))
		b.WriteString(tui.DimStyle.Render("[n] No"))
		b.WriteString("\n\n")
		if m.dodges > 0 {
			b.WriteString(tui.WarningStyle.Render(dodgeLines[(m.dodges-1)%len(dodgeLines)]))
			b.WriteString("\n\n")
		}
		b.WriteString(tui.DimStyle.Render("Esc: back"))
	}

	return tui.BoxStyle.Width(boxWidth(m.width)).Render(b.String())
}
