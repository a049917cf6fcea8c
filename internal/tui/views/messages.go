// Package views provides TUI view components for the keepsake screens.
package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/nav"
)

// ============================================================================
// Intent Messages
// ============================================================================
//
// Views never mutate shared state. They emit these messages and the app
// applies them to the session and collections.

// SubmitAnswerMsg carries a raw gate answer.
type SubmitAnswerMsg struct {
	Value string
}

// GoMsg requests a forward transition.
type GoMsg struct {
	Action nav.Action
}

// AddImagesMsg requests compression and upload of the files at Paths.
type AddImagesMsg struct {
	Paths []string
}

// DeleteImageMsg requests removal of the gallery image at Index.
type DeleteImageMsg struct {
	Index int
}

// DrawMsg requests a new reveal draw.
type DrawMsg struct{}

// AcceptMsg answers the proposal.
type AcceptMsg struct {
	Always bool
}

// AddDateMsg requests a new wishlist entry.
type AddDateMsg struct {
	Name     string
	Location string
}

// ToggleDateMsg flips the visited flag of the entry with ID.
type ToggleDateMsg struct {
	ID string
}

// DeleteDateMsg requests removal of the entry with ID.
type DeleteDateMsg struct {
	ID string
}

// emit wraps msg in a command.
func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
