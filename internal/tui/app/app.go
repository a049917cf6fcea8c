// Package app provides the main TUI application that wires all views together.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keepsake-app/keepsake/internal/collection"
	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
	"github.com/keepsake-app/keepsake/internal/tui/commands"
	"github.com/keepsake-app/keepsake/internal/tui/views"
)

// confettiRows is the height of the confetti strip above the screen box.
const confettiRows = 3

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model

	// View models
	gateView     views.GateModel
	welcomeView  views.WelcomeModel
	timelineView views.TimelineModel
	galleryView  views.GalleryModel
	revealView   views.RevealModel
	proposalView views.ProposalModel
	datesView    views.DatesModel
}

// New creates a new App over model.
func New(model *tui.Model) *App {
	w, h := model.Width, model.Height
	a := &App{
		model:        model,
		gateView:     views.NewGateModel(w, h),
		welcomeView:  views.NewWelcomeModel(w, h),
		timelineView: views.NewTimelineModel(model.WS.Content.Timeline(), w, h),
		galleryView:  views.NewGalleryModel(w, h),
		revealView:   views.NewRevealModel(w, h),
		proposalView: views.NewProposalModel(w, h),
		datesView:    views.NewDatesModel(w, h),
	}
	a.sync()
	return a
}

// Model exposes the shared state.
func (a *App) Model() *tui.Model {
	return a.model
}

// Init returns the initial command for the TUI.
func (a *App) Init() tea.Cmd {
	return a.gateView.Init()
}

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		// View models are plain values, so every one can take the new size.
		a.gateView, _ = a.gateView.Update(msg)
		a.welcomeView, _ = a.welcomeView.Update(msg)
		a.timelineView, _ = a.timelineView.Update(msg)
		a.galleryView, _ = a.galleryView.Update(msg)
		a.revealView, _ = a.revealView.Update(msg)
		a.proposalView, _ = a.proposalView.Update(msg)
		a.datesView, _ = a.datesView.Update(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case tui.KeyCtrlC:
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})

		case tui.KeyEsc:
			if !a.capturing() {
				a.back()
				return a, nil
			}
		}

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case tui.UnlockElapsedMsg:
		if a.model.Session.Elapsed(msg.ID) {
			a.model.SetStatus("")
			a.sync()
		}
		return a, nil

	case tui.BurstTickMsg:
		if a.model.PruneBursts(time.Now()) {
			return a, commands.BurstTickCmd()
		}
		return a, nil

	case tui.ImagesCompressedMsg:
		return a, a.handleCompressed(msg)

	case tui.ErrorMsg:
		a.model.SetErr(msg.Err)
		return a, nil

	case views.SubmitAnswerMsg:
		return a, a.handleAnswer(msg)

	case views.GoMsg:
		if a.model.Session.Go(msg.Action) {
			a.model.SetStatus("")
			a.sync()
		}
		return a, nil

	case views.AddImagesMsg:
		if a.model.Compressing {
			return a, nil
		}
		a.model.Compressing = true
		a.model.SetStatus("")
		a.galleryView.SetCompressing(true)
		return a, commands.CompressCmd(a.model.WS.Codec, msg.Paths, a.model.WS.Logger)

	case views.DeleteImageMsg:
		err := a.model.WS.Gallery.Delete(context.Background(), a.model.Session.Role(), msg.Index)
		a.report(err, "Photo removed")
		a.sync()
		return a, nil

	case views.DrawMsg:
		ws := a.model.WS
		a.model.Session.Draw(ws.Content.Messages(), ws.Gallery.Len())
		a.sync()
		return a, nil

	case views.AcceptMsg:
		if a.model.Session.Accept(msg.Always) {
			a.sync()
			return a, a.startBursts()
		}
		return a, nil

	case views.AddDateMsg:
		_, err := a.model.WS.Wishlist.Add(context.Background(), msg.Name, msg.Location)
		if err == nil {
			a.datesView.CloseForm()
		}
		a.report(err, "Added to our list")
		a.sync()
		return a, nil

	case views.ToggleDateMsg:
		a.report(a.model.WS.Wishlist.Toggle(context.Background(), msg.ID), "")
		a.sync()
		return a, nil

	case views.DeleteDateMsg:
		err := a.model.WS.Wishlist.Delete(context.Background(), a.model.Session.Role(), msg.ID)
		a.report(err, "Removed from our list")
		a.sync()
		return a, nil
	}

	return a.route(msg)
}

// route hands msg to the visible screen's view model.
func (a *App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.model.Session.Screen() {
	case nav.Gate:
		a.gateView, cmd = a.gateView.Update(msg)
	case nav.Welcome:
		a.welcomeView, cmd = a.welcomeView.Update(msg)
	case nav.Timeline:
		a.timelineView, cmd = a.timelineView.Update(msg)
	case nav.Gallery:
		a.galleryView, cmd = a.galleryView.Update(msg)
	case nav.Reveal:
		a.revealView, cmd = a.revealView.Update(msg)
	case nav.Proposal:
		a.proposalView, cmd = a.proposalView.Update(msg)
	case nav.Dates:
		a.datesView, cmd = a.datesView.Update(msg)
	}
	return a, cmd
}

// ============================================================================
// Intent Handlers
// ============================================================================

func (a *App) handleAnswer(msg views.SubmitAnswerMsg) tea.Cmd {
	out := a.model.Session.Submit(msg.Value)
	if out.Ignored {
		return nil
	}

	switch out.Result.Kind {
	case gate.Reject:
		a.gateView.SetHint(out.Result.Reason)
	case gate.Advance:
		a.gateView.SetHint("")
	}
	a.sync()

	if out.Timer == nil {
		return nil
	}
	return tea.Batch(commands.UnlockTimerCmd(*out.Timer), a.startBursts())
}

func (a *App) handleCompressed(msg tui.ImagesCompressedMsg) tea.Cmd {
	a.model.Compressing = false
	a.galleryView.SetCompressing(false)

	res := msg.Result
	err := a.model.WS.Gallery.Add(context.Background(), res.Payloads...)
	switch {
	case err != nil:
		a.model.SetErr(err)
	case len(res.Failed) > 0:
		names := make([]string, len(res.Failed))
		for i, f := range res.Failed {
			names[i] = f.Name
		}
		a.model.SetErr(fmt.Errorf("added %d, could not read: %s", len(res.Payloads), strings.Join(names, ", ")))
	case len(res.Payloads) > 0:
		a.model.SetStatus(fmt.Sprintf("Added %d photo(s)", len(res.Payloads)))
	}
	a.sync()
	return nil
}

// back applies the session's back rule for the visible screen.
func (a *App) back() {
	a.model.Session.Back()
	a.model.SetStatus("")
	a.sync()
}

// report turns a mutator result into status line feedback.
func (a *App) report(err error, ok string) {
	switch {
	case errors.Is(err, collection.ErrPermissionDenied):
		a.model.SetErr(errors.New("only the keeper can delete things"))
	case err != nil:
		a.model.SetErr(err)
	default:
		a.model.SetStatus(ok)
	}
}

// startBursts converts pending effect triggers into confetti.
func (a *App) startBursts() tea.Cmd {
	if a.model.StartBursts(time.Now()) {
		return commands.BurstTickCmd()
	}
	return nil
}

// capturing reports whether the visible view is taking text input, in which
// case esc belongs to the view.
func (a *App) capturing() bool {
	switch a.model.Session.Screen() {
	case nav.Gallery:
		return a.galleryView.Capturing()
	case nav.Dates:
		return a.datesView.Capturing()
	}
	return false
}

// sync pushes session and collection state into the view models.
func (a *App) sync() {
	s := a.model.Session
	ws := a.model.WS
	canDelete := s.Role().CanDelete()
	images := ws.Gallery.Images()

	a.gateView.SetState(s.Step(), s.Unlocked(), s.Role(), s.BackVisible())
	a.galleryView.SetImages(images, canDelete)
	d, drawn := s.RevealDraw()
	a.revealView.SetDraw(d, drawn, images)
	a.proposalView.SetStatus(s.Proposal())
	a.datesView.SetDates(ws.Wishlist.Dates(), canDelete)
}

// ============================================================================
// Rendering
// ============================================================================

// View renders the current application state.
func (a *App) View() string {
	var content string
	switch a.model.Session.Screen() {
	case nav.Gate:
		content = a.gateView.View()
	case nav.Welcome:
		content = a.welcomeView.View()
	case nav.Timeline:
		content = a.timelineView.View()
	case nav.Gallery:
		content = a.galleryView.View()
	case nav.Reveal:
		content = a.revealView.View()
	case nav.Proposal:
		content = a.proposalView.View()
	case nav.Dates:
		content = a.datesView.View()
	default:
		content = "Unknown screen"
	}

	parts := []string{a.renderConfetti(), content}
	if line := a.renderStatus(); line != "" {
		parts = append(parts, "", line)
	}
	return a.centerContent(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// centerContent centers the given content both horizontally and vertically.
func (a *App) centerContent(content string) string {
	return lipgloss.Place(
		a.model.Width,
		a.model.Height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

func (a *App) renderStatus() string {
	switch {
	case a.model.CtrlCPending:
		return tui.WarningStyle.Render("Press Ctrl+C again to exit")
	case a.model.Err != nil:
		return tui.ErrorStyle.Render(a.model.Err.Error())
	case a.model.Status != "":
		return tui.SuccessStyle.Render(a.model.Status)
	}
	return ""
}

// renderConfetti draws the live bursts into a fixed-height strip so the
// screen box does not jump while they run.
func (a *App) renderConfetti() string {
	width := max(a.model.Width, 1)
	grid := make([][]string, confettiRows)
	for i := range grid {
		grid[i] = make([]string, width)
		for j := range grid[i] {
			grid[i][j] = " "
		}
	}

	now := time.Now()
	n := 0
	for _, b := range a.model.Bursts {
		for _, p := range b.Frame(now, a.model.Rand) {
			x := int(p.X * float64(width))
			y := int(p.Y * confettiRows)
			if x < 0 || x >= width || y < 0 || y >= confettiRows {
				continue
			}
			color := tui.ConfettiColors[n%len(tui.ConfettiColors)]
			grid[y][x] = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(p.Glyph))
			n++
		}
	}

	lines := make([]string, confettiRows)
	for i, row := range grid {
		lines[i] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}
