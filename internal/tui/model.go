// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"math/rand"
	"time"

	"github.com/keepsake-app/keepsake/internal/effects"
	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/workspace"
)

// Model is the shared TUI state. Per-screen view models live in the app
// package; everything that outlives a single screen lives here.
type Model struct {
	// Project
	WS *workspace.Workspace

	// Navigation
	Session *nav.Session

	// Decorative effects
	Effects *effects.Recorder
	Bursts  []effects.Burst
	Rand    *rand.Rand

	// Feedback
	Err         error
	Status      string
	Compressing bool

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool // True when waiting for second Ctrl+C press
}

// NewModel creates a Model over ws with a session at the gate.
func NewModel(ws *workspace.Workspace) *Model {
	rec := &effects.Recorder{}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sess := nav.NewSession(ws.NewGate(),
		nav.WithUnlockDelay(ws.Cfg.UnlockDelay()),
		nav.WithEffects(rec),
		nav.WithLogger(ws.Logger),
		nav.WithRand(rng),
	)

	return &Model{
		WS:      ws,
		Session: sess,
		Effects: rec,
		Rand:    rng,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  80,
		Height: 24,
	}
}

// StartBursts moves any pending effect triggers into live bursts and
// reports whether an animation tick needs scheduling.
func (m *Model) StartBursts(now time.Time) bool {
	idle := len(m.Bursts) == 0
	m.Bursts = append(m.Bursts, m.Effects.Drain(now)...)
	return idle && len(m.Bursts) > 0
}

// PruneBursts drops finished bursts and reports whether any remain.
func (m *Model) PruneBursts(now time.Time) bool {
	live := m.Bursts[:0]
	for _, b := range m.Bursts {
		if b.Active(now) {
			live = append(live, b)
		}
	}
	m.Bursts = live
	return len(live) > 0
}

// SetErr records an error for the status line and clears any status text.
func (m *Model) SetErr(err error) {
	m.Err = err
	if err != nil {
		m.Status = ""
	}
}

// SetStatus records a status message and clears any error.
func (m *Model) SetStatus(s string) {
	m.Status = s
	m.Err = nil
}
