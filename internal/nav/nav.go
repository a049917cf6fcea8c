// Package nav implements the session state machine: which screen is visible,
// the forward transition table, and the per-screen back rule.
package nav

import (
	"math/rand"
	"time"

	"github.com/keepsake-app/keepsake/internal/effects"
	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/log"
)

// Screen is one mutually exclusive view. The declared order matters for
// BackVisible.
type Screen int

const (
	Gate Screen = iota + 1
	Welcome
	Timeline
	Gallery
	Reveal
	Proposal
	Dates
)

func (s Screen) String() string {
	switch s {
	case Gate:
		return "gate"
	case Welcome:
		return "welcome"
	case Timeline:
		return "timeline"
	case Gallery:
		return "gallery"
	case Reveal:
		return "reveal"
	case Proposal:
		return "proposal"
	case Dates:
		return "dates"
	default:
		return "unknown"
	}
}

// Action is a user-triggered forward move.
type Action int

const (
	Begin Action = iota + 1
	OpenGallery
	OpenReveal
	Propose
	OpenDates
)

// ProposalStatus tracks the answer on the proposal screen.
type ProposalStatus int

const (
	Pending ProposalStatus = iota
	Accepted
	AcceptedAlways
)

func (p ProposalStatus) String() string {
	switch p {
	case Accepted:
		return "accepted"
	case AcceptedAlways:
		return "always"
	default:
		return "pending"
	}
}

// DefaultUnlockDelay is the grace period between unlock and WELCOME.
const DefaultUnlockDelay = 3500 * time.Millisecond

// forward lists every legal forward edge. GATE -> WELCOME is not here; it
// only happens through Elapsed once the unlock timer fires.
var forward = map[Screen]map[Action]Screen{
	Welcome:  {Begin: Timeline},
	Timeline: {OpenGallery: Gallery, OpenReveal: Reveal},
	Gallery:  {OpenReveal: Reveal},
	Reveal:   {Propose: Proposal},
	Proposal: {OpenDates: Dates},
}

// guards block an otherwise legal edge out of a screen.
var guards = map[Screen]func(*Session) bool{
	Proposal: func(s *Session) bool { return s.proposal != Pending },
}

// back holds the backward rule for each screen.
var back = map[Screen]func(*Session){
	Gate: func(s *Session) {
		if s.unlocked {
			s.relock()
			return
		}
		s.gate.StepBack()
	},
	Welcome: func(s *Session) {
		s.relock()
		s.screen = Gate
	},
	Timeline: func(s *Session) { s.screen = Welcome },
	Gallery:  func(s *Session) { s.screen = Timeline },
	Reveal:   func(s *Session) { s.screen = Gallery },
	Proposal: func(s *Session) {
		if s.proposal != Pending {
			s.proposal = Pending
			return
		}
		s.screen = Reveal
	},
	Dates: func(s *Session) { s.screen = Proposal },
}

// Timer is a scheduled GATE -> WELCOME transition. The host delivers ID back
// through Elapsed after Delay; a cancelled timer's ID is ignored.
type Timer struct {
	ID    uint64
	Delay time.Duration
}

// RevealDraw is the message and image picked on the reveal screen.
// ImageIndex is -1 when the gallery was empty.
type RevealDraw struct {
	Message    string
	ImageIndex int
}

// Outcome is the result of a gate submission.
type Outcome struct {
	Result gate.Result
	Timer  *Timer // set on unlock
	// Ignored is true when the session was not accepting answers.
	Ignored bool
}

// Session is the transient, in-memory state of one run. It is never
// persisted and must be driven from a single goroutine.
type Session struct {
	screen   Screen
	gate     *gate.Gate
	unlocked bool
	role     gate.Role
	proposal ProposalStatus
	draw     *RevealDraw

	pending   uint64
	lastTimer uint64
	delay     time.Duration

	rng     *rand.Rand
	effects effects.Trigger
	logger  *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithUnlockDelay overrides the unlock grace period.
func WithUnlockDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithRand sets the random source used for reveal draws.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithEffects sets the decorative trigger.
func WithEffects(t effects.Trigger) Option {
	return func(s *Session) { s.effects = t }
}

// WithLogger sets the event logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession starts a session on GATE.
func NewSession(g *gate.Gate, opts ...Option) *Session {
	s := &Session{
		screen:  Gate,
		gate:    g,
		delay:   DefaultUnlockDelay,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		effects: effects.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Screen returns the visible screen.
func (s *Session) Screen() Screen { return s.screen }

// Step returns the gate step.
func (s *Session) Step() int { return s.gate.Step() }

// Unlocked reports whether the gate has been passed.
func (s *Session) Unlocked() bool { return s.unlocked }

// Role returns the role decided at unlock, or RoleNone.
func (s *Session) Role() gate.Role { return s.role }

// Proposal returns the proposal status.
func (s *Session) Proposal() ProposalStatus { return s.proposal }

// RevealDraw returns the last draw, if any.
func (s *Session) RevealDraw() (RevealDraw, bool) {
	if s.draw == nil {
		return RevealDraw{}, false
	}
	return *s.draw, true
}

// Submit feeds raw to the gate. It is ignored unless the session is on GATE
// and not yet unlocked. On unlock the role is fixed and a Timer is returned
// for the host to schedule.
func (s *Session) Submit(raw string) Outcome {
	if s.screen != Gate || s.unlocked {
		return Outcome{Ignored: true}
	}

	step := s.gate.Step()
	res := s.gate.Submit(raw)
	switch res.Kind {
	case gate.Reject:
		_ = s.logger.Append(log.LogEvent{Event: log.EventGateRejected, Step: step})
		return Outcome{Result: res}
	case gate.Advance:
		_ = s.logger.Append(log.LogEvent{Event: log.EventGateAdvanced, Step: step})
		return Outcome{Result: res}
	}

	s.unlocked = true
	s.role = res.Role
	s.lastTimer++
	s.pending = s.lastTimer
	_ = s.logger.Append(log.LogEvent{Event: log.EventUnlocked, Role: s.role.String()})
	s.effects.Unlock(s.role == gate.RoleElevated)

	return Outcome{Result: res, Timer: &Timer{ID: s.pending, Delay: s.delay}}
}

// Pending returns the scheduled unlock timer, if any.
func (s *Session) Pending() (Timer, bool) {
	if s.pending == 0 {
		return Timer{}, false
	}
	return Timer{ID: s.pending, Delay: s.delay}, true
}

// Elapsed delivers a fired timer. It moves GATE -> WELCOME only when id is
// the live timer; stale or cancelled ids are ignored.
func (s *Session) Elapsed(id uint64) bool {
	if id == 0 || id != s.pending {
		return false
	}
	s.pending = 0
	if s.screen != Gate || !s.unlocked {
		return false
	}
	s.screen = Welcome
	return true
}

// Go applies a forward action. Illegal or guarded moves return false and
// change nothing.
func (s *Session) Go(a Action) bool {
	next, ok := forward[s.screen][a]
	if !ok {
		return false
	}
	if guard, ok := guards[s.screen]; ok && !guard(s) {
		return false
	}
	s.screen = next
	return true
}

// Back applies the current screen's back rule. It never touches collections.
func (s *Session) Back() {
	if rule, ok := back[s.screen]; ok {
		rule(s)
	}
}

// BackVisible reports whether the back affordance should be shown.
func (s *Session) BackVisible() bool {
	if s.screen == Gate {
		return s.gate.Step() > 1 && !s.unlocked
	}
	return s.screen > Gate
}

// Accept answers the proposal. It only applies on PROPOSAL while pending.
func (s *Session) Accept(always bool) bool {
	if s.screen != Proposal || s.proposal != Pending {
		return false
	}
	s.proposal = Accepted
	if always {
		s.proposal = AcceptedAlways
	}
	_ = s.logger.Append(log.LogEvent{Event: log.EventProposalAccepted, Reason: s.proposal.String()})
	s.effects.Celebrate(always)
	return true
}

// Draw picks a random message and, when the gallery is not empty, a random
// image index. It only applies on REVEAL. The draw persists until the next one.
func (s *Session) Draw(messages []string, galleryLen int) (RevealDraw, bool) {
	if s.screen != Reveal || len(messages) == 0 {
		return RevealDraw{}, false
	}
	d := RevealDraw{
		Message:    messages[s.rng.Intn(len(messages))],
		ImageIndex: -1,
	}
	if galleryLen > 0 {
		d.ImageIndex = s.rng.Intn(galleryLen)
	}
	s.draw = &d
	return d, true
}

// relock cancels any pending unlock and forgets the role. The gate returns
// to step 2; step 1 is not asked again.
func (s *Session) relock() {
	s.pending = 0
	s.unlocked = false
	s.role = gate.RoleNone
	s.gate.Relock()
	_ = s.logger.Append(log.LogEvent{Event: log.EventRelocked, Screen: s.screen.String()})
}
