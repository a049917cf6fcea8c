// Package effects defines the fire-and-forget decorative triggers fired at
// unlock and proposal acceptance, and the particle burst the TUI renders.
package effects

import (
	"math/rand"
	"time"
)

// Trigger receives decorative side effects. Implementations must not block.
type Trigger interface {
	Unlock(elevated bool)
	Celebrate(always bool)
}

// Noop ignores every trigger.
type Noop struct{}

func (Noop) Unlock(bool)    {}
func (Noop) Celebrate(bool) {}

// Burst timing.
const (
	StandardDuration = 3 * time.Second
	AlwaysDuration   = 5 * time.Second
	FrameInterval    = 250 * time.Millisecond
	PeakParticles    = 50
)

// Particle is one confetti piece in normalized [0,1] screen space.
type Particle struct {
	X, Y  float64
	Glyph rune
}

var glyphs = []rune{'*', '+', '♥', '✿', '·', '•'}

// Burst is a decaying confetti shower from two origins.
type Burst struct {
	Start    time.Time
	Duration time.Duration
}

// NewBurst starts a burst at now. always selects the longer duration.
func NewBurst(now time.Time, always bool) Burst {
	d := StandardDuration
	if always {
		d = AlwaysDuration
	}
	return Burst{Start: now, Duration: d}
}

// Active reports whether the burst still has time left at now.
func (b Burst) Active(now time.Time) bool {
	return b.Duration > 0 && now.Before(b.Start.Add(b.Duration))
}

// Count returns the per-origin particle count at now, scaled by time left.
func (b Burst) Count(now time.Time) int {
	if !b.Active(now) {
		return 0
	}
	left := b.Start.Add(b.Duration).Sub(now)
	return int(float64(PeakParticles) * float64(left) / float64(b.Duration))
}

// Frame returns the particles for now: half from the left origin band
// (x in 0.1-0.3) and half from the right (x in 0.7-0.9).
func (b Burst) Frame(now time.Time, rng *rand.Rand) []Particle {
	n := b.Count(now)
	if n == 0 {
		return nil
	}
	out := make([]Particle, 0, 2*n)
	for _, band := range [][2]float64{{0.1, 0.3}, {0.7, 0.9}} {
		for i := 0; i < n; i++ {
			out = append(out, Particle{
				X:     band[0] + rng.Float64()*(band[1]-band[0]) + (rng.Float64()-0.5)*0.2,
				Y:     rng.Float64(),
				Glyph: glyphs[rng.Intn(len(glyphs))],
			})
		}
	}
	return out
}

// Recorder captures triggers for the TUI to pick up on its next update.
type Recorder struct {
	Unlocks    []bool
	Celebrates []bool
}

func (r *Recorder) Unlock(elevated bool)  { r.Unlocks = append(r.Unlocks, elevated) }
func (r *Recorder) Celebrate(always bool) { r.Celebrates = append(r.Celebrates, always) }

// Drain returns and clears any pending bursts, newest last.
func (r *Recorder) Drain(now time.Time) []Burst {
	var out []Burst
	for _, elevated := range r.Unlocks {
		out = append(out, NewBurst(now, elevated))
	}
	for _, always := range r.Celebrates {
		out = append(out, NewBurst(now, always))
	}
	r.Unlocks = nil
	r.Celebrates = nil
	return out
}
