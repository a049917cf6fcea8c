// Package gate implements the two-step knowledge check that unlocks a session.
package gate

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
)

// Role is the permission level decided at unlock time.
type Role int

const (
	RoleNone Role = iota // not unlocked
	RoleStandard
	RoleElevated
)

func (r Role) String() string {
	switch r {
	case RoleStandard:
		return "standard"
	case RoleElevated:
		return "elevated"
	default:
		return "none"
	}
}

// CanDelete reports whether the role may remove collection entries.
func (r Role) CanDelete() bool {
	return r == RoleElevated
}

// Kind classifies the outcome of a submission.
type Kind int

const (
	Reject Kind = iota
	Advance
	Unlock
)

// Result is the outcome of a single Submit call.
type Result struct {
	Kind   Kind
	Role   Role   // set only when Kind == Unlock
	Reason string // set only when Kind == Reject
}

// Secrets are the expected answers. Each may be plaintext or a bcrypt hash
// of the normalized answer.
type Secrets struct {
	Year         string
	StandardCity string
	ElevatedCity string
}

// Hints are the fixed rejection messages for each step.
type Hints struct {
	Year string
	City string
}

// Gate is the step-1/step-2 state machine. The zero value is not usable;
// construct with New.
type Gate struct {
	step    int
	secrets Secrets
	hints   Hints
}

// New returns a gate positioned at step 1. Plaintext secrets are normalized
// the same way answers are.
func New(secrets Secrets, hints Hints) *Gate {
	if !isBcrypt(secrets.Year) {
		secrets.Year = strings.TrimSpace(secrets.Year)
	}
	for _, s := range []*string{&secrets.StandardCity, &secrets.ElevatedCity} {
		if !isBcrypt(*s) {
			*s = normalizeCity(*s)
		}
	}
	return &Gate{step: 1, secrets: secrets, hints: hints}
}

// Step returns the current step, always 1 or 2.
func (g *Gate) Step() int {
	return g.step
}

// Submit checks raw against the current step's secret.
func (g *Gate) Submit(raw string) Result {
	if g.step == 1 {
		if matches(g.secrets.Year, strings.TrimSpace(raw)) {
			g.step = 2
			return Result{Kind: Advance}
		}
		return Result{Kind: Reject, Reason: g.hints.Year}
	}

	city := normalizeCity(raw)
	switch {
	case matches(g.secrets.StandardCity, city):
		return Result{Kind: Unlock, Role: RoleStandard}
	case matches(g.secrets.ElevatedCity, city):
		return Result{Kind: Unlock, Role: RoleElevated}
	}
	return Result{Kind: Reject, Reason: g.hints.City}
}

// StepBack moves step 2 back to step 1. It reports whether the step changed.
func (g *Gate) StepBack() bool {
	if g.step != 2 {
		return false
	}
	g.step = 1
	return true
}

// Relock returns the gate to step 2 without re-asking step 1.
func (g *Gate) Relock() {
	g.step = 2
}

// normalizeCity trims and case-folds a city answer.
func normalizeCity(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func matches(secret, normalized string) bool {
	if secret == "" || normalized == "" {
		return false
	}
	if isBcrypt(secret) {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(normalized)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(normalized)) == 1
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// HashAnswer returns a bcrypt hash suitable for storing in config. The answer
// is normalized first; city reports whether it is a city answer.
func HashAnswer(answer string, city bool) (string, error) {
	answer = strings.TrimSpace(answer)
	if city {
		answer = normalizeCity(answer)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(answer), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
