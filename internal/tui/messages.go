// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/keepsake-app/keepsake/internal/codec"
)

// ============================================================================
// Gate Messages
// ============================================================================

// UnlockElapsedMsg is delivered when an unlock grace timer fires. The ID is
// checked against the session's live timer.
type UnlockElapsedMsg struct {
	ID uint64
}

// ============================================================================
// Gallery Messages
// ============================================================================

// ImagesCompressedMsg carries the result of a background compression batch.
type ImagesCompressedMsg struct {
	Result codec.BatchResult
}

// ============================================================================
// Utility Messages
// ============================================================================

// BurstTickMsg advances the confetti animation by one frame.
type BurstTickMsg struct{}

// CtrlCResetMsg clears the pending Ctrl+C confirmation.
type CtrlCResetMsg struct{}

// ErrorMsg is a generic error message for recoverable errors.
type ErrorMsg struct {
	Err error
}
