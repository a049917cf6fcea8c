// Package commands provides Bubble Tea commands for TUI operations.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keepsake-app/keepsake/internal/codec"
	"github.com/keepsake-app/keepsake/internal/effects"
	"github.com/keepsake-app/keepsake/internal/log"
	"github.com/keepsake-app/keepsake/internal/nav"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// compressTimeout bounds a whole upload batch.
const compressTimeout = 2 * time.Minute

// UnlockTimerCmd fires UnlockElapsedMsg once t's delay has passed.
func UnlockTimerCmd(t nav.Timer) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return tui.UnlockElapsedMsg{ID: t.ID}
	})
}

// BurstTickCmd schedules the next confetti frame.
func BurstTickCmd() tea.Cmd {
	return tea.Tick(effects.FrameInterval, func(time.Time) tea.Msg {
		return tui.BurstTickMsg{}
	})
}

// CompressCmd compresses the files at paths off the UI loop. The payloads
// come back in input order; failed files are reported, never fatal.
func CompressCmd(c *codec.Codec, paths []string, logger *log.Logger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), compressTimeout)
		defer cancel()

		srcs := make([]codec.Source, len(paths))
		for i, p := range paths {
			srcs[i] = codec.FileSource(p)
		}
		return tui.ImagesCompressedMsg{Result: c.CompressBatch(ctx, srcs, logger)}
	}
}
