// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"fmt"
	"io"

	"github.com/keepsake-app/keepsake/internal/workspace"
)

// FallbackRunner handles non-TTY execution by guiding users to CLI commands.
type FallbackRunner struct {
	ws  *workspace.Workspace
	out io.Writer
}

// NewFallbackRunner creates a new FallbackRunner writing to out.
func NewFallbackRunner(ws *workspace.Workspace, out io.Writer) *FallbackRunner {
	return &FallbackRunner{ws: ws, out: out}
}

// Run prints a collection summary and the non-interactive commands.
func (f *FallbackRunner) Run() error {
	fmt.Fprintln(f.out, "Non-TTY environment detected.")
	fmt.Fprintf(f.out, "Gallery: %d images, wishlist: %d places\n", f.ws.Gallery.Len(), f.ws.Wishlist.Len())
	fmt.Fprintln(f.out, "Use 'keepsake gallery' and 'keepsake dates' to manage collections,")
	fmt.Fprintln(f.out, "or run keepsake in a terminal for the full experience.")
	return nil
}
