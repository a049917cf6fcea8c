package views

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keepsake-app/keepsake/internal/codec"
	"github.com/keepsake-app/keepsake/internal/tui"
)

// renderPreview draws p as half-block cells, two pixel rows per line.
func renderPreview(p codec.Payload, cols, rows int) string {
	img, err := codec.Thumbnail(p, cols, rows*2)
	if err != nil {
		return tui.ErrorStyle.Render("(image unreadable)")
	}

	b := img.Bounds()
	var out strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := hexColor(img, x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = hexColor(img, x, y+1)
			}
			out.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀"))
		}
		if y+2 < b.Max.Y {
			out.WriteString("\n")
		}
	}
	return out.String()
}

func hexColor(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// payloadSize returns the decoded size of p in kilobytes.
func payloadSize(p codec.Payload) float64 {
	data, err := p.Decode()
	if err != nil {
		return 0
	}
	return float64(len(data)) / 1024
}
