package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the rose palette.
const (
	primaryColor   = "#E11D74" // Rose
	secondaryColor = "#10B981" // Green
	accentColor    = "#F9A8D4" // Blush
	warningColor   = "#F59E0B" // Amber
	errorColor     = "#EF4444" // Red
	dimColor       = "#6B7280" // Gray
)

// ConfettiColors are cycled through when drawing burst particles.
var ConfettiColors = []string{"#F472B6", "#FBBF24", "#A78BFA", "#34D399", "#F87171"}

// Style variables for consistent TUI rendering.
var (
	// BoxStyle provides a rounded border box with primary color.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(primaryColor)).
			Padding(1, 2)

	// TitleStyle renders titles in primary color with bold.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// AccentStyle renders soft highlighted text.
	AccentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(accentColor)).
			Italic(true)

	// SelectedStyle highlights selected items in primary color.
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(primaryColor)).
			Bold(true)

	// DimStyle renders dim/muted text.
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(dimColor))

	// SuccessStyle renders success messages in green.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(secondaryColor))

	// ErrorStyle renders error messages in red.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(errorColor))

	// WarningStyle renders warning messages in amber.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(warningColor))

	// StatusBarStyle provides styling for the status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(lipgloss.Color("#9CA3AF")).
			Padding(0, 1)

	// ActiveFieldStyle marks the focused form field label.
	ActiveFieldStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(primaryColor)).
				Bold(true)
)

// Wishlist item markers (pre-rendered strings).
var (
	// DateVisited marks a visited suggestion.
	DateVisited = SuccessStyle.Render("✓")

	// DateOpen marks a suggestion not yet visited.
	DateOpen = DimStyle.Render("○")

	// Cursor marks the selected row.
	Cursor = SelectedStyle.Render("▸")
)
