package formatter

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/studyloop/studyloop/internal/pomodoro"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseColor returns the style used to render the given Pomodoro phase.
func PhaseColor(p pomodoro.Phase) lipgloss.Style {
	switch p {
	case pomodoro.PhaseShortBreak:
		return StyleBlue
	case pomodoro.PhaseLongBreak:
		return StyleGreen
	default:
		return StyleRed
	}
}

// PhaseLabel returns a human label such as "WORK" or "SHORT BREAK".
func PhaseLabel(p pomodoro.Phase) string {
	switch p {
	case pomodoro.PhaseShortBreak:
		return "SHORT BREAK"
	case pomodoro.PhaseLongBreak:
		return "LONG BREAK"
	default:
		return "WORK"
	}
}
