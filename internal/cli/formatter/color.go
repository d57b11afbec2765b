package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/studyclock/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ScoreStyle colors a 1-100 score: green from the productive threshold up,
// yellow from 50, red below.
func ScoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return StyleGreen
	case score >= 50:
		return StyleYellow
	case score > 0:
		return StyleRed
	default:
		return StyleDim
	}
}

// PhaseBadge returns a colored indicator for a tracker phase.
func PhaseBadge(p domain.Phase) string {
	switch p {
	case domain.PhaseStudying:
		return StyleGreen.Render("● STUDYING")
	case domain.PhaseOnBreak:
		return StyleBlue.Render("● ON BREAK")
	case domain.PhasePausedStudy:
		return StyleYellow.Render("‖ STUDY PAUSED")
	case domain.PhasePausedBreak:
		return StyleYellow.Render("‖ BREAK PAUSED")
	case domain.PhaseEnded:
		return StylePurple.Render("■ ENDED")
	case domain.PhaseSubmitted:
		return StyleGreen.Render("✔ SAVED")
	default:
		return StyleDim.Render("○ READY")
	}
}

// TimeOfDayBadge renders a capitalized time-of-day bucket.
func TimeOfDayBadge(tod domain.TimeOfDay) string {
	if tod == "" {
		return StyleDim.Render("--")
	}
	s := string(tod)
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
