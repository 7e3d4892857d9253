package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
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

// Predefined lipgloss styles.
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

// intensityColors runs from an empty day to the most intense one, one entry
// per intensity level.
var intensityColors = []lipgloss.Color{
	"#3c3836",
	"#4f5b3a",
	"#5f7a3f",
	"#79943f",
	"#98971a",
	"#b8bb26",
	"#d5e04a",
}

// ModeStyle returns the accent style of a session mode.
func ModeStyle(mode domain.SessionMode) lipgloss.Style {
	switch mode {
	case domain.ModeShortBreak:
		return StyleGreen
	case domain.ModeLongBreak:
		return StyleBlue
	default:
		return StyleHeader
	}
}

// ModeBadge returns a colored mode label such as "● FOCUS".
func ModeBadge(mode domain.SessionMode) string {
	return ModeStyle(mode).Render("● " + strings.ToUpper(mode.Label()))
}

// StatusPill returns a colored indicator for a timer status.
func StatusPill(status domain.TimerStatus) string {
	switch status {
	case domain.StatusRunning:
		return StyleGreen.Render("▶ Running")
	case domain.StatusPaused:
		return StyleYellow.Render("❚❚ Paused")
	default:
		return StyleDim.Render("■ Idle")
	}
}

// TierBadge returns a purple tier label.
func TierBadge(tier domain.ActivityTier) string {
	if tier == "" {
		return StyleDim.Render("--")
	}
	s := string(tier)
	return StylePurple.Render(strings.ToUpper(s[:1]) + s[1:])
}

// IntensityStyle returns the heatmap color of an intensity level. Levels
// outside the palette are clamped.
func IntensityStyle(level int) lipgloss.Style {
	level = max(0, min(level, len(intensityColors)-1))
	return lipgloss.NewStyle().Foreground(intensityColors[level])
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
