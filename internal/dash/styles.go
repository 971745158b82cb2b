package dash

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
)

// Dashboard palette - warm hearth tones on a dark base.
const (
	ColorBg      = lipgloss.Color("#0D1117") // near-black
	ColorSurface = lipgloss.Color("#151B23") // card surface
	ColorBorder  = lipgloss.Color("#30363D") // resting card border

	ColorHealthy  = lipgloss.Color("#3FB950") // green
	ColorWarning  = lipgloss.Color("#D29922") // amber
	ColorCritical = lipgloss.Color("#F85149") // red
	ColorInfo     = lipgloss.Color("#58A6FF") // blue

	ColorTextPrimary   = lipgloss.Color("#E6EDF3")
	ColorTextSecondary = lipgloss.Color("#9198A1")
	ColorTextMuted     = lipgloss.Color("#6E7681")

	ColorAccent = lipgloss.Color("#FF8243") // ember orange
	ColorGraph  = lipgloss.Color("#FFA657") // lighter ember
)

// Base styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	CardFocusedStyle = CardStyle.
				BorderForeground(ColorAccent)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)

// Service state glyphs.
const (
	GlyphRunning  = "●"
	GlyphStarting = "◐"
	GlyphStopped  = "◌"
	GlyphFailed   = "✗"
)

// StateStyle returns the style for a service state.
func StateStyle(state string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StateColor(state))
}

// StateColor maps a service state to its palette color.
func StateColor(state string) lipgloss.Color {
	switch state {
	case api.StateRunning:
		return ColorHealthy
	case api.StateStarting:
		return ColorWarning
	case api.StateFailed:
		return ColorCritical
	default:
		return ColorTextMuted
	}
}

// StateGlyph maps a service state to its indicator glyph.
func StateGlyph(state string) string {
	switch state {
	case api.StateRunning:
		return GlyphRunning
	case api.StateStarting:
		return GlyphStarting
	case api.StateFailed:
		return GlyphFailed
	default:
		return GlyphStopped
	}
}

// SeverityColor maps an alert severity to its palette color.
func SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case api.SeverityCritical:
		return ColorCritical
	case api.SeverityWarning:
		return ColorWarning
	case api.SeverityInfo:
		return ColorInfo
	default:
		return ColorTextSecondary
	}
}

// SeverityStyle returns the style for an alert severity tag.
func SeverityStyle(severity string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeverityColor(severity))
}

// LevelColor maps a log level to its palette color.
func LevelColor(level string) lipgloss.Color {
	switch level {
	case "error", "fatal":
		return ColorCritical
	case "warn", "warning":
		return ColorWarning
	case "debug":
		return ColorTextMuted
	default:
		return ColorInfo
	}
}

// LevelStyle returns the style for a log level tag.
func LevelStyle(level string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LevelColor(level))
}

// UsageColor returns the color for a percentage against warning/critical
// thresholds.
func UsageColor(percent float64, warning, critical int) lipgloss.Color {
	switch {
	case percent >= float64(critical):
		return ColorCritical
	case percent >= float64(warning):
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// UsageBar renders a percent as a compact filled bar colored by threshold.
func UsageBar(width int, percent float64, warning, critical int) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "▰"
		} else {
			bar += "▱"
		}
	}
	return lipgloss.NewStyle().Foreground(UsageColor(percent, warning, critical)).Render(bar)
}
