package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
)

// Color palette using ANSI color codes so output degrades cleanly on plain
// terminals and respects user themes.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// StateColor maps a service state to its display color.
func StateColor(state string) lipgloss.Color {
	switch state {
	case api.StateRunning:
		return ColorSuccess
	case api.StateStarting:
		return ColorWarning
	case api.StateFailed:
		return ColorError
	default:
		return ColorMuted
	}
}

// SeverityColor maps an alert severity to its display color.
func SeverityColor(severity string) lipgloss.Color {
	switch severity {
	case api.SeverityCritical:
		return ColorError
	case api.SeverityWarning:
		return ColorWarning
	case api.SeverityInfo:
		return ColorInfo
	default:
		return ColorMuted
	}
}

// LevelColor maps a log level to its display color.
func LevelColor(level string) lipgloss.Color {
	switch level {
	case "error":
		return ColorError
	case "warn", "warning":
		return ColorWarning
	case "info":
		return ColorInfo
	default:
		return ColorMuted
	}
}

// HealthColor maps a hub health status to its display color.
func HealthColor(status string) lipgloss.Color {
	switch status {
	case "ok":
		return ColorSuccess
	case "degraded":
		return ColorWarning
	case "down":
		return ColorError
	default:
		return ColorMuted
	}
}
