package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/util"
)

// AlertSummary holds per-severity alert counts for summary rendering.
type AlertSummary struct {
	Critical int `json:"critical"`
	Warning  int `json:"warning"`
	Info     int `json:"info"`
	Unacked  int `json:"unacked"`
}

// SummarizeAlerts counts alerts by severity and acknowledgement.
func SummarizeAlerts(alerts []api.Alert) AlertSummary {
	var s AlertSummary
	for _, a := range alerts {
		switch a.Severity {
		case api.SeverityCritical:
			s.Critical++
		case api.SeverityWarning:
			s.Warning++
		default:
			s.Info++
		}
		if !a.Acked {
			s.Unacked++
		}
	}
	return s
}

// RenderAlertSummary generates the one-line footer under an alert listing.
// An empty collection renders a green all-clear line.
func RenderAlertSummary(s AlertSummary) string {
	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	total := s.Critical + s.Warning + s.Info
	if total == 0 {
		return successStyle.Render(fmt.Sprintf("%s No active alerts", SymbolSuccess))
	}

	var parts []string
	if s.Critical > 0 {
		parts = append(parts, errorStyle.Render(fmt.Sprintf("%d critical", s.Critical)))
	}
	if s.Warning > 0 {
		parts = append(parts, warnStyle.Render(fmt.Sprintf("%d warning", s.Warning)))
	}
	if s.Info > 0 {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("%d info", s.Info)))
	}

	line := fmt.Sprintf("%d %s: %s",
		total,
		util.Pluralize(total, "alert", "alerts"),
		strings.Join(parts, ", "))
	if s.Unacked > 0 {
		line += mutedStyle.Render(fmt.Sprintf("  (%d unacked)", s.Unacked))
	}
	return line
}
