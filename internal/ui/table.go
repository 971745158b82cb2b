package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/query"
	"github.com/hearthview/hearth/internal/util"
)

// RenderServiceTable renders the service list as a formatted table.
func RenderServiceTable(services []api.ServiceStatus) string {
	if len(services) == 0 {
		return "No services reported"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var output strings.Builder
	output.WriteString(headerStyle.Render("  STATE      SERVICE          UPTIME     RESTARTS") + "\n")

	for _, s := range services {
		symbol := lipgloss.NewStyle().Foreground(StateColor(s.State)).Render(StateSymbol(s.State))

		line := "  " + symbol + " " +
			padRight(s.State, 9) +
			padRight(s.Name, 17) +
			padRight(util.FormatUptime(s.UptimeSeconds), 11) +
			fmt.Sprintf("%d", s.Restarts)

		if s.Message != "" {
			line += "  " + mutedStyle.Render(s.Message)
		}
		output.WriteString(line + "\n")
	}

	return output.String()
}

// RenderAlertTable renders the alert list as a formatted table, in the order
// the alert service returned it.
func RenderAlertTable(alerts []api.Alert, now time.Time) string {
	if len(alerts) == 0 {
		return "No alerts"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	ackStyle := lipgloss.NewStyle().Foreground(ColorSuccess)

	var output strings.Builder
	output.WriteString(headerStyle.Render("  SEV        AGE    SERVICE          MESSAGE") + "\n")

	for _, a := range alerts {
		sevStyle := lipgloss.NewStyle().Foreground(SeverityColor(a.Severity))
		symbol := sevStyle.Render(SeveritySymbol(a.Severity))

		msg := a.Message
		if a.Acked {
			msg = mutedStyle.Render(msg) + " " + ackStyle.Render(SymbolSuccess)
		}

		output.WriteString("  " + symbol + " " +
			padRight(sevStyle.Render(a.Severity), 9) +
			padRight(util.FormatAge(a.CreatedAt, now), 7) +
			padRight(a.Service, 17) +
			msg + "\n")
	}

	return output.String()
}

// RenderLogLine renders one log entry for streaming or listing output.
func RenderLogLine(e api.LogEntry) string {
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	levelStyle := lipgloss.NewStyle().Foreground(LevelColor(e.Level))

	return mutedStyle.Render(e.Timestamp.Local().Format("15:04:05")) + " " +
		levelStyle.Render(padRight(strings.ToUpper(e.Level), 5)) + " " +
		padRight(e.Service, 14) + " " +
		e.Message
}

// RenderQueryTable renders the saved query list as a formatted table.
func RenderQueryTable(queries []query.SavedQuery) string {
	if len(queries) == 0 {
		return "No saved queries"
	}

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorMuted)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var output strings.Builder
	output.WriteString(headerStyle.Render("  NAME                  KIND     FILTER") + "\n")

	for _, q := range queries {
		output.WriteString("  " +
			padRight(q.Name, 22) +
			padRight(q.Kind, 9) +
			mutedStyle.Render(describeQuery(q)) + "\n")
	}

	return output.String()
}

// describeQuery summarizes a saved query's filter fields.
func describeQuery(q query.SavedQuery) string {
	var parts []string
	if q.Severity != "" {
		parts = append(parts, "severity="+q.Severity)
	}
	if q.Level != "" {
		parts = append(parts, "level="+q.Level)
	}
	if q.Service != "" {
		parts = append(parts, "service="+q.Service)
	}
	if q.Text != "" {
		parts = append(parts, "text="+q.Text)
	}
	return util.JoinOrDefault(parts, "(match all)")
}

// RenderConfigTable renders hub config fields as key/value rows. Masking of
// sensitive values happens in the caller, before rendering.
func RenderConfigTable(fields []api.ConfigField) string {
	if len(fields) == 0 {
		return "No config fields"
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var output strings.Builder
	for _, f := range fields {
		value := f.Value
		if f.Sensitive {
			value = mutedStyle.Render(value)
		}
		output.WriteString("  " + keyStyle.Render(padRight(f.Key, 28)) + value + "\n")
	}

	return output.String()
}

// DoctorCheckRow represents a row in the doctor diagnostic table.
type DoctorCheckRow struct {
	Status     string // "pass", "warn", "fail"
	Category   string // Check category
	Message    string // Check result message
	Suggestion string // Suggestion for fixing (if failed)
}

// RenderDoctorTable renders doctor check results grouped by category.
func RenderDoctorTable(rows []DoctorCheckRow) string {
	if len(rows) == 0 {
		return "No checks to display"
	}

	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	categories := make(map[string][]DoctorCheckRow)
	var categoryOrder []string
	for _, row := range rows {
		if _, exists := categories[row.Category]; !exists {
			categoryOrder = append(categoryOrder, row.Category)
		}
		categories[row.Category] = append(categories[row.Category], row)
	}

	var output strings.Builder
	for _, cat := range categoryOrder {
		output.WriteString(headerStyle.Render(cat) + "\n")

		for _, row := range categories[cat] {
			var symbol string
			switch row.Status {
			case "pass":
				symbol = successStyle.Render(SymbolComplete)
			case "warn":
				symbol = warnStyle.Render(SymbolComplete)
			case "fail":
				symbol = errorStyle.Render(SymbolFail)
			default:
				symbol = mutedStyle.Render(SymbolPending)
			}

			output.WriteString("  " + symbol + " " + row.Message + "\n")
			if row.Suggestion != "" && row.Status != "pass" {
				output.WriteString("    " + mutedStyle.Render(row.Suggestion) + "\n")
			}
		}
		output.WriteString("\n")
	}

	return output.String()
}

// padRight pads a string to the specified display width, counting visible
// cells rather than bytes so styled strings line up.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
