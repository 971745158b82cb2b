package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/backup"
	"github.com/hearthview/hearth/internal/chart"
	"github.com/hearthview/hearth/internal/util"
)

// renderPane renders one card at its exact rect size. The focused pane
// gets the accent border.
func (m Model) renderPane(p Pane, r rect) string {
	style := CardStyle
	if p == m.focus {
		style = CardFocusedStyle
	}
	return style.Width(r.w - 2).Height(r.h - 2).Render(m.paneContent(p, r))
}

// paneContent builds the card body: w text columns by rows text lines.
func (m Model) paneContent(p Pane, r rect) string {
	w := r.w - 4
	rows := r.h - 2
	switch p {
	case PaneHealth:
		return m.healthContent(w, rows)
	case PaneServices:
		return m.servicesContent(w, rows)
	case PaneChart:
		return m.chartContent(w, rows)
	case PaneAlerts:
		return m.alertsContent(w, rows)
	case PaneLogs:
		return m.logsContent(w, rows)
	case PaneConfig:
		return m.configContent(w, rows)
	default:
		return ""
	}
}

// titleLine is the first row of every card: title and context on the
// left, fetch marker on the right.
func (m Model) titleLine(p Pane, w int, extra string) string {
	left := p.Title()
	if extra != "" {
		left += " · " + extra
	}
	left = truncateWithEllipsis(left, maxInt(0, w-2))

	var marker string
	switch m.panes[p].state {
	case FetchFailed:
		marker = ErrorStyle.Render(GlyphFailed)
	case FetchOK:
	default:
		marker = MutedStyle.Render("…")
	}

	styled := TitleStyle.Render(left)
	gap := w - lipgloss.Width(styled) - lipgloss.Width(marker)
	if gap < 1 {
		return styled
	}
	return styled + strings.Repeat(" ", gap) + marker
}

// errorLine shows the pane's last fetch error plus when the next attempt
// happens. It sits directly under the title and disappears on the next
// successful poll.
func (m Model) errorLine(p Pane, w int) string {
	retry := fmt.Sprintf("next poll in %s, r to retry", util.FormatDurationShort(m.interval(p)))
	if m.paused {
		retry = "polling paused, r to retry"
	}
	line := ErrorStyle.Render(truncateWithEllipsis(GlyphFailed+" "+m.panes[p].err, w))
	hint := MutedStyle.Render(retry)
	if lipgloss.Width(line)+lipgloss.Width(hint)+2 > w {
		hint = MutedStyle.Render("r to retry")
	}
	if lipgloss.Width(line)+lipgloss.Width(hint)+2 <= w {
		return line + "  " + hint
	}
	return line
}

func (m Model) healthContent(w, rows int) string {
	lines := []string{m.titleLine(PaneHealth, w, m.cfg.Hub.Name)}
	if m.panes[PaneHealth].err != "" {
		lines = append(lines, m.errorLine(PaneHealth, w))
	}

	h := m.health
	if h == nil {
		lines = append(lines, MutedStyle.Render("waiting for hub..."))
		return fitLines(lines, rows)
	}

	dot := lipgloss.NewStyle().Foreground(healthColor(h.Status)).Render(GlyphRunning)
	status := truncateWithEllipsis(
		fmt.Sprintf("%s · %s · up %s", h.Status, h.Version, util.FormatUptime(h.UptimeSeconds)),
		maxInt(0, w-2))
	lines = append(lines, dot+" "+ValueStyle.Render(status))

	ingest := fmt.Sprintf("ingest  %s ev/s ", chart.FormatValue(h.IngestRate))
	if sparkW := w - len(ingest); sparkW > 3 {
		spark := chart.ColoredSparkline(m.history.Values(localIngestRate, sparkW), sparkW, ColorGraph)
		lines = append(lines, LabelStyle.Render(ingest)+spark)
	} else {
		lines = append(lines, LabelStyle.Render(truncateWithEllipsis(ingest, w)))
	}

	queue := fmt.Sprintf("queue   %d/%d ", h.QueueDepth, h.QueueCapacity)
	percent := 0.0
	if h.QueueCapacity > 0 {
		percent = float64(h.QueueDepth) / float64(h.QueueCapacity) * 100
	}
	if barW := w - len(queue) - 5; barW >= 4 {
		bar := UsageBar(barW, percent, m.cfg.Thresholds.Warning, m.cfg.Thresholds.Critical)
		lines = append(lines, LabelStyle.Render(queue)+bar+MutedStyle.Render(fmt.Sprintf(" %3.0f%%", percent)))
	} else {
		lines = append(lines, LabelStyle.Render(truncateWithEllipsis(queue, w)))
	}

	devices := fmt.Sprintf("devices %d/%d online", h.DevicesOnline, h.DevicesTotal)
	style := ValueStyle
	if h.DevicesOnline < h.DevicesTotal {
		style = lipgloss.NewStyle().Foreground(ColorWarning)
	}
	lines = append(lines, style.Render(truncateWithEllipsis(devices, w)))

	return fitLines(lines, rows)
}

func (m Model) servicesContent(w, rows int) string {
	lines := []string{m.titleLine(PaneServices, w, "")}
	if m.panes[PaneServices].err != "" {
		lines = append(lines, m.errorLine(PaneServices, w))
	}

	if len(m.services) == 0 {
		lines = append(lines, MutedStyle.Render("no services reported"))
		return fitLines(lines, rows)
	}

	listRows := rows - len(lines)
	start := m.listStart(PaneServices, len(m.services), listRows)
	for i := start; i < len(m.services) && i-start < listRows; i++ {
		selected := m.focus == PaneServices && i == m.cursor[PaneServices]
		lines = append(lines, serviceRow(m.services[i], w, selected))
	}
	return fitLines(lines, rows)
}

func serviceRow(s api.ServiceStatus, w int, selected bool) string {
	detail := util.FormatUptime(s.UptimeSeconds)
	if s.State == api.StateFailed && s.Message != "" {
		detail = s.Message
	}
	if s.Restarts > 0 {
		detail += fmt.Sprintf(" ↻%d", s.Restarts)
	}

	name := truncateWithEllipsis(s.Name, 14)
	body := fmt.Sprintf("%-14s %-8s ", name, s.State)
	detail = truncateWithEllipsis(detail, maxInt(0, w-4-len(body)))

	glyph := StateStyle(s.State).Render(StateGlyph(s.State))
	return selectPrefix(selected) + glyph + " " + ValueStyle.Render(body) + MutedStyle.Render(detail)
}

func (m Model) chartContent(w, rows int) string {
	extra := m.metric
	if extra == "" {
		extra = "no metric"
	}
	if m.series != nil && m.series.Unit != "" {
		extra += " (" + m.series.Unit + ")"
	}
	extra += " · " + chartWindows[m.windowIdx] + " · " + m.chartMode.String()

	lines := []string{m.titleLine(PaneChart, w, extra)}
	if m.panes[PaneChart].err != "" {
		lines = append(lines, m.errorLine(PaneChart, w))
	}

	chartH := rows - len(lines) - 1
	if chartH > 0 {
		block := chart.Render(seriesValues(m.series), m.chartOptions(w, chartH))
		lines = append(lines, strings.Split(block, "\n")...)
	}

	lines = append(lines, m.chartHint(w))
	return fitLines(lines, rows)
}

// chartOptions is the single source of truth for how the chart pane draws,
// shared with the mouse hit path so a pointer cell maps onto the same
// geometry the renderer used.
func (m Model) chartOptions(w, h int) chart.Options {
	placeholder := "no data"
	if m.metric == "" {
		placeholder = "no metric selected"
	}

	var left, right string
	if m.series != nil && len(m.series.Points) > 0 {
		left = chartWindows[m.windowIdx] + " ago"
		right = "now"
	}

	return chart.Options{
		Width:       w,
		Height:      h,
		Mode:        m.chartMode,
		Padding:     1,
		Color:       ColorGraph,
		Axis:        ColorTextMuted,
		GridLines:   2,
		YLabels:     true,
		XLabelLeft:  left,
		XLabelRight: right,
		Highlight:   m.cursor[PaneChart],
		Placeholder: placeholder,
	}
}

// chartHint is the last row of the chart card: the highlighted point's
// readout, or the key hints when nothing is highlighted.
func (m Model) chartHint(w int) string {
	hl := m.cursor[PaneChart]
	if m.series != nil && hl >= 1 && hl <= len(m.series.Points) {
		p := m.series.Points[hl-1]
		readout := fmt.Sprintf("%s  %s", p.Timestamp.Local().Format("15:04:05"), chart.FormatValue(p.Value))
		if m.series.Unit != "" {
			readout += " " + m.series.Unit
		}
		if p.Label != "" {
			readout += " · " + p.Label
		}
		return SelectedStyle.Render(truncateWithEllipsis(readout, w))
	}
	return MutedStyle.Render(truncateWithEllipsis("m metric · w window · c mode · ←/→ inspect", w))
}

func (m Model) alertsContent(w, rows int) string {
	var parts []string
	if m.severityFilter != "" {
		parts = append(parts, m.severityFilter)
	}
	if m.unackedOnly {
		parts = append(parts, "unacked")
	}
	lines := []string{m.titleLine(PaneAlerts, w, strings.Join(parts, " "))}
	if m.panes[PaneAlerts].err != "" {
		lines = append(lines, m.errorLine(PaneAlerts, w))
	}

	visible := m.visibleAlerts()
	if len(visible) == 0 {
		msg := "no alerts"
		if len(m.alerts) > 0 {
			msg = "no alerts match the filter"
		}
		lines = append(lines, MutedStyle.Render(msg))
		return fitLines(lines, rows)
	}

	listRows := rows - len(lines)
	start := m.listStart(PaneAlerts, len(visible), listRows)
	now := time.Now()
	for i := start; i < len(visible) && i-start < listRows; i++ {
		selected := m.focus == PaneAlerts && i == m.cursor[PaneAlerts]
		lines = append(lines, alertRow(visible[i], w, selected, now))
	}
	return fitLines(lines, rows)
}

func alertRow(a api.Alert, w int, selected bool, now time.Time) string {
	sev := SeverityStyle(a.Severity).Render(fmt.Sprintf("%-4s", severityShort(a.Severity)))
	age := MutedStyle.Render(fmt.Sprintf("%3s", util.FormatAge(a.CreatedAt, now)))
	svc := LabelStyle.Render(fmt.Sprintf("%-12s", truncateWithEllipsis(a.Service, 12)))

	// 2 prefix + 4 severity + 1 + 3 age + 1 + 12 service + 1
	msgW := maxInt(0, w-24)
	tail := ""
	if a.Acked {
		msgW -= 2
		tail = MutedStyle.Render(" ✓")
	}
	msg := truncateWithEllipsis(a.Message, msgW)
	msgStyle := ValueStyle
	if a.Acked {
		msgStyle = MutedStyle
	}

	return selectPrefix(selected) + sev + " " + age + " " + svc + " " + msgStyle.Render(msg) + tail
}

func (m Model) logsContent(w, rows int) string {
	lines := []string{m.titleLine(PaneLogs, w, m.levelFilter)}
	if m.panes[PaneLogs].err != "" {
		lines = append(lines, m.errorLine(PaneLogs, w))
	}

	visible := m.visibleLogs()
	if len(visible) == 0 {
		msg := "no log entries"
		if len(m.logs) > 0 {
			msg = "no entries match the filter"
		}
		lines = append(lines, MutedStyle.Render(msg))
		return fitLines(lines, rows)
	}

	listRows := rows - len(lines)
	start := m.listStart(PaneLogs, len(visible), listRows)
	for i := start; i < len(visible) && i-start < listRows; i++ {
		selected := m.focus == PaneLogs && i == m.cursor[PaneLogs]
		lines = append(lines, logRow(visible[i], w, selected))
	}
	return fitLines(lines, rows)
}

func logRow(e api.LogEntry, w int, selected bool) string {
	ts := MutedStyle.Render(e.Timestamp.Local().Format("15:04:05"))
	lvl := LevelStyle(e.Level).Render(fmt.Sprintf("%-5s", levelShort(e.Level)))
	svc := LabelStyle.Render(fmt.Sprintf("%-12s", truncateWithEllipsis(e.Service, 12)))

	// 2 prefix + 8 timestamp + 1 + 5 level + 1 + 12 service + 1
	msg := truncateWithEllipsis(e.Message, maxInt(0, w-30))
	return selectPrefix(selected) + ts + " " + lvl + " " + svc + " " + ValueStyle.Render(msg)
}

func (m Model) configContent(w, rows int) string {
	extra := "masked"
	if m.revealConfig {
		extra = "revealed"
	}
	lines := []string{m.titleLine(PaneConfig, w, extra)}
	if m.panes[PaneConfig].err != "" {
		lines = append(lines, m.errorLine(PaneConfig, w))
	}

	if m.configDoc == nil || len(m.configDoc.Fields) == 0 {
		lines = append(lines, MutedStyle.Render("no configuration loaded"))
		return fitLines(lines, rows)
	}

	fields := backup.Mask(m.configDoc.Fields, m.revealConfig)
	listRows := rows - len(lines)
	start := m.listStart(PaneConfig, len(fields), listRows)
	for i := start; i < len(fields) && i-start < listRows; i++ {
		selected := m.focus == PaneConfig && i == m.cursor[PaneConfig]
		lines = append(lines, configRow(fields[i], w, selected))
	}
	return fitLines(lines, rows)
}

func configRow(f api.ConfigField, w int, selected bool) string {
	key := LabelStyle.Render(fmt.Sprintf("%-22s", truncateWithEllipsis(f.Key, 22)))
	val := truncateWithEllipsis(f.Value, maxInt(0, w-25))
	style := ValueStyle
	if f.Sensitive {
		style = MutedStyle
	}
	return selectPrefix(selected) + key + " " + style.Render(val)
}

// listRows is how many item rows a list pane's card can show.
func (m Model) listRows(p Pane, card rect) int {
	rows := card.h - 3
	if m.panes[p].err != "" {
		rows--
	}
	if rows < 0 {
		rows = 0
	}
	return rows
}

// listStart picks the scroll offset keeping the cursor in view at the
// bottom of the window.
func (m Model) listStart(p Pane, total, rows int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	start := m.cursor[p] - rows + 1
	if start < 0 {
		start = 0
	}
	if start > total-rows {
		start = total - rows
	}
	return start
}

func selectPrefix(selected bool) string {
	if selected {
		return SelectedStyle.Render("▸ ")
	}
	return "  "
}

func seriesValues(s *api.Series) []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Value
	}
	return out
}

func severityShort(severity string) string {
	switch severity {
	case api.SeverityCritical:
		return "crit"
	case api.SeverityWarning:
		return "warn"
	default:
		return "info"
	}
}

func levelShort(level string) string {
	if level == "warning" {
		return "warn"
	}
	return level
}

func healthColor(status string) lipgloss.Color {
	switch status {
	case "ok":
		return ColorHealthy
	case "degraded":
		return ColorWarning
	case "down":
		return ColorCritical
	default:
		return ColorTextMuted
	}
}

// truncateWithEllipsis truncates a string to max display cells, adding an
// ellipsis if it had to cut.
func truncateWithEllipsis(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// fitLines trims or pads the card body to exactly rows lines.
func fitLines(lines []string, rows int) string {
	if rows <= 0 {
		return ""
	}
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
