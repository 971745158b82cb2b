package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/util"
)

func (m Model) renderDashboard() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBody())
	if m.showFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}
	return b.String()
}

// renderHeader is the single status line at the top: product name, hub name
// with a connection glyph, service and alert counts, data freshness, and the
// paused flag, with the version right-aligned.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("hearth")

	var stats []string
	if name := m.cfg.Hub.Name; name != "" {
		stats = append(stats, m.connectionGlyph()+" "+name)
	}
	if len(m.services) > 0 {
		stats = append(stats, fmt.Sprintf("%d/%d services", m.runningCount(), len(m.services)))
	}
	if n := len(m.alerts); n > 0 {
		stats = append(stats, fmt.Sprintf("%d %s", n, util.Pluralize(n, "alert", "alerts")))
	}
	stats = append(stats, "updated "+m.updatedText())

	line := title + lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | "+strings.Join(stats, " | "))

	var right string
	if m.version != "" {
		right = MutedStyle.Render(m.version)
	}
	if m.paused {
		flag := PausedStyle.Render("PAUSED")
		if right != "" {
			right = flag + " " + right
		} else {
			right = flag
		}
	}
	if right != "" {
		gap := m.width - lipgloss.Width(line) - lipgloss.Width(right) - 2
		if gap > 0 {
			line += strings.Repeat(" ", gap) + right
		} else {
			line += " " + right
		}
	}

	return HeaderStyle.Render(line)
}

// connectionGlyph reflects the health pane's last fetch: filled while the
// hub answers, crossed after a failure, hollow before the first response.
func (m Model) connectionGlyph() string {
	switch m.panes[PaneHealth].state {
	case FetchOK:
		return StateStyle(api.StateRunning).Render(GlyphRunning)
	case FetchFailed:
		return ErrorStyle.Render(GlyphFailed)
	default:
		return MutedStyle.Render(GlyphStopped)
	}
}

// renderBody stacks the visible cards per the current layout. Card sizes
// come from paneRects, so what is drawn is exactly what the mouse maps.
func (m Model) renderBody() string {
	rects := m.paneRects()
	if len(rects) == 0 {
		return MutedStyle.Render("terminal too small")
	}

	switch m.Layout() {
	case LayoutMinimal, LayoutCompact:
		cards := make([]string, 0, len(rects))
		for _, p := range m.visiblePanes() {
			cards = append(cards, m.renderPane(p, rects[p]))
		}
		return lipgloss.JoinVertical(lipgloss.Left, cards...)

	default:
		var left, right []string
		for _, p := range [...]Pane{PaneHealth, PaneServices, PaneConfig} {
			if r, ok := rects[p]; ok {
				left = append(left, m.renderPane(p, r))
			}
		}
		for _, p := range [...]Pane{PaneChart, PaneAlerts, PaneLogs} {
			if r, ok := rects[p]; ok {
				right = append(right, m.renderPane(p, r))
			}
		}
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.JoinVertical(lipgloss.Left, left...),
			" ",
			lipgloss.JoinVertical(lipgloss.Left, right...))
	}
}

// renderFooter shows the key hints, tuned to the focused pane.
func (m Model) renderFooter() string {
	hints := []string{"q quit", "tab focus", "r refresh", "p pause"}
	switch m.focus {
	case PaneChart:
		hints = append(hints, "m metric", "w window", "c mode")
	case PaneAlerts:
		hints = append(hints, "f filter", "u unacked", "a ack")
	case PaneLogs:
		hints = append(hints, "f filter")
	case PaneConfig:
		hints = append(hints, "v reveal")
	}
	hints = append(hints, "enter detail", "? help")
	return FooterStyle.Render(truncateWithEllipsis(strings.Join(hints, " | "), maxInt(0, m.width-2)))
}

func (m Model) runningCount() int {
	n := 0
	for _, s := range m.services {
		if s.State == api.StateRunning {
			n++
		}
	}
	return n
}

func (m Model) updatedText() string {
	if m.lastUpdate.IsZero() {
		return "never"
	}
	secs := int(time.Since(m.lastUpdate).Seconds())
	switch {
	case secs <= 0:
		return "just now"
	case secs == 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}
