package dash

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/backup"
	"github.com/hearthview/hearth/internal/chart"
	"github.com/hearthview/hearth/internal/util"
)

// Detail view layout: one header line, one blank line, viewport, footer.
const (
	detailHeaderHeight = 2
	detailFooterHeight = 1
)

func (m *Model) resizeViewport() {
	w := maxInt(1, m.width)
	h := maxInt(1, m.height-detailHeaderHeight-detailFooterHeight)

	if !m.viewportReady {
		m.detailViewport = viewport.New(w, h)
		m.detailViewport.YPosition = detailHeaderHeight
		m.viewportReady = true
		return
	}
	m.detailViewport.Width = w
	m.detailViewport.Height = h
}

func (m *Model) updateDetailContent() {
	if !m.viewportReady {
		m.resizeViewport()
	}
	m.detailViewport.SetContent(m.detailContent())
	m.detailViewport.GotoTop()
}

func (m Model) renderDetail() string {
	header := HeaderStyle.Render(TitleStyle.Render(m.focus.Title() + " · detail"))
	footer := FooterStyle.Render("esc back | j/k scroll | q quit")
	return header + "\n\n" + m.detailViewport.View() + "\n" + footer
}

func (m Model) detailContent() string {
	switch m.focus {
	case PaneHealth:
		return m.healthDetail()
	case PaneServices:
		return m.serviceDetail()
	case PaneAlerts:
		return m.alertDetail()
	case PaneLogs:
		return m.logDetail()
	case PaneConfig:
		return m.configDetail()
	default:
		return ""
	}
}

func (m Model) healthDetail() string {
	h := m.health
	if h == nil {
		return MutedStyle.Render("no data")
	}

	var b strings.Builder
	b.WriteString(kv("status", h.Status) + "\n")
	b.WriteString(kv("version", h.Version) + "\n")
	b.WriteString(kv("uptime", util.FormatUptime(h.UptimeSeconds)) + "\n")
	b.WriteString(kv("ingest", chart.FormatValue(h.IngestRate)+" ev/s") + "\n")
	b.WriteString(kv("queue", fmt.Sprintf("%d of %d", h.QueueDepth, h.QueueCapacity)) + "\n")
	b.WriteString(kv("devices", fmt.Sprintf("%d of %d online", h.DevicesOnline, h.DevicesTotal)) + "\n")

	names := m.history.Names()
	if len(names) > 0 {
		b.WriteString("\n" + TitleStyle.Render("sampled metrics") + "\n")
		for _, name := range names {
			v, ok := m.history.Latest(name)
			if !ok {
				continue
			}
			spark := chart.Sparkline(m.history.Values(name, 20), 20)
			b.WriteString(kv(name, chart.FormatValue(v)+"  "+spark) + "\n")
		}
	}
	return b.String()
}

func (m Model) serviceDetail() string {
	if len(m.services) == 0 {
		return MutedStyle.Render("no data")
	}
	i := m.cursor[PaneServices]
	if i >= len(m.services) {
		i = len(m.services) - 1
	}
	s := m.services[i]

	var b strings.Builder
	b.WriteString(kv("service", s.Name) + "\n")
	b.WriteString(kv("state", s.State) + "\n")
	if s.PID > 0 {
		b.WriteString(kv("pid", fmt.Sprintf("%d", s.PID)) + "\n")
	}
	b.WriteString(kv("uptime", util.FormatUptime(s.UptimeSeconds)) + "\n")
	b.WriteString(kv("restarts", fmt.Sprintf("%d", s.Restarts)) + "\n")
	if s.Message != "" {
		b.WriteString(kv("message", "") + "\n")
		b.WriteString(m.wrap(s.Message) + "\n")
	}
	return b.String()
}

func (m Model) alertDetail() string {
	a, ok := m.selectedAlert()
	if !ok {
		return MutedStyle.Render("no data")
	}

	var b strings.Builder
	b.WriteString(kv("id", a.ID) + "\n")
	b.WriteString(kv("severity", severityShort(a.Severity)) + "\n")
	b.WriteString(kv("service", a.Service) + "\n")
	if a.Source != "" {
		b.WriteString(kv("source", a.Source) + "\n")
	}
	b.WriteString(kv("raised", a.CreatedAt.Local().Format("2006-01-02 15:04:05")+
		" ("+util.FormatAge(a.CreatedAt, time.Now())+" ago)") + "\n")
	acked := "no"
	if a.Acked {
		acked = "yes"
	}
	b.WriteString(kv("acked", acked) + "\n")
	b.WriteString("\n" + m.wrap(a.Message) + "\n")
	return b.String()
}

func (m Model) logDetail() string {
	visible := m.visibleLogs()
	if len(visible) == 0 {
		return MutedStyle.Render("no data")
	}
	i := m.cursor[PaneLogs]
	if i >= len(visible) {
		i = len(visible) - 1
	}
	e := visible[i]

	var b strings.Builder
	b.WriteString(kv("time", e.Timestamp.Local().Format("2006-01-02 15:04:05.000")) + "\n")
	b.WriteString(kv("level", e.Level) + "\n")
	b.WriteString(kv("service", e.Service) + "\n")
	b.WriteString("\n" + m.wrap(e.Message) + "\n")
	return b.String()
}

func (m Model) configDetail() string {
	if m.configDoc == nil {
		return MutedStyle.Render("no data")
	}

	var b strings.Builder
	b.WriteString(kv("version", fmt.Sprintf("%d", m.configDoc.Version)) + "\n")
	if n := backup.SensitiveCount(m.configDoc.Fields); n > 0 {
		state := "masked, press v on the pane to reveal"
		if m.revealConfig {
			state = "revealed"
		}
		b.WriteString(kv("sensitive", fmt.Sprintf("%d %s (%s)", n, util.Pluralize(n, "field", "fields"), state)) + "\n")
	}
	b.WriteString("\n")

	for _, f := range backup.Mask(m.configDoc.Fields, m.revealConfig) {
		style := ValueStyle
		if f.Sensitive {
			style = MutedStyle
		}
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-28s", f.Key)) + style.Render(f.Value) + "\n")
	}
	return b.String()
}

func kv(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-12s", label)) + ValueStyle.Render(value)
}

// wrap reflows long free-form text to the viewport width.
func (m Model) wrap(s string) string {
	w := m.detailViewport.Width - 4
	if w < 20 {
		w = 20
	}
	return lipgloss.NewStyle().Width(w).Render(s)
}
