package dash

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearthview/hearth/internal/api"
)

// severityCycle is what 'f' walks through on the alerts pane. Empty means
// no filter.
var severityCycle = []string{"", api.SeverityCritical, api.SeverityWarning, api.SeverityInfo}

// levelCycle is what 'f' (logs focused) and 'L' walk through.
var levelCycle = []string{"", "error", "warn", "info", "debug"}

// handleKey processes keyboard input for every view mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Quit works from anywhere, including help and detail.
	if key == "q" || key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		switch key {
		case "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if m.view == ViewDetail {
		return m.handleDetailKey(msg)
	}

	switch key {
	case "?":
		m.showHelp = true

	case "tab":
		m.focus = m.nextFocus(1)

	case "shift+tab":
		m.focus = m.nextFocus(-1)

	case "1", "2", "3", "4", "5", "6":
		m.jumpFocus(int(key[0] - '0'))

	case "r":
		return m, m.refreshAll()

	case "p":
		m.paused = !m.paused
		if !m.paused {
			// Ticks kept running while paused; just fill the gap now.
			cmds := make([]tea.Cmd, 0, paneCount)
			for p := Pane(0); p < paneCount; p++ {
				cmds = append(cmds, m.fetchCmd(p))
			}
			return m, tea.Batch(cmds...)
		}

	case "j", "down":
		m.moveCursor(1)

	case "k", "up":
		m.moveCursor(-1)

	case "g", "home":
		m.cursorHome()

	case "G", "end":
		m.cursorEnd()

	case "l", "right":
		if m.focus == PaneChart {
			m.moveHighlight(1)
		}

	case "h", "left":
		if m.focus == PaneChart {
			m.moveHighlight(-1)
		}

	case "f":
		m.cycleFilter()

	case "L":
		m.levelFilter = nextInCycle(levelCycle, m.levelFilter)
		m.clampCursor(PaneLogs, len(m.visibleLogs()))

	case "u":
		if m.focus == PaneAlerts {
			m.unackedOnly = !m.unackedOnly
			m.clampCursor(PaneAlerts, len(m.visibleAlerts()))
		}

	case "a":
		if m.focus == PaneAlerts {
			if a, ok := m.selectedAlert(); ok && !a.Acked {
				return m, m.ackCmd(a.ID)
			}
		}

	case "m":
		return m, m.cycleMetric(1)

	case "M":
		return m, m.cycleMetric(-1)

	case "c":
		m.cycleChartMode()

	case "w":
		return m, m.setWindow((m.windowIdx + 1) % len(chartWindows))

	case "v":
		if m.focus == PaneConfig {
			m.revealConfig = !m.revealConfig
		}

	case "enter":
		if m.hasDetail(m.focus) {
			m.view = ViewDetail
			m.resizeViewport()
			m.updateDetailContent()
		}
	}

	return m, nil
}

// handleDetailKey drives the detail view: esc backs out, everything else
// scrolls the viewport.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "backspace":
		m.view = ViewDash
		return m, nil
	case "?":
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// jumpFocus focuses pane number n (1-based, layout order). Numbers past
// the visible panes do nothing.
func (m *Model) jumpFocus(n int) {
	panes := m.visiblePanes()
	if n < 1 || n > len(panes) {
		return
	}
	m.focus = panes[n-1]
}

// nextFocus returns the pane delta steps away in the visible pane ring.
func (m Model) nextFocus(delta int) Pane {
	panes := m.visiblePanes()
	if len(panes) == 0 {
		return m.focus
	}
	idx := 0
	for i, p := range panes {
		if p == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(panes)) % len(panes)
	return panes[idx]
}

// cursorMax is the highest cursor value the focused pane allows, or -1
// when the pane has no rows at all.
func (m Model) cursorMax(p Pane) int {
	switch p {
	case PaneServices:
		return len(m.services) - 1
	case PaneAlerts:
		return len(m.visibleAlerts()) - 1
	case PaneLogs:
		return len(m.visibleLogs()) - 1
	case PaneConfig:
		if m.configDoc == nil {
			return -1
		}
		return len(m.configDoc.Fields) - 1
	default:
		return -1
	}
}

func (m *Model) moveCursor(delta int) {
	p := m.focus
	max := m.cursorMax(p)
	if max < 0 {
		return
	}
	c := m.cursor[p] + delta
	if c < 0 {
		c = 0
	}
	if c > max {
		c = max
	}
	m.cursor[p] = c
}

func (m *Model) cursorHome() {
	if m.cursorMax(m.focus) >= 0 {
		m.cursor[m.focus] = 0
	}
}

func (m *Model) cursorEnd() {
	if max := m.cursorMax(m.focus); max >= 0 {
		m.cursor[m.focus] = max
	}
}

// moveHighlight shifts the chart's highlighted point. Zero parks the
// cursor off the chart entirely.
func (m *Model) moveHighlight(delta int) {
	n := 0
	if m.series != nil {
		n = len(m.series.Points)
	}
	if n == 0 {
		m.cursor[PaneChart] = 0
		return
	}
	c := m.cursor[PaneChart] + delta
	if c < 0 {
		c = 0
	}
	if c > n {
		c = n
	}
	m.cursor[PaneChart] = c
}

// cycleFilter advances the focused pane's local filter. Filters only
// change what is rendered; fetched data is untouched.
func (m *Model) cycleFilter() {
	switch m.focus {
	case PaneAlerts:
		m.severityFilter = nextInCycle(severityCycle, m.severityFilter)
		m.clampCursor(PaneAlerts, len(m.visibleAlerts()))
	case PaneLogs:
		m.levelFilter = nextInCycle(levelCycle, m.levelFilter)
		m.clampCursor(PaneLogs, len(m.visibleLogs()))
	}
}

func nextInCycle(cycle []string, cur string) string {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// cycleMetric switches the chart to the next known metric name.
func (m *Model) cycleMetric(delta int) tea.Cmd {
	if len(m.metricNames) == 0 {
		return nil
	}
	idx := 0
	for i, n := range m.metricNames {
		if n == m.metric {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(m.metricNames)) % len(m.metricNames)
	return m.setMetric(m.metricNames[idx])
}

func (m *Model) cycleChartMode() {
	for i, md := range chartModes {
		if md == m.chartMode {
			m.chartMode = chartModes[(i+1)%len(chartModes)]
			return
		}
	}
	m.chartMode = chartModes[0]
}

// selectedAlert returns the alert under the cursor, respecting the
// local filter.
func (m Model) selectedAlert() (api.Alert, bool) {
	visible := m.visibleAlerts()
	if len(visible) == 0 {
		return api.Alert{}, false
	}
	i := m.cursor[PaneAlerts]
	if i >= len(visible) {
		i = len(visible) - 1
	}
	return visible[i], true
}

// hasDetail reports whether the pane has something worth a full-screen
// detail view right now.
func (m Model) hasDetail(p Pane) bool {
	switch p {
	case PaneHealth:
		return m.health != nil
	case PaneServices:
		return len(m.services) > 0
	case PaneAlerts:
		return len(m.visibleAlerts()) > 0
	case PaneLogs:
		return len(m.visibleLogs()) > 0
	case PaneConfig:
		return m.configDoc != nil && len(m.configDoc.Fields) > 0
	default:
		return false
	}
}
