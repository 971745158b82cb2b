package dash

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearthview/hearth/internal/chart"
)

// handleMouse maps pointer events onto panes. Clicking focuses and
// selects; hovering the chart moves the highlight to the nearest point;
// the wheel scrolls whatever pane is under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewDash || m.showHelp {
		return m, nil
	}

	p, r, ok := m.paneAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollPane(p, -1)

	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollPane(p, 1)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.focus = p
		m.selectAt(p, r, msg.X, msg.Y)

	case msg.Action == tea.MouseActionMotion:
		// Hover tracks the chart highlight only; it never steals focus.
		if p == PaneChart {
			m.highlightAt(r, msg.X, msg.Y)
		}
	}

	return m, nil
}

func (m Model) paneAt(x, y int) (Pane, rect, bool) {
	rects := m.paneRects()
	for _, p := range paneOrder {
		if r, ok := rects[p]; ok && r.contains(x, y) {
			return p, r, true
		}
	}
	return 0, rect{}, false
}

func (m *Model) scrollPane(p Pane, delta int) {
	if p == PaneChart {
		m.moveHighlight(delta)
		return
	}
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

// selectAt moves the pane's cursor to the clicked row, or the clicked
// chart point.
func (m *Model) selectAt(p Pane, r rect, x, y int) {
	if p == PaneChart {
		m.highlightAt(r, x, y)
		return
	}

	total := m.cursorMax(p) + 1
	if total <= 0 {
		return
	}
	rows := m.listRows(p, r)

	// First item row: border, title, optional error banner.
	top := r.y + 2
	if m.panes[p].err != "" {
		top++
	}
	row := y - top
	if row < 0 || row >= rows {
		return
	}
	idx := m.listStart(p, total, rows) + row
	if idx >= total {
		return
	}
	m.cursor[p] = idx
}

// highlightAt maps a pointer cell inside the chart card back to the
// nearest series point.
func (m *Model) highlightAt(card rect, x, y int) {
	values := seriesValues(m.series)
	if len(values) == 0 {
		return
	}
	b := m.chartBlock(card)
	if b.w <= 0 || b.h <= 0 {
		return
	}
	idx, ok := chart.HitTest(values, m.chartOptions(b.w, b.h), x-b.x, y-b.y)
	if !ok {
		return
	}
	m.cursor[PaneChart] = idx + 1
}
