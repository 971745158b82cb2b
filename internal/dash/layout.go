package dash

// rect is a cell-space rectangle in the terminal, origin top-left.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// paneOrder is the canonical focus order: status column first, then the
// activity column.
var paneOrder = [...]Pane{PaneHealth, PaneServices, PaneConfig, PaneChart, PaneAlerts, PaneLogs}

// Layout returns the layout mode for the current terminal width.
func (m Model) Layout() LayoutMode {
	switch {
	case m.width >= BreakpointWide:
		return LayoutWide
	case m.width >= BreakpointStandard:
		return LayoutStandard
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// visiblePanes lists the panes the current layout actually renders, in
// focus order.
func (m Model) visiblePanes() []Pane {
	rects := m.paneRects()
	out := make([]Pane, 0, len(rects))
	for _, p := range paneOrder {
		if _, ok := rects[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (m *Model) ensureFocusVisible() {
	panes := m.visiblePanes()
	for _, p := range panes {
		if p == m.focus {
			return
		}
	}
	if len(panes) > 0 {
		m.focus = panes[0]
	}
}

func (m Model) showFooter() bool {
	return m.height >= HeightFooter
}

// bodyRect is the region between the header line and the footer line.
func (m Model) bodyRect() rect {
	h := m.height - 1
	if m.showFooter() {
		h--
	}
	if h < 0 {
		h = 0
	}
	return rect{x: 0, y: 1, w: m.width, h: h}
}

// paneRects places every visible pane's card. Positions are exact: the
// view stacks cards with no gaps except the single column between the two
// columns, so a rect here is also a mouse target.
func (m Model) paneRects() map[Pane]rect {
	rects := make(map[Pane]rect, paneCount)
	body := m.bodyRect()
	if body.w < 20 || body.h < 3 {
		return rects
	}

	switch m.Layout() {
	case LayoutMinimal:
		healthH := clamp(body.h/3, 3, 8)
		if healthH > body.h {
			healthH = body.h
		}
		rects[PaneHealth] = rect{body.x, body.y, body.w, healthH}
		if rest := body.h - healthH; rest >= 3 {
			rects[PaneAlerts] = rect{body.x, body.y + healthH, body.w, rest}
		}

	case LayoutCompact:
		healthH := clamp(body.h/4, 3, 8)
		chartH := clamp(body.h*2/5, 6, 14)
		if healthH+chartH > body.h {
			chartH = body.h - healthH
			if chartH < 3 {
				chartH = 0
			}
		}
		rest := body.h - healthH - chartH
		alertsH := (rest + 1) / 2
		logsH := rest - alertsH
		if logsH < 3 {
			alertsH = rest
			logsH = 0
		}
		if alertsH < 3 {
			alertsH = 0
		}

		y := body.y
		rects[PaneHealth] = rect{body.x, y, body.w, healthH}
		y += healthH
		if chartH > 0 {
			rects[PaneChart] = rect{body.x, y, body.w, chartH}
			y += chartH
		}
		if alertsH > 0 {
			rects[PaneAlerts] = rect{body.x, y, body.w, alertsH}
			y += alertsH
		}
		if logsH > 0 {
			rects[PaneLogs] = rect{body.x, y, body.w, logsH}
		}

	default:
		leftW := clamp(body.w/3, 36, 52)
		if m.Layout() == LayoutWide {
			leftW = clamp(body.w*2/5, 44, 64)
		}
		rightW := body.w - leftW - 1
		rightX := body.x + leftW + 1

		// Left column: hub health, services, hub config.
		healthH := clamp(body.h/4, 6, 10)
		if healthH > body.h {
			healthH = body.h
		}
		servicesH := clamp((body.h-healthH)/2, 5, 14)
		if healthH+servicesH > body.h {
			servicesH = body.h - healthH
		}
		configH := body.h - healthH - servicesH

		y := body.y
		rects[PaneHealth] = rect{body.x, y, leftW, healthH}
		y += healthH
		if servicesH >= 3 {
			rects[PaneServices] = rect{body.x, y, leftW, servicesH}
			y += servicesH
		}
		if configH >= 3 {
			rects[PaneConfig] = rect{body.x, y, leftW, configH}
		}

		// Right column: chart on top, alerts and logs below.
		chartH := clamp(body.h*2/5, 8, 18)
		if chartH > body.h {
			chartH = body.h
		}
		rest := body.h - chartH
		alertsH := (rest + 1) / 2
		logsH := rest - alertsH
		if logsH < 3 {
			alertsH = rest
			logsH = 0
		}
		if alertsH < 3 {
			alertsH = 0
		}

		y = body.y
		rects[PaneChart] = rect{rightX, y, rightW, chartH}
		y += chartH
		if alertsH > 0 {
			rects[PaneAlerts] = rect{rightX, y, rightW, alertsH}
			y += alertsH
		}
		if logsH > 0 {
			rects[PaneLogs] = rect{rightX, y, rightW, logsH}
		}
	}

	return rects
}

// chartBlock is where the chart glyphs live inside the chart card: past
// the border and padding, below the title row and any error banner, above
// the hint row.
func (m Model) chartBlock(card rect) rect {
	b := rect{
		x: card.x + 2,
		y: card.y + 2,
		w: card.w - 4,
		h: card.h - 4,
	}
	if m.panes[PaneChart].err != "" {
		b.y++
		b.h--
	}
	if b.w < 0 {
		b.w = 0
	}
	if b.h < 0 {
		b.h = 0
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
