// Package chart renders time series as braille-dot terminal graphics.
//
// A chart maps an N-point series onto a dot grid: point i lands at
// x = padding + chartWidth*i/(N-1) and its value at
// y = padding + chartHeight - (value-min)/(max-min)*chartHeight, where min
// and max are taken over the whole series. Series are plotted in the order
// supplied; the renderer never sorts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects how a series is drawn.
type Mode int

const (
	ModeLine Mode = iota
	ModeArea
	ModeBar
	ModeGauge
)

// String returns the mode name as shown in the dashboard footer.
func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeArea:
		return "area"
	case ModeBar:
		return "bar"
	case ModeGauge:
		return "gauge"
	default:
		return "unknown"
	}
}

// Options controls a single Render call.
type Options struct {
	Width  int // terminal columns for the whole chart block
	Height int // terminal rows for the whole chart block
	Mode   Mode

	// Padding is the dot inset on every side of the drawable region.
	// Values below 1 are raised to 1 so edge points stay on the grid.
	Padding int

	Color   lipgloss.Color                     // series color
	ColorAt func(value float64) lipgloss.Color // optional per-value override
	Axis    lipgloss.Color                     // grid lines, labels, placeholder

	GridLines int  // horizontal guide lines across the region
	YLabels   bool // min/max gutter on the left

	// X-axis caption rendered under the plot when either is non-empty.
	XLabelLeft  string
	XLabelRight string

	// Highlight marks one point with a vertical cursor line. It is 1-based;
	// 0 disables the marker and out-of-range values are ignored.
	Highlight int

	Placeholder string // shown centered when the series is empty
}

// blockLayout is the cell-space split Render derives from Options: a label
// gutter on the left, the plot surface, and an optional caption row below.
type blockLayout struct {
	gutterWidth int
	plotCols    int
	plotRows    int
	hasXLabels  bool
}

func layoutFor(values []float64, opts Options) blockLayout {
	min, max := bounds(values)

	plotCols := opts.Width
	gutterWidth := 0
	if opts.YLabels {
		gutterWidth = maxInt(len(FormatValue(max)), len(FormatValue(min))) + 1
		if plotCols-gutterWidth >= 4 {
			plotCols -= gutterWidth
		} else {
			gutterWidth = 0
		}
	}

	plotRows := opts.Height
	hasXLabels := opts.XLabelLeft != "" || opts.XLabelRight != ""
	if hasXLabels && plotRows > 1 {
		plotRows--
	} else {
		hasXLabels = false
	}

	return blockLayout{
		gutterWidth: gutterWidth,
		plotCols:    plotCols,
		plotRows:    plotRows,
		hasXLabels:  hasXLabels,
	}
}

// Render draws values into a Width x Height block of terminal cells.
// An empty series produces no dots, just the placeholder text.
func Render(values []float64, opts Options) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		return ""
	}
	if opts.Mode == ModeGauge {
		return RenderGauge(values, opts)
	}
	if len(values) == 0 {
		return renderPlaceholder(opts)
	}

	min, max := bounds(values)
	l := layoutFor(values, opts)
	gutterWidth, plotCols, plotRows, hasXLabels := l.gutterWidth, l.plotCols, l.plotRows, l.hasXLabels

	surface := NewSurface(plotCols, plotRows)
	g := geometryFor(surface, opts.Padding)

	drawGridLines(surface, g, opts)

	colorFor := func(v float64) lipgloss.Color {
		if opts.ColorAt != nil {
			return opts.ColorAt(v)
		}
		return opts.Color
	}

	switch opts.Mode {
	case ModeArea:
		plotArea(surface, g, values, min, max, colorFor)
	case ModeBar:
		plotBars(surface, g, values, min, max, colorFor)
	default:
		plotLine(surface, g, values, min, max, colorFor)
	}

	drawHighlight(surface, g, values, min, max, opts, colorFor)

	out := surface.Render()
	if gutterWidth > 0 {
		out = lipgloss.JoinHorizontal(lipgloss.Top,
			renderGutter(gutterWidth, plotRows, min, max, opts), out)
	}
	if hasXLabels {
		out += "\n" + renderXLabels(gutterWidth, plotCols, opts)
	}
	return out
}

// HitTest maps a terminal cell inside a rendered chart block back to the
// nearest point index, using the same layout Render produced for the same
// values and options. cellX and cellY are relative to the block's top-left
// cell. Cells outside the plot area, and positions that round outside the
// series, report ok=false.
func HitTest(values []float64, opts Options, cellX, cellY int) (int, bool) {
	n := len(values)
	if n == 0 || opts.Width <= 0 || opts.Height <= 0 || opts.Mode == ModeGauge {
		return 0, false
	}

	l := layoutFor(values, opts)
	px := cellX - l.gutterWidth
	if px < 0 || px >= l.plotCols || cellY < 0 || cellY >= l.plotRows {
		return 0, false
	}

	surface := NewSurface(l.plotCols, l.plotRows)
	g := geometryFor(surface, opts.Padding)

	// A cell spans dot columns 2*px and 2*px+1; aim at its center.
	return g.NearestIndex(float64(2*px)+0.5, n)
}

// plotLine connects consecutive points with dot segments. A single point
// draws one dot at the left edge of the region.
func plotLine(s *Surface, g Geometry, values []float64, min, max float64, colorFor func(float64) lipgloss.Color) {
	n := len(values)
	if n == 1 {
		s.Set(roundDot(g.XAt(0, 1)), roundDot(g.YAt(values[0], min, max)), colorFor(values[0]))
		return
	}

	for i := 0; i < n-1; i++ {
		x0 := roundDot(g.XAt(i, n))
		y0 := roundDot(g.YAt(values[i], min, max))
		x1 := roundDot(g.XAt(i+1, n))
		y1 := roundDot(g.YAt(values[i+1], min, max))
		s.Line(x0, y0, x1, y1, colorFor(values[i+1]))
	}
}

// plotArea draws the line silhouette and fills every dot column below it
// down to the bottom edge of the region.
func plotArea(s *Surface, g Geometry, values []float64, min, max float64, colorFor func(float64) lipgloss.Color) {
	n := len(values)
	bottom := g.Padding + g.ChartHeight

	fillColumn := func(x, top int, c lipgloss.Color) {
		for y := top; y <= bottom; y++ {
			s.Set(x, y, c)
		}
	}

	if n == 1 {
		fillColumn(roundDot(g.XAt(0, 1)), roundDot(g.YAt(values[0], min, max)), colorFor(values[0]))
		return
	}

	for i := 0; i < n-1; i++ {
		x0f, y0f := g.XAt(i, n), g.YAt(values[i], min, max)
		x1f, y1f := g.XAt(i+1, n), g.YAt(values[i+1], min, max)
		x0, x1 := roundDot(x0f), roundDot(x1f)
		c := colorFor(values[i+1])

		for x := x0; x <= x1; x++ {
			t := 0.0
			if x1 != x0 {
				t = float64(x-x0) / float64(x1-x0)
			}
			fillColumn(x, roundDot(y0f+t*(y1f-y0f)), c)
		}
	}
}

// plotBars draws one vertical bar per point, centered on the point's x
// coordinate and rising from the bottom edge.
func plotBars(s *Surface, g Geometry, values []float64, min, max float64, colorFor func(float64) lipgloss.Color) {
	n := len(values)
	bottom := g.Padding + g.ChartHeight

	half := int(g.Step(n)/2) - 1
	if half < 0 {
		half = 0
	}
	if half > g.ChartWidth/4 {
		half = g.ChartWidth / 4
	}

	for i, v := range values {
		x := roundDot(g.XAt(i, n))
		top := roundDot(g.YAt(v, min, max))
		c := colorFor(v)

		for xx := x - half; xx <= x+half; xx++ {
			if xx < g.Padding || xx > g.Padding+g.ChartWidth {
				continue
			}
			for y := top; y <= bottom; y++ {
				s.Set(xx, y, c)
			}
		}
	}
}

// drawGridLines lays dotted horizontal guides across the region. They are
// drawn before the series so data overwrites them.
func drawGridLines(s *Surface, g Geometry, opts Options) {
	for k := 1; k <= opts.GridLines; k++ {
		y := g.Padding + g.ChartHeight*k/(opts.GridLines+1)
		for x := g.Padding; x <= g.Padding+g.ChartWidth; x += 3 {
			s.Set(x, y, opts.Axis)
		}
	}
}

// drawHighlight draws the cursor line and a solid marker on the selected
// point.
func drawHighlight(s *Surface, g Geometry, values []float64, min, max float64, opts Options, colorFor func(float64) lipgloss.Color) {
	n := len(values)
	if opts.Highlight < 1 || opts.Highlight > n {
		return
	}

	i := opts.Highlight - 1
	x := roundDot(g.XAt(i, n))
	c := colorFor(values[i])

	for y := g.Padding; y <= g.Padding+g.ChartHeight; y += 2 {
		s.Set(x, y, c)
	}

	y := roundDot(g.YAt(values[i], min, max))
	s.Set(x, y, c)
	s.Set(x-1, y, c)
	s.Set(x+1, y, c)
	s.Set(x, y-1, c)
	s.Set(x, y+1, c)
}

func renderPlaceholder(opts Options) string {
	text := opts.Placeholder
	if text == "" {
		text = "no data"
	}
	if opts.Axis != "" {
		text = lipgloss.NewStyle().Foreground(opts.Axis).Render(text)
	}
	return lipgloss.Place(opts.Width, opts.Height, lipgloss.Center, lipgloss.Center, text)
}

// renderGutter builds the left label column: max on the top row, min on the
// bottom, blanks between.
func renderGutter(width, rows int, min, max float64, opts Options) string {
	style := lipgloss.NewStyle().Foreground(opts.Axis)
	blank := strings.Repeat(" ", width)

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = blank
	}
	lines[0] = style.Render(fmt.Sprintf("%*s ", width-1, FormatValue(max)))
	if rows > 1 {
		lines[rows-1] = style.Render(fmt.Sprintf("%*s ", width-1, FormatValue(min)))
	}
	return strings.Join(lines, "\n")
}

// renderXLabels builds the caption row under the plot, left and right
// aligned within the plot width.
func renderXLabels(gutterWidth, plotCols int, opts Options) string {
	left, right := opts.XLabelLeft, opts.XLabelRight
	pad := plotCols - len(left) - len(right)
	if pad < 1 {
		right = ""
		pad = plotCols - len(left)
		if pad < 0 {
			left = left[:plotCols]
			pad = 0
		}
	}

	row := strings.Repeat(" ", gutterWidth) + left + strings.Repeat(" ", pad) + right
	if opts.Axis != "" {
		return lipgloss.NewStyle().Foreground(opts.Axis).Render(row)
	}
	return row
}

// FormatValue renders a metric value compactly for labels and readouts.
func FormatValue(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fG", v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	case abs >= 100:
		return fmt.Sprintf("%.0f", v)
	case abs >= 1:
		return fmt.Sprintf("%.1f", v)
	case abs == 0:
		return "0"
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

func roundDot(f float64) int {
	return int(math.Round(f))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
