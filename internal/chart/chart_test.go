package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func noColor(float64) lipgloss.Color { return "" }

// countDots returns the number of set dots on the surface.
func countDots(s *Surface) int {
	var n int
	for y := 0; y < s.DotHeight(); y++ {
		for x := 0; x < s.DotWidth(); x++ {
			if s.DotAt(x, y) {
				n++
			}
		}
	}
	return n
}

// hasBrailleDots reports whether the rendered string contains any non-blank
// braille cell.
func hasBrailleDots(out string) bool {
	for _, r := range out {
		if r > brailleBase && r <= '⣿' {
			return true
		}
	}
	return false
}

func TestPlotLine_ConstantSeriesDrawsBottomEdge(t *testing.T) {
	s := NewSurface(26, 12) // 52 x 48 dots
	g := geometryFor(s, 2)
	values := []float64{7, 7, 7, 7, 7}
	min, max := bounds(values)

	plotLine(s, g, values, min, max, noColor)

	// The zero-range fallback pins a constant series to the bottom edge,
	// one flat line across all point columns.
	bottom := g.Padding + g.ChartHeight
	for i := range values {
		x := roundDot(g.XAt(i, len(values)))
		assert.True(t, s.DotAt(x, bottom), "point %d should sit on the bottom edge", i)
	}

	for y := 0; y < bottom; y++ {
		for x := 0; x < s.DotWidth(); x++ {
			if s.DotAt(x, y) {
				t.Fatalf("unexpected dot at (%d,%d) above the bottom edge", x, y)
			}
		}
	}
}

func TestPlotLine_SinglePointAtLeftEdge(t *testing.T) {
	s := NewSurface(26, 12)
	g := geometryFor(s, 2)

	plotLine(s, g, []float64{42}, 42, 42, noColor)

	assert.True(t, s.DotAt(g.Padding, g.Padding+g.ChartHeight),
		"single point should land on the left edge at the bottom")
	assert.Equal(t, 1, countDots(s), "a single point draws exactly one dot")
}

func TestPlotLine_EndpointsTouchEdges(t *testing.T) {
	s := NewSurface(26, 12)
	g := geometryFor(s, 2)
	values := []float64{0, 10}

	plotLine(s, g, values, 0, 10, noColor)

	assert.True(t, s.DotAt(g.Padding, g.Padding+g.ChartHeight),
		"min value at the left edge sits on the bottom")
	assert.True(t, s.DotAt(g.Padding+g.ChartWidth, g.Padding),
		"max value at the right edge sits on the top")
}

func TestPlotLine_PlotsInSuppliedOrder(t *testing.T) {
	s := NewSurface(26, 12)
	g := geometryFor(s, 2)
	values := []float64{10, 0, 5} // deliberately not monotonic

	plotLine(s, g, values, 0, 10, noColor)

	// Point order follows the slice: the first column carries the maximum,
	// the middle column the minimum. Nothing is reordered by value.
	assert.True(t, s.DotAt(roundDot(g.XAt(0, 3)), g.Padding))
	assert.True(t, s.DotAt(roundDot(g.XAt(1, 3)), g.Padding+g.ChartHeight))
}

func TestPlotArea_FillsBelowTheLine(t *testing.T) {
	s := NewSurface(26, 12)
	g := geometryFor(s, 2)
	values := []float64{0, 10}

	plotArea(s, g, values, 0, 10, noColor)

	right := g.Padding + g.ChartWidth
	bottom := g.Padding + g.ChartHeight
	for y := g.Padding; y <= bottom; y++ {
		assert.True(t, s.DotAt(right, y), "right column should be filled at y=%d", y)
	}

	assert.True(t, s.DotAt(g.Padding, bottom))
	assert.False(t, s.DotAt(g.Padding, bottom-1),
		"left column carries no fill above its zero-height point")
}

func TestPlotBars_RiseFromBottom(t *testing.T) {
	s := NewSurface(26, 12)
	g := geometryFor(s, 2)
	values := []float64{0, 10}

	plotBars(s, g, values, 0, 10, noColor)

	right := g.Padding + g.ChartWidth
	bottom := g.Padding + g.ChartHeight

	assert.True(t, s.DotAt(right, g.Padding), "full bar reaches the top")
	assert.True(t, s.DotAt(right, bottom), "full bar reaches the bottom")
	assert.True(t, s.DotAt(g.Padding, bottom), "zero bar still marks the baseline")
	assert.False(t, s.DotAt(g.Padding, bottom-4), "zero bar has no height")
}

func TestDrawHighlight_MarksSelectedColumn(t *testing.T) {
	s := NewSurface(26, 12)
	g := geometryFor(s, 2)
	values := []float64{0, 5, 10}

	drawHighlight(s, g, values, 0, 10, Options{Highlight: 2}, noColor)

	x := roundDot(g.XAt(1, 3))
	assert.True(t, s.DotAt(x, g.Padding), "cursor line starts at the top edge")

	y := roundDot(g.YAt(5, 0, 10))
	assert.True(t, s.DotAt(x, y))
	assert.True(t, s.DotAt(x-1, y), "marked point is drawn solid")
	assert.True(t, s.DotAt(x+1, y))
}

func TestDrawHighlight_OutOfRangeIgnored(t *testing.T) {
	values := []float64{1, 2, 3}

	for _, highlight := range []int{0, -2, 4, 99} {
		s := NewSurface(26, 12)
		g := geometryFor(s, 2)
		drawHighlight(s, g, values, 1, 3, Options{Highlight: highlight}, noColor)
		assert.True(t, s.Empty(), "highlight=%d should draw nothing", highlight)
	}
}

func TestRender_EmptySeriesShowsPlaceholder(t *testing.T) {
	for _, mode := range []Mode{ModeLine, ModeArea, ModeBar, ModeGauge} {
		t.Run(mode.String(), func(t *testing.T) {
			out := Render(nil, Options{Width: 30, Height: 6, Mode: mode})
			assert.Contains(t, out, "no data")
			assert.False(t, hasBrailleDots(out), "empty series should draw nothing")
		})
	}
}

func TestRender_CustomPlaceholder(t *testing.T) {
	out := Render(nil, Options{Width: 40, Height: 6, Placeholder: "waiting for samples"})
	assert.Contains(t, out, "waiting for samples")
}

func TestRender_RowCount(t *testing.T) {
	values := []float64{1, 4, 2, 8, 5}

	out := Render(values, Options{Width: 30, Height: 6})
	assert.Len(t, strings.Split(out, "\n"), 6)

	// The caption row replaces a plot row rather than growing the block.
	out = Render(values, Options{Width: 30, Height: 6, XLabelLeft: "15m ago", XLabelRight: "now"})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[5], "15m ago")
	assert.Contains(t, lines[5], "now")
}

func TestRender_YLabelsShowBounds(t *testing.T) {
	values := []float64{5, 50, 95}
	out := Render(values, Options{Width: 40, Height: 8, YLabels: true})

	assert.Contains(t, out, FormatValue(95.0))
	assert.Contains(t, out, FormatValue(5.0))
}

func TestRender_AllModesDrawSomething(t *testing.T) {
	values := []float64{1, 4, 2, 8, 5, 7, 3}

	for _, mode := range []Mode{ModeLine, ModeArea, ModeBar} {
		t.Run(mode.String(), func(t *testing.T) {
			out := Render(values, Options{Width: 30, Height: 6, Mode: mode})
			assert.True(t, hasBrailleDots(out))
		})
	}
}

func TestRender_ZeroSizeReturnsEmpty(t *testing.T) {
	values := []float64{1, 2}
	assert.Empty(t, Render(values, Options{Width: 0, Height: 6}))
	assert.Empty(t, Render(values, Options{Width: 30, Height: 0}))
}

func TestRender_ColorAtOverridesSeriesColor(t *testing.T) {
	values := []float64{95, 96, 97}
	out := Render(values, Options{
		Width:  30,
		Height: 6,
		Color:  lipgloss.Color("#3fb950"),
		ColorAt: func(float64) lipgloss.Color {
			return lipgloss.Color("#f85149")
		},
	})

	assert.Contains(t, out, "38;2;248;81;73", "per-value color should win")
	assert.NotContains(t, out, "38;2;63;185;80")
}

func TestHitTest_MapsCellsBackToPoints(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	opts := Options{Width: 26, Height: 12, Padding: 2}

	// Points land on dot columns 2, 14, 26, 38, 50; a cell covers two dot
	// columns, so point i sits in cell round(XAt(i))/2.
	tests := []struct {
		cellX int
		want  int
	}{
		{1, 0},
		{7, 1},
		{13, 2},
		{19, 3},
		{25, 4},
	}

	for _, tt := range tests {
		got, ok := HitTest(values, opts, tt.cellX, 5)
		require.True(t, ok, "cell %d", tt.cellX)
		assert.Equal(t, tt.want, got, "cell %d", tt.cellX)
	}
}

func TestHitTest_SnapsToNearestPoint(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	opts := Options{Width: 26, Height: 12, Padding: 2}

	// Cell 4 is dot 8.5, closer to point 1 (dot 14) than point 0 (dot 2).
	got, ok := HitTest(values, opts, 4, 0)
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestHitTest_IgnoresOutOfRegionCells(t *testing.T) {
	values := []float64{1, 2, 3}
	opts := Options{Width: 26, Height: 12, Padding: 2}

	for _, tc := range []struct {
		name         string
		cellX, cellY int
	}{
		{"left of block", -1, 5},
		{"right of block", 26, 5},
		{"above block", 5, -1},
		{"below block", 5, 12},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := HitTest(values, opts, tc.cellX, tc.cellY)
			assert.False(t, ok)
		})
	}
}

func TestHitTest_AccountsForLabelGutter(t *testing.T) {
	values := []float64{0, 5, 10}
	opts := Options{Width: 26, Height: 12, Padding: 2, YLabels: true}

	// Gutter is len("10.0")+1 = 5 cells; clicks inside it hit nothing.
	_, ok := HitTest(values, opts, 4, 5)
	assert.False(t, ok)

	// First plot cell maps to the first point.
	got, ok := HitTest(values, opts, 5, 5)
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestHitTest_SkipsCaptionRow(t *testing.T) {
	values := []float64{1, 2, 3}
	opts := Options{Width: 26, Height: 12, Padding: 2, XLabelLeft: "15m ago", XLabelRight: "now"}

	// The caption consumes the bottom row, leaving 11 plot rows.
	_, ok := HitTest(values, opts, 5, 11)
	assert.False(t, ok)

	_, ok = HitTest(values, opts, 5, 10)
	assert.True(t, ok)
}

func TestHitTest_EmptyAndGauge(t *testing.T) {
	opts := Options{Width: 26, Height: 12, Padding: 2}

	_, ok := HitTest(nil, opts, 5, 5)
	assert.False(t, ok)

	gauge := opts
	gauge.Mode = ModeGauge
	_, ok = HitTest([]float64{1, 2}, gauge, 5, 5)
	assert.False(t, ok)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "line", ModeLine.String())
	assert.Equal(t, "area", ModeArea.String())
	assert.Equal(t, "bar", ModeBar.String())
	assert.Equal(t, "gauge", ModeGauge.String())
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "zero", value: 0, want: "0"},
		{name: "fraction", value: 0.25, want: "0.25"},
		{name: "small", value: 1.5, want: "1.5"},
		{name: "hundreds", value: 153.2, want: "153"},
		{name: "thousands", value: 1532, want: "1.5k"},
		{name: "millions", value: 2500000, want: "2.5M"},
		{name: "billions", value: 3100000000, want: "3.1G"},
		{name: "negative thousands", value: -1200, want: "-1.2k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value))
		})
	}
}
