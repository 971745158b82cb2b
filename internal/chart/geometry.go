package chart

import "math"

// Geometry maps series indexes and values onto surface dot coordinates.
// The drawable region is ChartWidth x ChartHeight dots, inset by Padding
// dots on every side. All coordinates grow rightward and downward.
type Geometry struct {
	Padding     int
	ChartWidth  int
	ChartHeight int
}

// geometryFor derives the drawable region from a surface and padding.
// Padding below 1 is raised to 1 so edge coordinates stay on the grid.
func geometryFor(s *Surface, padding int) Geometry {
	if padding < 1 {
		padding = 1
	}

	w := s.DotWidth() - 2*padding
	h := s.DotHeight() - 2*padding
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Geometry{Padding: padding, ChartWidth: w, ChartHeight: h}
}

// Step returns the horizontal dot spacing between consecutive points of an
// n-point series. A single point occupies the full width.
func (g Geometry) Step(n int) float64 {
	den := n - 1
	if den < 1 {
		den = 1
	}
	return float64(g.ChartWidth) / float64(den)
}

// XAt returns the x coordinate of point i in an n-point series. Points are
// spaced evenly: the first lands exactly on Padding, the last exactly on
// Padding+ChartWidth.
func (g Geometry) XAt(i, n int) float64 {
	den := n - 1
	if den < 1 {
		den = 1
	}
	return float64(g.Padding) + float64(g.ChartWidth)*float64(i)/float64(den)
}

// YAt returns the y coordinate for value given the series bounds. Larger
// values sit higher (smaller y). A zero-range series falls back to a
// divisor of 1, which pins every point to the bottom edge of the region.
func (g Geometry) YAt(value, min, max float64) float64 {
	span := max - min
	if span == 0 {
		span = 1
	}
	return float64(g.Padding) + float64(g.ChartHeight) - (value-min)/span*float64(g.ChartHeight)
}

// NearestIndex inverts XAt: it returns the series index whose point is
// closest to the x coordinate. Coordinates that round outside [0, n) report
// ok=false rather than snapping to an edge point.
func (g Geometry) NearestIndex(x float64, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}

	step := g.Step(n)
	if step <= 0 {
		return 0, false
	}

	i := int(math.Round((x - float64(g.Padding)) / step))
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// bounds returns the minimum and maximum of values. Empty input gives (0, 0).
func bounds(values []float64) (min, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
