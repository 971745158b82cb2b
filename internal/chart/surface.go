package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// Surface is a dot-addressable drawing canvas backed by braille cells.
// A terminal cell holds a 2x4 dot block, so a cols x rows surface exposes
// cols*2 x rows*4 individually settable dots. Dot (0,0) is top-left.
type Surface struct {
	cols, rows int
	grid       [][]rune
	colors     [][]lipgloss.Color
}

// NewSurface allocates an empty surface of cols x rows terminal cells.
func NewSurface(cols, rows int) *Surface {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	grid := make([][]rune, rows)
	colors := make([][]lipgloss.Color, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		colors[i] = make([]lipgloss.Color, cols)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	return &Surface{cols: cols, rows: rows, grid: grid, colors: colors}
}

// DotWidth returns the surface width in dots.
func (s *Surface) DotWidth() int { return s.cols * 2 }

// DotHeight returns the surface height in dots.
func (s *Surface) DotHeight() int { return s.rows * 4 }

// Set turns on the dot at (x, y) and records its color. The most recent
// write wins for the cell's color. Out-of-bounds coordinates are ignored.
func (s *Surface) Set(x, y int, color lipgloss.Color) {
	if x < 0 || y < 0 || x >= s.DotWidth() || y >= s.DotHeight() {
		return
	}

	row, col := y/4, x/2
	bit := brailleDots[y%4][x%2]
	s.grid[row][col] |= rune(1 << bit)
	if color != "" {
		s.colors[row][col] = color
	}
}

// DotAt reports whether the dot at (x, y) is set. Out-of-bounds is false.
func (s *Surface) DotAt(x, y int) bool {
	if x < 0 || y < 0 || x >= s.DotWidth() || y >= s.DotHeight() {
		return false
	}
	row, col := y/4, x/2
	bit := brailleDots[y%4][x%2]
	return s.grid[row][col]&rune(1<<bit) != 0
}

// Empty reports whether no dot on the surface is set.
func (s *Surface) Empty() bool {
	for _, row := range s.grid {
		for _, cell := range row {
			if cell != brailleBase {
				return false
			}
		}
	}
	return true
}

// Line draws a straight dot line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Segments leaving the surface are clipped by Set.
func (s *Surface) Line(x0, y0, x1, y1 int, color lipgloss.Color) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		s.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Render converts the surface to terminal output, one line per cell row.
// Runs of cells sharing a color are styled together; uncolored cells pass
// through unstyled.
func (s *Surface) Render() string {
	lines := make([]string, 0, s.rows)
	for r := 0; r < s.rows; r++ {
		var b strings.Builder
		var run strings.Builder
		runColor := s.colors[r][0]

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			}
			run.Reset()
		}

		for c := 0; c < s.cols; c++ {
			if s.colors[r][c] != runColor {
				flush()
				runColor = s.colors[r][c]
			}
			run.WriteRune(s.grid[r][c])
		}
		flush()
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
