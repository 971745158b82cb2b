package chart

import (
	"math"

	"github.com/charmbracelet/lipgloss"
)

// GaugeFraction maps a value onto the dial as a 0..1 fraction of the
// semicircle. A zero-range series falls back to a divisor of 1, so the
// needle rests at the left stop instead of dividing by zero.
func GaugeFraction(value, min, max float64) float64 {
	span := max - min
	if span == 0 {
		span = 1
	}
	return (value - min) / span
}

// RenderGauge draws a semicircular dial for the most recent value of the
// series, with the dial filled from the left stop to the needle. A readout
// row with the formatted value is added when the block is tall enough.
func RenderGauge(values []float64, opts Options) string {
	if opts.Width <= 0 || opts.Height <= 0 {
		return ""
	}
	if len(values) == 0 {
		return renderPlaceholder(opts)
	}

	min, max := bounds(values)
	value := values[len(values)-1]
	f := GaugeFraction(value, min, max)
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}

	rows := opts.Height
	hasReadout := rows > 2
	if hasReadout {
		rows--
	}

	s := NewSurface(opts.Width, rows)
	padding := opts.Padding
	if padding < 1 {
		padding = 1
	}

	cx := s.DotWidth() / 2
	cy := s.DotHeight() - padding
	r := minInt(s.DotWidth()/2-padding, s.DotHeight()-2*padding)
	if r < 2 {
		r = 2
	}

	// Dial outline across the full semicircle.
	steps := 4 * r
	for i := 0; i <= steps; i++ {
		theta := math.Pi * float64(i) / float64(steps)
		s.Set(dialX(cx, r, theta), dialY(cy, r, theta), opts.Axis)
	}

	c := opts.Color
	if opts.ColorAt != nil {
		c = opts.ColorAt(value)
	}

	// Fill band from the left stop around to the needle position.
	if f > 0 {
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			if t > f {
				break
			}
			theta := math.Pi * (1 - t)
			for d := 1; d <= 3; d++ {
				if r-d < 1 {
					break
				}
				s.Set(dialX(cx, r-d, theta), dialY(cy, r-d, theta), c)
			}
		}
	}

	// Needle.
	thetaN := math.Pi * (1 - f)
	nx := dialX(cx, int(0.8*float64(r)), thetaN)
	ny := dialY(cy, int(0.8*float64(r)), thetaN)
	s.Line(cx, cy, nx, ny, c)

	out := s.Render()
	if hasReadout {
		readout := FormatValue(value)
		if c != "" {
			readout = lipgloss.NewStyle().Foreground(c).Bold(true).Render(readout)
		}
		out += "\n" + lipgloss.Place(opts.Width, 1, lipgloss.Center, lipgloss.Top, readout)
	}
	return out
}

func dialX(cx, r int, theta float64) int {
	return cx + int(math.Round(float64(r)*math.Cos(theta)))
}

func dialY(cy, r int, theta float64) int {
	return cy - int(math.Round(float64(r)*math.Sin(theta)))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
