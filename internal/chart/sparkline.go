package chart

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// sparklineBlocks are block characters for 8-level vertical resolution
// (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a single-row block-character strip of the series, one
// character per slot, width slots total. Flat series draw at mid height so
// a steady metric still reads as a line rather than a gap.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	min, max := bounds(values)
	var b strings.Builder
	for _, v := range resample(values, width) {
		b.WriteRune(sparklineBlocks[levelFor(v, min, max)])
	}
	return b.String()
}

// ColoredSparkline renders a sparkline styled with the given color.
func ColoredSparkline(values []float64, width int, color lipgloss.Color) string {
	s := Sparkline(values, width)
	if s == "" || color == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(color).Render(s)
}

func levelFor(v, min, max float64) int {
	normalized := 0.5
	if span := max - min; span > 0 {
		normalized = (v - min) / span
	}

	idx := int(normalized * float64(len(sparklineBlocks)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(sparklineBlocks)-1 {
		idx = len(sparklineBlocks) - 1
	}
	return idx
}

// resample fits data into targetSize slots. Downsampling keeps the maximum
// of each bucket so short spikes survive compression; upsampling uses
// linear interpolation.
func resample(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}
	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}

			max := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > max {
					max = data[j]
				}
			}
			result[i] = max
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}
	return result
}
