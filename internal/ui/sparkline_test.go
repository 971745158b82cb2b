package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderSparkline_Empty(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 10, 70, 90))
	assert.Empty(t, RenderSparkline([]float64{1, 2}, 0, 70, 90))
}

func TestRenderSparkline_MapsRange(t *testing.T) {
	out := RenderSparkline([]float64{0, 7}, 10, 70, 90)

	runes := []rune(out)
	assert.Len(t, runes, 2)
	assert.Equal(t, '▁', runes[0], "minimum maps to the lowest block")
	assert.Equal(t, '█', runes[1], "maximum maps to the highest block")
}

func TestRenderSparkline_FlatSeriesUsesMiddle(t *testing.T) {
	out := RenderSparkline([]float64{5, 5, 5}, 10, 70, 90)
	assert.Equal(t, "▅▅▅", out)
}

func TestRenderSparkline_KeepsMostRecent(t *testing.T) {
	data := []float64{5, 5, 5, 0, 9}
	out := RenderSparkline(data, 2, 70, 90)
	assert.Equal(t, "▁█", out, "width caps to the newest points")
}

func TestThresholdColor(t *testing.T) {
	assert.Equal(t, ColorSuccess, ThresholdColor(10, 70, 90))
	assert.Equal(t, ColorSuccess, ThresholdColor(69.9, 70, 90))
	assert.Equal(t, ColorWarning, ThresholdColor(70, 70, 90))
	assert.Equal(t, ColorWarning, ThresholdColor(89.9, 70, 90))
	assert.Equal(t, ColorError, ThresholdColor(90, 70, 90))
	assert.Equal(t, ColorError, ThresholdColor(150, 70, 90))
}
