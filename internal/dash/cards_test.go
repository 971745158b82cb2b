package dash

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthview/hearth/internal/api"
)

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"this is far too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
		{"héllo wörld", 8, "héllo..."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateWithEllipsis(tt.in, tt.max), "%q @ %d", tt.in, tt.max)
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines([]string{"a", "b"}, 4)
	assert.Equal(t, "a\nb\n\n", got, "short bodies pad with blank lines")

	got = fitLines([]string{"a", "b", "c"}, 2)
	assert.Equal(t, "a\nb", got, "long bodies clip")

	assert.Empty(t, fitLines([]string{"a"}, 0))
}

func TestSeriesValues(t *testing.T) {
	assert.Nil(t, seriesValues(nil))

	s := &api.Series{Points: []api.Point{{Value: 1.5}, {Value: -2}, {Value: 0}}}
	assert.Equal(t, []float64{1.5, -2, 0}, seriesValues(s))
}

func TestSeverityShort(t *testing.T) {
	assert.Equal(t, "crit", severityShort(api.SeverityCritical))
	assert.Equal(t, "warn", severityShort(api.SeverityWarning))
	assert.Equal(t, "info", severityShort(api.SeverityInfo))
	assert.Equal(t, "info", severityShort("anything-else"))
}

func TestLevelShort(t *testing.T) {
	assert.Equal(t, "warn", levelShort("warning"))
	assert.Equal(t, "error", levelShort("error"))
	assert.Equal(t, "debug", levelShort("debug"))
}

func TestHealthColor(t *testing.T) {
	assert.Equal(t, ColorHealthy, healthColor("ok"))
	assert.Equal(t, ColorWarning, healthColor("degraded"))
	assert.Equal(t, ColorCritical, healthColor("down"))
	assert.Equal(t, ColorTextMuted, healthColor("mystery"))
}

func TestListStart_KeepsCursorInWindow(t *testing.T) {
	m := testModel()

	// Fits entirely: no scrolling.
	assert.Equal(t, 0, m.listStart(PaneLogs, 3, 5))

	m.cursor[PaneLogs] = 0
	assert.Equal(t, 0, m.listStart(PaneLogs, 10, 5))

	m.cursor[PaneLogs] = 7
	assert.Equal(t, 3, m.listStart(PaneLogs, 10, 5), "cursor rides the bottom edge")

	m.cursor[PaneLogs] = 9
	assert.Equal(t, 5, m.listStart(PaneLogs, 10, 5))
}

func TestListRows_AccountsForErrorBanner(t *testing.T) {
	m := testModel()
	card := rect{x: 0, y: 0, w: 40, h: 10}

	assert.Equal(t, 7, m.listRows(PaneLogs, card))

	m.panes[PaneLogs].err = "fetch failed"
	assert.Equal(t, 6, m.listRows(PaneLogs, card))
}

func TestTitleLine_Markers(t *testing.T) {
	m := sized(t, testModel(), 140, 40)

	line := m.titleLine(PaneHealth, 40, "")
	assert.Contains(t, line, "…", "idle panes show the pending marker")

	m.panes[PaneHealth].state = FetchFailed
	line = m.titleLine(PaneHealth, 40, "")
	assert.Contains(t, line, GlyphFailed)

	m.panes[PaneHealth].state = FetchOK
	line = m.titleLine(PaneHealth, 40, "")
	assert.NotContains(t, line, "…")
	assert.NotContains(t, line, GlyphFailed)
}

func TestAlertRow_AckedIsMarked(t *testing.T) {
	now := time.Now()
	a := api.Alert{
		Severity:  api.SeverityWarning,
		Service:   "zigbee-gw",
		Message:   "battery low",
		CreatedAt: now.Add(-3 * time.Minute),
		Acked:     true,
	}

	row := alertRow(a, 80, false, now)
	assert.Contains(t, row, "warn")
	assert.Contains(t, row, "3m")
	assert.Contains(t, row, "zigbee-gw")
	assert.Contains(t, row, "battery low")
	assert.Contains(t, row, "✓")
}

func TestServiceRow_FailureShowsMessage(t *testing.T) {
	s := api.ServiceStatus{
		Name:     "rule-engine",
		State:    api.StateFailed,
		Restarts: 3,
		Message:  "exit status 2",
	}

	row := serviceRow(s, 80, false)
	assert.Contains(t, row, "rule-engine")
	assert.Contains(t, row, api.StateFailed)
	assert.Contains(t, row, "exit status 2")
	assert.Contains(t, row, "↻3")
}

func TestServiceRow_SelectionMarker(t *testing.T) {
	s := api.ServiceStatus{Name: "mqtt-bridge", State: api.StateRunning}

	assert.Contains(t, serviceRow(s, 80, true), "▸")
	assert.NotContains(t, serviceRow(s, 80, false), "▸")
}

func TestLogRow_Fields(t *testing.T) {
	e := api.LogEntry{
		Timestamp: time.Date(2026, 3, 1, 15, 4, 5, 0, time.Local),
		Level:     "warning",
		Service:   "ingestd",
		Message:   "retrying connect",
	}

	row := logRow(e, 80, false)
	assert.Contains(t, row, "15:04:05")
	assert.Contains(t, row, "warn")
	assert.Contains(t, row, "ingestd")
	assert.Contains(t, row, "retrying connect")
}

func TestConfigRow_TruncatesLongValues(t *testing.T) {
	f := api.ConfigField{Key: "mqtt.host", Value: strings.Repeat("x", 200)}

	row := configRow(f, 60, false)
	assert.Contains(t, row, "mqtt.host")
	assert.Contains(t, row, "...")
	assert.Less(t, len(row), 400, "row must not carry the full value")
}

func TestChartHint_ReadsOutHighlightedPoint(t *testing.T) {
	m := testModel()
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	m.series = &api.Series{
		Unit: "ev/s",
		Points: []api.Point{
			{Timestamp: at, Value: 12.5},
			{Timestamp: at.Add(time.Minute), Value: 13, Label: "spike"},
		},
	}

	m.cursor[PaneChart] = 2
	hint := m.chartHint(80)
	assert.Contains(t, hint, "09:31:00")
	assert.Contains(t, hint, "13.0")
	assert.Contains(t, hint, "ev/s")
	assert.Contains(t, hint, "spike")

	m.cursor[PaneChart] = 0
	hint = m.chartHint(80)
	assert.Contains(t, hint, "m metric")
}

func TestChartOptions_TracksModel(t *testing.T) {
	m := testModel()
	m.series = &api.Series{Points: []api.Point{{Value: 1}}}
	m.cursor[PaneChart] = 1
	m.windowIdx = 2

	opts := m.chartOptions(80, 12)
	require.Equal(t, 80, opts.Width)
	require.Equal(t, 12, opts.Height)
	assert.Equal(t, 1, opts.Highlight)
	assert.Equal(t, "6h ago", opts.XLabelLeft)
	assert.Equal(t, "now", opts.XLabelRight)
	assert.True(t, opts.YLabels)
}

func TestChartOptions_EmptySeriesSkipsCaption(t *testing.T) {
	m := testModel()

	opts := m.chartOptions(80, 12)
	assert.Empty(t, opts.XLabelLeft)
	assert.Empty(t, opts.XLabelRight)
	assert.Equal(t, "no data", opts.Placeholder)

	m.metric = ""
	opts = m.chartOptions(80, 12)
	assert.Equal(t, "no metric selected", opts.Placeholder)
}
