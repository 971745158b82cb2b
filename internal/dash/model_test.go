package dash

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/logger"
)

func init() {
	// Plain output so tests can assert on rendered text.
	lipgloss.SetColorProfile(termenv.Ascii)
}

func testModel() Model {
	return New(api.New(api.Config{}), config.DefaultConfig(), logger.Noop())
}

// apply runs one Update and hands back the concrete model.
func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update must return a dash.Model")
	return out, cmd
}

func sized(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	return m
}

func key(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestNew_Defaults(t *testing.T) {
	m := testModel()

	assert.Equal(t, "ingest_rate", m.metric)
	assert.NotNil(t, m.history)
	assert.Equal(t, PaneHealth, m.focus)
	assert.Equal(t, ViewDash, m.view)
	for p := Pane(0); p < paneCount; p++ {
		assert.Equal(t, FetchIdle, m.panes[p].state, p.String())
		assert.Equal(t, uint64(0), m.panes[p].gen, p.String())
	}
}

func TestInit_SchedulesWork(t *testing.T) {
	m := testModel()
	assert.NotNil(t, m.Init())
}

func TestUpdate_FetchErrorRaisesPaneFlag(t *testing.T) {
	m := testModel()

	fetchErr := errors.New(errors.ErrHTTP, "Can't reach the control API", "Is the hub up?")
	m, cmd := apply(t, m, healthMsg{gen: 0, err: fetchErr, at: time.Now()})

	assert.Nil(t, cmd)
	assert.Equal(t, FetchFailed, m.panes[PaneHealth].state)
	assert.Equal(t, "Can't reach the control API", m.panes[PaneHealth].err)
	assert.Nil(t, m.health)

	// Only the failing pane is flagged.
	assert.NotEqual(t, FetchFailed, m.panes[PaneAlerts].state)
}

func TestUpdate_NextSuccessClearsError(t *testing.T) {
	m := testModel()

	m, _ = apply(t, m, healthMsg{gen: 0, err: errors.New(errors.ErrHTTP, "boom", ""), at: time.Now()})
	require.Equal(t, FetchFailed, m.panes[PaneHealth].state)

	summary := &api.HealthSummary{Status: "ok", Version: "1.4.0"}
	m, _ = apply(t, m, healthMsg{gen: 0, summary: summary, at: time.Now()})

	assert.Equal(t, FetchOK, m.panes[PaneHealth].state)
	assert.Empty(t, m.panes[PaneHealth].err)
	assert.Equal(t, summary, m.health)
}

func TestUpdate_StaleResponseDiscarded(t *testing.T) {
	m := testModel()
	m.panes[PaneHealth].gen = 3

	stale := &api.HealthSummary{Status: "ok"}
	m, _ = apply(t, m, healthMsg{gen: 2, summary: stale, at: time.Now()})

	assert.Nil(t, m.health, "a superseded response must not land")
	assert.Equal(t, FetchIdle, m.panes[PaneHealth].state)
	assert.Equal(t, 0, m.panes[PaneHealth].fetches)
}

func TestUpdate_StaleErrorDoesNotRaiseFlag(t *testing.T) {
	m := testModel()
	m.panes[PaneAlerts].gen = 5

	m, _ = apply(t, m, alertsMsg{gen: 4, err: errors.New(errors.ErrHTTP, "old failure", ""), at: time.Now()})

	assert.Equal(t, FetchIdle, m.panes[PaneAlerts].state)
	assert.Empty(t, m.panes[PaneAlerts].err)
}

func TestUpdate_CurrentTickReschedules(t *testing.T) {
	m := testModel()

	_, cmd := apply(t, m, tickMsg{pane: PaneHealth, gen: 0})
	assert.NotNil(t, cmd, "a live tick fetches and re-arms")
}

func TestUpdate_StaleTickDies(t *testing.T) {
	m := testModel()
	m.panes[PaneHealth].gen = 2

	_, cmd := apply(t, m, tickMsg{pane: PaneHealth, gen: 1})
	assert.Nil(t, cmd, "a stale tick must not fetch or re-arm")
}

func TestUpdate_QuitStopsScheduling(t *testing.T) {
	m := testModel()

	m, cmd := apply(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, m.quitting)

	// Anything still in flight lands on a dead model and schedules nothing.
	m, cmd = apply(t, m, tickMsg{pane: PaneHealth, gen: 0})
	assert.Nil(t, cmd)
	m, cmd = apply(t, m, healthMsg{gen: 0, summary: &api.HealthSummary{Status: "ok"}, at: time.Now()})
	assert.Nil(t, cmd)
	assert.Nil(t, m.health)
}

func TestRefreshAll_InvalidatesInFlightFetches(t *testing.T) {
	m := testModel()

	cmd := m.refreshAll()
	assert.NotNil(t, cmd)
	for p := Pane(0); p < paneCount; p++ {
		assert.Equal(t, uint64(1), m.panes[p].gen, p.String())
	}

	// A response issued before the refresh arrives with the old generation.
	m, _ = apply(t, m, servicesMsg{gen: 0, services: []api.ServiceStatus{{Name: "old"}}, at: time.Now()})
	assert.Empty(t, m.services)
}

func TestUpdate_ConfigReloadSwapsConfigAndRestartsLoops(t *testing.T) {
	m := testModel()

	next := config.DefaultConfig()
	next.Intervals.Logs = 2 * time.Second
	m, cmd := apply(t, m, ConfigReloadedMsg{Cfg: next})

	assert.NotNil(t, cmd, "reload must rearm every pane loop")
	assert.Equal(t, 2*time.Second, m.interval(PaneLogs))
	for p := Pane(0); p < paneCount; p++ {
		assert.Equal(t, uint64(1), m.panes[p].gen, p.String())
	}

	// A fetch that was in flight across the reload is stale now.
	m, _ = apply(t, m, logsMsg{gen: 0, entries: []api.LogEntry{{Message: "old"}}, at: time.Now()})
	assert.Empty(t, m.logs)
}

func TestUpdate_NilConfigReloadIgnored(t *testing.T) {
	m := testModel()

	m, cmd := apply(t, m, ConfigReloadedMsg{})

	assert.Nil(t, cmd)
	assert.NotNil(t, m.cfg)
}

func TestUpdate_PausedTickKeepsCadence(t *testing.T) {
	m := testModel()
	m.paused = true

	m, cmd := apply(t, m, tickMsg{pane: PaneLogs, gen: 0})
	assert.NotNil(t, cmd, "paused panes keep ticking so resume is seamless")
	assert.Equal(t, 0, m.panes[PaneLogs].fetches)
}

func TestUpdate_ResultsStampLastUpdate(t *testing.T) {
	m := testModel()
	at := time.Now()

	m, _ = apply(t, m, logsMsg{gen: 0, entries: []api.LogEntry{{Message: "hi"}}, at: at})

	assert.Equal(t, at, m.lastUpdate)
	assert.Equal(t, at, m.panes[PaneLogs].lastOK)
}

func TestUpdate_ScrapeFeedsHistory(t *testing.T) {
	m := testModel()

	m, cmd := apply(t, m, scrapeMsg{
		gen:     0,
		samples: map[string]float64{"hearth_queue_depth": 12},
		at:      time.Now(),
	})

	assert.Nil(t, cmd)
	v, ok := m.history.Latest("hearth_queue_depth")
	require.True(t, ok)
	assert.Equal(t, 12.0, v)
}

func TestUpdate_StaleScrapeIgnored(t *testing.T) {
	m := testModel()
	m.panes[PaneChart].gen = 2

	m, _ = apply(t, m, scrapeMsg{gen: 1, samples: map[string]float64{"x": 1}, at: time.Now()})

	_, ok := m.history.Latest("x")
	assert.False(t, ok)
}

func TestUpdate_ScrapeErrorStaysOffTheChartPane(t *testing.T) {
	m := testModel()

	m, _ = apply(t, m, scrapeMsg{gen: 0, err: errors.New(errors.ErrHTTP, "exporter down", ""), at: time.Now()})

	assert.NotEqual(t, FetchFailed, m.panes[PaneChart].state)
	assert.Empty(t, m.panes[PaneChart].err)
}

func TestUpdate_HealthSampleFeedsSparklines(t *testing.T) {
	m := testModel()

	summary := &api.HealthSummary{Status: "ok", IngestRate: 42.5, QueueDepth: 7}
	m, _ = apply(t, m, healthMsg{gen: 0, summary: summary, at: time.Now()})

	v, ok := m.history.Latest(localIngestRate)
	require.True(t, ok)
	assert.Equal(t, 42.5, v)
	v, ok = m.history.Latest(localQueueDepth)
	require.True(t, ok)
	assert.Equal(t, 7.0, v)
}

func TestUpdate_MetricNamesAdoptFirstWhenUnset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Dashboard.DefaultMetric = ""
	m := New(api.New(api.Config{}), cfg, logger.Noop())

	m, cmd := apply(t, m, metricNamesMsg{names: []string{"ingest_rate", "queue_depth"}})

	assert.Equal(t, "ingest_rate", m.metric)
	assert.NotNil(t, cmd, "adopting a metric fetches its series")
}

func TestUpdate_MetricNamesKeepConfiguredDefault(t *testing.T) {
	m := testModel()

	m, cmd := apply(t, m, metricNamesMsg{names: []string{"other_metric"}})

	assert.Equal(t, "ingest_rate", m.metric)
	assert.Nil(t, cmd)
	assert.Equal(t, []string{"other_metric"}, m.metricNames)
}

func TestSetMetric_BumpsGeneration(t *testing.T) {
	m := testModel()
	m.series = &api.Series{Metric: "ingest_rate", Points: []api.Point{{Value: 1}}}
	m.cursor[PaneChart] = 1
	before := m.panes[PaneChart].gen

	cmd := m.setMetric("queue_depth")

	assert.NotNil(t, cmd)
	assert.Equal(t, before+1, m.panes[PaneChart].gen)
	assert.Equal(t, "queue_depth", m.metric)
	assert.Nil(t, m.series)
	assert.Zero(t, m.cursor[PaneChart])
	assert.Equal(t, FetchLoading, m.panes[PaneChart].state)
}

func TestUpdate_SeriesResultLandsOnCurrentGeneration(t *testing.T) {
	m := testModel()
	_ = m.setMetric("queue_depth")
	gen := m.panes[PaneChart].gen

	series := &api.Series{Metric: "queue_depth", Points: []api.Point{{Value: 3}, {Value: 4}}}
	m, _ = apply(t, m, seriesMsg{gen: gen, series: series, at: time.Now()})

	assert.Equal(t, series, m.series)
	assert.Equal(t, FetchOK, m.panes[PaneChart].state)

	// The response for the metric we switched away from is stale.
	old := &api.Series{Metric: "ingest_rate", Points: []api.Point{{Value: 9}}}
	m, _ = apply(t, m, seriesMsg{gen: gen - 1, series: old, at: time.Now()})
	assert.Equal(t, series, m.series)
}

func TestUpdate_AckFailureShowsOnAlertsPane(t *testing.T) {
	m := testModel()

	m, cmd := apply(t, m, ackMsg{id: "a1", err: errors.New(errors.ErrHTTP, "ack refused", "")})

	assert.Nil(t, cmd)
	assert.Equal(t, FetchFailed, m.panes[PaneAlerts].state)
	assert.Equal(t, "ack refused", m.panes[PaneAlerts].err)
}

func TestUpdate_AckSuccessRefetchesAlerts(t *testing.T) {
	m := testModel()

	_, cmd := apply(t, m, ackMsg{id: "a1"})
	assert.NotNil(t, cmd, "a successful ack refetches so the flag shows")
}

func TestVisibleAlerts_FilterPreservesOrder(t *testing.T) {
	m := testModel()
	m.alerts = []api.Alert{
		{ID: "1", Severity: api.SeverityCritical, Message: "first"},
		{ID: "2", Severity: api.SeverityInfo, Message: "second"},
		{ID: "3", Severity: api.SeverityCritical, Message: "third"},
		{ID: "4", Severity: api.SeverityWarning, Message: "fourth"},
	}

	m.severityFilter = api.SeverityCritical
	got := m.visibleAlerts()

	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	// No filter hands back the fetched slice untouched.
	m.severityFilter = ""
	assert.Len(t, m.visibleAlerts(), 4)
}

func TestVisibleLogs_FilterPreservesOrder(t *testing.T) {
	m := testModel()
	m.logs = []api.LogEntry{
		{Level: "info", Message: "a"},
		{Level: "error", Message: "b"},
		{Level: "info", Message: "c"},
	}

	m.levelFilter = "info"
	got := m.visibleLogs()

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Message)
	assert.Equal(t, "c", got[1].Message)
}

func TestUpdate_AlertsClampCursorAfterShrink(t *testing.T) {
	m := testModel()
	m.alerts = []api.Alert{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	m.cursor[PaneAlerts] = 2

	m, _ = apply(t, m, alertsMsg{gen: 0, alerts: []api.Alert{{ID: "1"}}, at: time.Now()})

	assert.Equal(t, 0, m.cursor[PaneAlerts])
}

func TestInterval_FallsBackWhenUnset(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Intervals.Logs = 0
	m := New(api.New(api.Config{}), cfg, logger.Noop())

	assert.Equal(t, fallbackInterval, m.interval(PaneLogs))
	assert.Equal(t, cfg.Intervals.Health, m.interval(PaneHealth))
}
