package dash

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/chart"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/logger"
	"github.com/hearthview/hearth/internal/query"
)

// chartWindows are the series windows 'w' cycles through.
var chartWindows = []string{"15m", "1h", "6h", "24h"}

// chartModes are the renderers 'c' cycles through. Gauge only makes sense
// for bounded metrics but cycling through it is harmless.
var chartModes = []chart.Mode{chart.ModeLine, chart.ModeArea, chart.ModeBar, chart.ModeGauge}

// fallbackInterval is used when a pane's configured interval is missing
// or nonsense. Polling never silently stops.
const fallbackInterval = 10 * time.Second

// Model is the Bubble Tea model for the hub dashboard.
type Model struct {
	client *api.Client
	cfg    *config.Config
	log    logger.Logger

	width  int
	height int

	view     ViewMode
	focus    Pane
	showHelp bool
	paused   bool
	quitting bool

	// panes holds per-pane fetch state. The generation stored here is the
	// only one the pane's loop is allowed to act on.
	panes [paneCount]paneState

	health    *api.HealthSummary
	services  []api.ServiceStatus
	alerts    []api.Alert
	logs      []api.LogEntry
	configDoc *api.ConfigDocument
	series    *api.Series

	// Local filters. Applied on render only; the fetched slices above stay
	// exactly as the services returned them.
	severityFilter string
	levelFilter    string
	unackedOnly    bool

	revealConfig bool

	// cursor is the selected row per pane. For the chart pane it is the
	// 1-based highlighted point, 0 meaning none.
	cursor [paneCount]int

	metric      string
	metricNames []string
	chartMode   chart.Mode
	windowIdx   int

	history    *History
	lastUpdate time.Time
	version    string

	detailViewport viewport.Model
	viewportReady  bool
}

// New creates a dashboard model polling the given hub.
func New(client *api.Client, cfg *config.Config, log logger.Logger) Model {
	if log == nil {
		log = logger.Noop()
	}
	size := cfg.Dashboard.HistorySize
	if size <= 0 {
		size = DefaultHistorySize
	}
	return Model{
		client:  client,
		cfg:     cfg,
		log:     log,
		metric:  cfg.Dashboard.DefaultMetric,
		history: NewHistory(size),
	}
}

// WithVersion sets the release string shown in the header.
func (m Model) WithVersion(v string) Model {
	m.version = v
	return m
}

// Init starts every pane's fetch/tick loop and resolves the metric list.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchMetricNamesCmd()}
	for p := Pane(0); p < paneCount; p++ {
		cmds = append(cmds, m.fetchCmd(p), m.tickCmd(p))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		// Torn down: drop everything, schedule nothing.
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()
		m.ensureFocusVisible()
		if m.view == ViewDetail {
			m.updateDetailContent()
		}
		return m, nil

	case tickMsg:
		if msg.gen != m.panes[msg.pane].gen {
			// Superseded loop; let it die here.
			return m, nil
		}
		if m.paused {
			// Keep the cadence so resume picks up naturally, skip the fetch.
			return m, m.tickCmd(msg.pane)
		}
		return m, tea.Batch(m.fetchCmd(msg.pane), m.tickCmd(msg.pane))

	case healthMsg:
		if m.applyResult(PaneHealth, msg.gen, msg.at, msg.err) {
			m.health = msg.summary
			if msg.summary != nil {
				// Feed the local history so the health card can sparkline
				// ingest rate and queue depth between metric scrapes.
				m.history.Sample(map[string]float64{
					localIngestRate: msg.summary.IngestRate,
					localQueueDepth: float64(msg.summary.QueueDepth),
				}, msg.at)
			}
		}
		return m, nil

	case servicesMsg:
		if m.applyResult(PaneServices, msg.gen, msg.at, msg.err) {
			m.services = msg.services
			m.clampCursor(PaneServices, len(m.services))
		}
		return m, nil

	case alertsMsg:
		if m.applyResult(PaneAlerts, msg.gen, msg.at, msg.err) {
			m.alerts = msg.alerts
			m.clampCursor(PaneAlerts, len(m.visibleAlerts()))
		}
		return m, nil

	case logsMsg:
		if m.applyResult(PaneLogs, msg.gen, msg.at, msg.err) {
			m.logs = msg.entries
			m.clampCursor(PaneLogs, len(m.visibleLogs()))
		}
		return m, nil

	case configMsg:
		if m.applyResult(PaneConfig, msg.gen, msg.at, msg.err) {
			m.configDoc = msg.doc
			n := 0
			if msg.doc != nil {
				n = len(msg.doc.Fields)
			}
			m.clampCursor(PaneConfig, n)
		}
		return m, nil

	case seriesMsg:
		if m.applyResult(PaneChart, msg.gen, msg.at, msg.err) {
			m.series = msg.series
			n := 0
			if msg.series != nil {
				n = len(msg.series.Points)
			}
			if m.cursor[PaneChart] > n {
				m.cursor[PaneChart] = n
			}
		}
		return m, nil

	case scrapeMsg:
		// Scrapes ride the chart pane's generation but never drive its
		// error banner; a broken exporter only costs the local history.
		if msg.gen != m.panes[PaneChart].gen {
			return m, nil
		}
		if msg.err != nil {
			m.log.Debug("metrics scrape failed: %v", msg.err)
			return m, nil
		}
		m.history.Sample(msg.samples, msg.at)
		return m, nil

	case metricNamesMsg:
		if msg.err != nil {
			m.log.Debug("metric list unavailable: %v", msg.err)
			return m, nil
		}
		m.metricNames = msg.names
		if m.metric == "" && len(msg.names) > 0 {
			return m, m.setMetric(msg.names[0])
		}
		return m, nil

	case ackMsg:
		if msg.err != nil {
			st := &m.panes[PaneAlerts]
			st.state = FetchFailed
			st.err = errors.Message(msg.err)
			return m, nil
		}
		// Refetch right away so the acked flag shows without waiting a tick.
		return m, m.fetchCmd(PaneAlerts)

	case ConfigReloadedMsg:
		if msg.Cfg == nil {
			return m, nil
		}
		m.cfg = msg.Cfg
		return m, m.refreshAll()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.view == ViewDetail {
		return m.renderDetail()
	}
	return m.renderDashboard()
}

// applyResult folds a fetch outcome into the pane's state. It reports
// whether the payload should be kept: stale generations and errors both
// return false, but only errors raise the pane's error banner.
func (m *Model) applyResult(p Pane, gen uint64, at time.Time, err error) bool {
	st := &m.panes[p]
	if gen != st.gen {
		return false
	}
	st.fetches++
	if err != nil {
		st.state = FetchFailed
		st.err = errors.Message(err)
		m.log.Debug("%s fetch failed: %v", p, err)
		return false
	}
	st.state = FetchOK
	st.err = ""
	st.lastOK = at
	m.lastUpdate = at
	return true
}

// interval returns the polling cadence for a pane.
func (m Model) interval(p Pane) time.Duration {
	iv := m.cfg.Intervals
	var d time.Duration
	switch p {
	case PaneHealth:
		d = iv.Health
	case PaneServices:
		d = iv.Services
	case PaneChart:
		d = iv.Metrics
	case PaneAlerts:
		d = iv.Alerts
	case PaneLogs:
		d = iv.Logs
	case PaneConfig:
		d = iv.Config
	}
	if d <= 0 {
		d = fallbackInterval
	}
	return d
}

func (m Model) requestTimeout() time.Duration {
	if m.cfg.RequestTimeout > 0 {
		return m.cfg.RequestTimeout
	}
	return 5 * time.Second
}

// tickCmd schedules the next tick for a pane, stamped with the pane's
// current generation.
func (m Model) tickCmd(p Pane) tea.Cmd {
	gen := m.panes[p].gen
	return tea.Tick(m.interval(p), func(time.Time) tea.Msg {
		return tickMsg{pane: p, gen: gen}
	})
}

// fetchCmd returns the fetch command for a pane. The chart pane fetches
// the series and scrapes the exporter in one go.
func (m Model) fetchCmd(p Pane) tea.Cmd {
	switch p {
	case PaneHealth:
		return m.fetchHealthCmd()
	case PaneServices:
		return m.fetchServicesCmd()
	case PaneChart:
		return tea.Batch(m.fetchSeriesCmd(), m.scrapeCmd())
	case PaneAlerts:
		return m.fetchAlertsCmd()
	case PaneLogs:
		return m.fetchLogsCmd()
	case PaneConfig:
		return m.fetchConfigCmd()
	default:
		return nil
	}
}

func (m Model) fetchHealthCmd() tea.Cmd {
	gen := m.panes[PaneHealth].gen
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		summary, err := client.Health(ctx)
		return healthMsg{gen: gen, summary: summary, err: err, at: time.Now()}
	}
}

func (m Model) fetchServicesCmd() tea.Cmd {
	gen := m.panes[PaneServices].gen
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		services, err := client.Services(ctx)
		return servicesMsg{gen: gen, services: services, err: err, at: time.Now()}
	}
}

func (m Model) fetchAlertsCmd() tea.Cmd {
	gen := m.panes[PaneAlerts].gen
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		alerts, err := client.Alerts(ctx, listLimit)
		return alertsMsg{gen: gen, alerts: alerts, err: err, at: time.Now()}
	}
}

func (m Model) fetchLogsCmd() tea.Cmd {
	gen := m.panes[PaneLogs].gen
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		entries, err := client.Logs(ctx, listLimit)
		return logsMsg{gen: gen, entries: entries, err: err, at: time.Now()}
	}
}

func (m Model) fetchConfigCmd() tea.Cmd {
	gen := m.panes[PaneConfig].gen
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		doc, err := client.ConfigDocument(ctx)
		return configMsg{gen: gen, doc: doc, err: err, at: time.Now()}
	}
}

func (m Model) fetchSeriesCmd() tea.Cmd {
	gen := m.panes[PaneChart].gen
	client, timeout := m.client, m.requestTimeout()
	metric, window := m.metric, chartWindows[m.windowIdx]
	if metric == "" {
		// Nothing selected yet; report an empty fetch so the pane settles
		// on its placeholder instead of looking stuck.
		return func() tea.Msg {
			return seriesMsg{gen: gen, at: time.Now()}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		series, err := client.Series(ctx, metric, window)
		return seriesMsg{gen: gen, series: series, err: err, at: time.Now()}
	}
}

func (m Model) scrapeCmd() tea.Cmd {
	gen := m.panes[PaneChart].gen
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		samples, err := client.ScrapeMetrics(ctx)
		return scrapeMsg{gen: gen, samples: samples, err: err, at: time.Now()}
	}
}

func (m Model) fetchMetricNamesCmd() tea.Cmd {
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		names, err := client.MetricNames(ctx)
		return metricNamesMsg{names: names, err: err}
	}
}

func (m Model) ackCmd(id string) tea.Cmd {
	client, timeout := m.client, m.requestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return ackMsg{id: id, err: client.AckAlert(ctx, id)}
	}
}

// refreshAll bumps every pane's generation and restarts its loop. In-flight
// fetches and already-armed ticks all carry the old generation, so whatever
// they deliver is discarded on arrival.
func (m *Model) refreshAll() tea.Cmd {
	cmds := make([]tea.Cmd, 0, paneCount*2)
	for p := Pane(0); p < paneCount; p++ {
		m.panes[p].gen++
		cmds = append(cmds, m.fetchCmd(p), m.tickCmd(p))
	}
	return tea.Batch(cmds...)
}

// setMetric switches the chart to a new metric. The pane's generation is
// bumped so a late response for the previous metric cannot land on the
// new one's axes.
func (m *Model) setMetric(name string) tea.Cmd {
	m.metric = name
	m.series = nil
	m.cursor[PaneChart] = 0
	st := &m.panes[PaneChart]
	st.gen++
	st.state = FetchLoading
	return tea.Batch(m.fetchCmd(PaneChart), m.tickCmd(PaneChart))
}

// setWindow switches the chart's time window, with the same generation
// bump as setMetric.
func (m *Model) setWindow(idx int) tea.Cmd {
	m.windowIdx = idx
	m.series = nil
	m.cursor[PaneChart] = 0
	st := &m.panes[PaneChart]
	st.gen++
	st.state = FetchLoading
	return tea.Batch(m.fetchCmd(PaneChart), m.tickCmd(PaneChart))
}

// visibleAlerts applies the local severity filter. Relative order is the
// service's order; filtering never reorders.
func (m Model) visibleAlerts() []api.Alert {
	f := query.AlertFilter{Severity: m.severityFilter, UnackedOnly: m.unackedOnly}
	return f.Apply(m.alerts)
}

// visibleLogs applies the local level filter.
func (m Model) visibleLogs() []api.LogEntry {
	f := query.LogFilter{Level: m.levelFilter}
	return f.Apply(m.logs)
}

func (m *Model) clampCursor(p Pane, n int) {
	if m.cursor[p] >= n {
		m.cursor[p] = n - 1
	}
	if m.cursor[p] < 0 {
		m.cursor[p] = 0
	}
}

// listLimit bounds the alert and log fetches; the dashboard only ever
// shows the newest screenful anyway.
const listLimit = 200

// Names the health poll publishes into the local metric history.
const (
	localIngestRate = "ingest_rate"
	localQueueDepth = "queue_depth"
)
