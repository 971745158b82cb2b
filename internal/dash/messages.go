package dash

import (
	"time"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
)

// ConfigReloadedMsg swaps in a config reloaded from disk. The CLI's file
// watcher delivers it through Program.Send; every pane loop restarts so
// changed intervals and thresholds take effect immediately.
type ConfigReloadedMsg struct {
	Cfg *config.Config
}

// tickMsg schedules the next fetch for one pane. It carries the generation
// it was armed under; a stale tick neither fetches nor reschedules, which is
// what actually stops a pane's loop after refresh or quit.
type tickMsg struct {
	pane Pane
	gen  uint64
}

// healthMsg carries the hub health summary poll result.
type healthMsg struct {
	gen     uint64
	summary *api.HealthSummary
	err     error
	at      time.Time
}

// servicesMsg carries the service list poll result.
type servicesMsg struct {
	gen      uint64
	services []api.ServiceStatus
	err      error
	at       time.Time
}

// alertsMsg carries the alert list poll result.
type alertsMsg struct {
	gen    uint64
	alerts []api.Alert
	err    error
	at     time.Time
}

// logsMsg carries the log list poll result.
type logsMsg struct {
	gen     uint64
	entries []api.LogEntry
	err     error
	at      time.Time
}

// configMsg carries the hub config document poll result.
type configMsg struct {
	gen uint64
	doc *api.ConfigDocument
	err error
	at  time.Time
}

// seriesMsg carries the chart pane's series poll result.
type seriesMsg struct {
	gen    uint64
	series *api.Series
	err    error
	at     time.Time
}

// metricNamesMsg carries the one-shot metric name discovery result.
type metricNamesMsg struct {
	names []string
	err   error
}

// scrapeMsg carries a /metrics exposition sample for the history buffers.
// Scrape failures only stall sparklines, so err is logged rather than shown.
type scrapeMsg struct {
	gen     uint64
	samples map[string]float64
	err     error
	at      time.Time
}

// ackMsg reports an alert acknowledgement issued from the dashboard.
type ackMsg struct {
	id  string
	err error
}
