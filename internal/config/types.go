package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .hearth.yaml configuration file.
type Config struct {
	Version    int              `yaml:"version" mapstructure:"version"`
	Hub        HubConfig        `yaml:"hub" mapstructure:"hub"`
	Endpoints  EndpointsConfig  `yaml:"endpoints" mapstructure:"endpoints"`
	Intervals  IntervalsConfig  `yaml:"intervals" mapstructure:"intervals"`
	Thresholds ThresholdConfig  `yaml:"thresholds" mapstructure:"thresholds"`
	Dashboard  DashboardConfig  `yaml:"dashboard" mapstructure:"dashboard"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`

	// RequestTimeout bounds every poll request. A response that misses the
	// window counts as a failed poll; the next tick retries.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// HubConfig names the hub instance shown in the dashboard header.
type HubConfig struct {
	Name string `yaml:"name" mapstructure:"name"`
}

// EndpointsConfig holds the base URLs of the hub services. Each dashboard
// pane and CLI command talks to exactly one of these.
type EndpointsConfig struct {
	// Control is the hub control API: health summary, service list,
	// start/stop/restart, JSON time series.
	Control string `yaml:"control" mapstructure:"control"`

	// Alerts is the alert service: alert list and acknowledge.
	Alerts string `yaml:"alerts" mapstructure:"alerts"`

	// Logs is the log aggregator: log queries over HTTP, live tail over
	// WebSocket at /ws/tail.
	Logs string `yaml:"logs" mapstructure:"logs"`

	// Config is the configuration service: document export/import.
	Config string `yaml:"config" mapstructure:"config"`

	// Metrics is the Prometheus text exposition endpoint sampled into
	// chart history.
	Metrics string `yaml:"metrics" mapstructure:"metrics"`
}

// IntervalsConfig sets the polling cadence per pane. Each pane polls
// independently; one slow endpoint never delays another pane's schedule.
type IntervalsConfig struct {
	Health   time.Duration `yaml:"health" mapstructure:"health"`
	Services time.Duration `yaml:"services" mapstructure:"services"`
	Alerts   time.Duration `yaml:"alerts" mapstructure:"alerts"`
	Logs     time.Duration `yaml:"logs" mapstructure:"logs"`
	Metrics  time.Duration `yaml:"metrics" mapstructure:"metrics"`
	Config   time.Duration `yaml:"config" mapstructure:"config"`
}

// ThresholdConfig sets the warning/critical boundaries (percent) used to
// color gauges, queue depth, and card sparklines.
type ThresholdConfig struct {
	Warning  int `yaml:"warning" mapstructure:"warning"`
	Critical int `yaml:"critical" mapstructure:"critical"`
}

// DashboardConfig controls dashboard behavior.
type DashboardConfig struct {
	// HistorySize is how many sampled points each metric keeps for charts.
	HistorySize int `yaml:"history_size" mapstructure:"history_size"`

	// DefaultMetric is the metric shown in the chart pane on startup.
	DefaultMetric string `yaml:"default_metric" mapstructure:"default_metric"`
}

// LogConfig controls the rotating session log the dashboard writes while it
// owns the terminal. An empty File falls back to <config dir>/hearth.log.
type LogConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible defaults for a hub running
// all services on localhost.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Hub: HubConfig{
			Name: "home",
		},
		Endpoints: EndpointsConfig{
			Control: "http://127.0.0.1:8420",
			Alerts:  "http://127.0.0.1:8421",
			Logs:    "http://127.0.0.1:8422",
			Config:  "http://127.0.0.1:8423",
			Metrics: "http://127.0.0.1:8424/metrics",
		},
		Intervals: IntervalsConfig{
			Health:   5 * time.Second,
			Services: 10 * time.Second,
			Alerts:   30 * time.Second,
			Logs:     10 * time.Second,
			Metrics:  10 * time.Second,
			Config:   60 * time.Second,
		},
		Thresholds: ThresholdConfig{
			Warning:  70,
			Critical: 90,
		},
		Dashboard: DashboardConfig{
			HistorySize:   60,
			DefaultMetric: "ingest_rate",
		},
		RequestTimeout: 5 * time.Second,
	}
}
