// Package api is the HTTP client layer for the hub services: the control
// API, the alert service, the log aggregator, the configuration service,
// and the Prometheus metrics exposition.
package api

import "time"

// Alert severities as reported by the alert service.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Service states as reported by the control API.
const (
	StateRunning  = "running"
	StateStarting = "starting"
	StateStopped  = "stopped"
	StateFailed   = "failed"
)

// Point is one sample in a metric series. Timestamps within a series arrive
// monotonically non-decreasing from the hub; charts render them as supplied
// and never sort.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
	Label     string    `json:"label,omitempty"`
}

// Series is the payload for GET /api/v1/series/{metric}.
type Series struct {
	Metric string  `json:"metric"`
	Unit   string  `json:"unit,omitempty"`
	Points []Point `json:"points"`
}

// HealthSummary is the payload for GET /api/v1/health on the control API.
type HealthSummary struct {
	Status        string  `json:"status"` // "ok", "degraded", "down"
	Version       string  `json:"version"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	IngestRate    float64 `json:"ingest_rate"` // events per second
	QueueDepth    int     `json:"queue_depth"`
	QueueCapacity int     `json:"queue_capacity"`
	DevicesOnline int     `json:"devices_online"`
	DevicesTotal  int     `json:"devices_total"`
}

// ServiceStatus is one row in GET /api/v1/services.
type ServiceStatus struct {
	Name          string `json:"name"`
	State         string `json:"state"`
	PID           int    `json:"pid,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Restarts      int    `json:"restarts"`
	Message       string `json:"message,omitempty"`
}

// ActionResult is the payload for POST /api/v1/services/{name}/{action}.
type ActionResult struct {
	Service string `json:"service"`
	Action  string `json:"action"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// Alert is one row from the alert service.
type Alert struct {
	ID        string    `json:"id"`
	Severity  string    `json:"severity"`
	Service   string    `json:"service"`
	Source    string    `json:"source,omitempty"` // originating device or rule
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Acked     bool      `json:"acked"`
}

// LogEntry is one row from the log aggregator, over HTTP or the tail stream.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "warn", "error"
	Service   string    `json:"service"`
	Message   string    `json:"message"`
}

// ConfigField is one key in the hub configuration document. Sensitive fields
// are masked everywhere in the UI unless explicitly revealed.
type ConfigField struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Sensitive bool   `json:"sensitive,omitempty"`
}

// ConfigDocument is the payload for GET and PUT /api/v1/config on the
// configuration service, and the on-disk format of 'hearth config export'.
type ConfigDocument struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exported_at,omitempty"`
	Fields     []ConfigField `json:"fields"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
