package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/query"
)

func TestRenderServiceTable(t *testing.T) {
	services := []api.ServiceStatus{
		{Name: "mqtt-bridge", State: api.StateRunning, UptimeSeconds: 7500, Restarts: 0},
		{Name: "rule-engine", State: api.StateFailed, Message: "exit status 2", Restarts: 3},
	}

	out := RenderServiceTable(services)

	assert.Contains(t, out, "SERVICE")
	assert.Contains(t, out, "mqtt-bridge")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "2h5m")
	assert.Contains(t, out, "rule-engine")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "exit status 2")
	assert.Contains(t, out, "3")
}

func TestRenderServiceTable_Empty(t *testing.T) {
	assert.Equal(t, "No services reported", RenderServiceTable(nil))
}

func TestRenderAlertTable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	alerts := []api.Alert{
		{ID: "a1", Severity: api.SeverityCritical, Service: "ingestd",
			Message: "queue overflow", CreatedAt: now.Add(-3 * time.Minute)},
		{ID: "a2", Severity: api.SeverityInfo, Service: "zigbee-gw",
			Message: "device joined", CreatedAt: now.Add(-2 * time.Hour), Acked: true},
	}

	out := RenderAlertTable(alerts, now)

	assert.Contains(t, out, "critical")
	assert.Contains(t, out, "3m")
	assert.Contains(t, out, "queue overflow")
	assert.Contains(t, out, "device joined")
	assert.Contains(t, out, SymbolSuccess, "acked alerts carry a checkmark")

	// Order is the service's order, untouched.
	assert.Less(t, strings.Index(out, "queue overflow"), strings.Index(out, "device joined"))
}

func TestRenderAlertTable_Empty(t *testing.T) {
	assert.Equal(t, "No alerts", RenderAlertTable(nil, time.Now()))
}

func TestRenderLogLine(t *testing.T) {
	e := api.LogEntry{
		Timestamp: time.Date(2025, 6, 1, 9, 31, 0, 0, time.UTC),
		Level:     "warn",
		Service:   "ingestd",
		Message:   "retrying connect",
	}

	out := RenderLogLine(e)

	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "ingestd")
	assert.Contains(t, out, "retrying connect")
}

func TestRenderQueryTable(t *testing.T) {
	queries := []query.SavedQuery{
		{Name: "critical-ingest", Kind: query.KindAlerts, Severity: api.SeverityCritical, Service: "ingestd"},
		{Name: "everything", Kind: query.KindLogs},
	}

	out := RenderQueryTable(queries)

	assert.Contains(t, out, "critical-ingest")
	assert.Contains(t, out, "severity=critical, service=ingestd")
	assert.Contains(t, out, "everything")
	assert.Contains(t, out, "(match all)")
}

func TestRenderQueryTable_Empty(t *testing.T) {
	assert.Equal(t, "No saved queries", RenderQueryTable(nil))
}

func TestRenderConfigTable(t *testing.T) {
	fields := []api.ConfigField{
		{Key: "mqtt.host", Value: "10.0.0.2"},
		{Key: "mqtt.password", Value: "••••••", Sensitive: true},
	}

	out := RenderConfigTable(fields)

	assert.Contains(t, out, "mqtt.host")
	assert.Contains(t, out, "10.0.0.2")
	assert.Contains(t, out, "mqtt.password")
	assert.Contains(t, out, "••••••")
}

func TestRenderDoctorTable(t *testing.T) {
	rows := []DoctorCheckRow{
		{Status: "pass", Category: "CONFIG", Message: "config file found", Suggestion: "not shown"},
		{Status: "fail", Category: "ENDPOINTS", Message: "control API unreachable", Suggestion: "Check the hub is running"},
		{Status: "warn", Category: "ENDPOINTS", Message: "metrics endpoint slow"},
	}

	out := RenderDoctorTable(rows)

	assert.Contains(t, out, "CONFIG")
	assert.Contains(t, out, "ENDPOINTS")
	assert.Contains(t, out, "config file found")
	assert.Contains(t, out, "control API unreachable")
	assert.Contains(t, out, "Check the hub is running")
	assert.NotContains(t, out, "not shown", "suggestions are omitted for passing checks")

	// Categories keep first-seen order.
	assert.Less(t, strings.Index(out, "CONFIG"), strings.Index(out, "ENDPOINTS"))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc  ", padRight("abc", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 5), "over-wide strings pass through")
	assert.Equal(t, 5, len([]rune(padRight("héllo", 5))))
}
