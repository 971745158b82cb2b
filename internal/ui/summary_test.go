package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hearthview/hearth/internal/api"
)

func TestSummarizeAlerts(t *testing.T) {
	alerts := []api.Alert{
		{Severity: api.SeverityCritical},
		{Severity: api.SeverityCritical, Acked: true},
		{Severity: api.SeverityWarning},
		{Severity: api.SeverityInfo, Acked: true},
	}

	s := SummarizeAlerts(alerts)

	assert.Equal(t, 2, s.Critical)
	assert.Equal(t, 1, s.Warning)
	assert.Equal(t, 1, s.Info)
	assert.Equal(t, 2, s.Unacked)
}

func TestRenderAlertSummary_AllClear(t *testing.T) {
	out := RenderAlertSummary(AlertSummary{})
	assert.Contains(t, out, "No active alerts")
}

func TestRenderAlertSummary_Counts(t *testing.T) {
	out := RenderAlertSummary(AlertSummary{Critical: 2, Warning: 1, Unacked: 3})

	assert.Contains(t, out, "3 alerts")
	assert.Contains(t, out, "2 critical")
	assert.Contains(t, out, "1 warning")
	assert.Contains(t, out, "3 unacked")
	assert.NotContains(t, out, "info", "zero buckets are omitted")
}

func TestRenderAlertSummary_Singular(t *testing.T) {
	out := RenderAlertSummary(AlertSummary{Info: 1})
	assert.Contains(t, out, "1 alert:")
}

func TestRenderHeader(t *testing.T) {
	out := RenderHeader(HeaderInfo{Version: "v0.3.0", Hub: "home", Status: "ok"})

	assert.Contains(t, out, "hearth")
	assert.Contains(t, out, "v0.3.0")
	assert.Contains(t, out, "hub home")
	assert.Contains(t, out, "ok")
}

func TestRenderHeader_OmitsEmptyParts(t *testing.T) {
	out := RenderHeader(HeaderInfo{Version: "dev"})

	assert.Contains(t, out, "dev")
	assert.NotContains(t, out, "hub ")
}
