package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/errors"
)

func TestActionLabel(t *testing.T) {
	tests := []struct {
		name   string
		action string
		want   string
	}{
		{"mqtt-bridge", "start", "Starting mqtt-bridge"},
		{"ingestd", "stop", "Stopping ingestd"},
		{"ruleengine", "restart", "Restarting ruleengine"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			assert.Equal(t, tt.want, actionLabel(tt.name, tt.action))
		})
	}
}

func serviceListServer(t *testing.T, names ...string) *httptest.Server {
	t.Helper()
	services := make([]api.ServiceStatus, len(names))
	for i, n := range names {
		services[i] = api.ServiceStatus{Name: n, State: api.StateRunning}
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/services" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(services)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestResolveServiceName_KnownService(t *testing.T) {
	srv := serviceListServer(t, "mqtt-bridge", "ingestd", "ruleengine")
	cfg := statusTestConfig(srv.URL, srv.URL)

	err := resolveServiceName(cfg, newClient(cfg), "ingestd")
	assert.NoError(t, err)
}

func TestResolveServiceName_TypoSuggestsClosest(t *testing.T) {
	srv := serviceListServer(t, "mqtt-bridge", "ingestd", "ruleengine")
	cfg := statusTestConfig(srv.URL, srv.URL)

	err := resolveServiceName(cfg, newClient(cfg), "ingest")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrInput))

	var herr *errors.Error
	require.ErrorAs(t, err, &herr)
	assert.Contains(t, herr.Message, "'ingest'")
	assert.Contains(t, herr.Suggestion, "ingestd")
}

func TestResolveServiceName_NoCloseMatchPointsAtList(t *testing.T) {
	srv := serviceListServer(t, "mqtt-bridge", "ingestd")
	cfg := statusTestConfig(srv.URL, srv.URL)

	err := resolveServiceName(cfg, newClient(cfg), "zigbee")
	require.Error(t, err)

	var herr *errors.Error
	require.ErrorAs(t, err, &herr)
	assert.Contains(t, herr.Suggestion, "hearth services")
}

func TestResolveServiceName_ListFetchFailureDefersToAction(t *testing.T) {
	// When the list endpoint is down the action call decides; resolution
	// must not add its own failure on top.
	cfg := statusTestConfig("http://127.0.0.1:1", "http://127.0.0.1:1")

	err := resolveServiceName(cfg, newClient(cfg), "whatever")
	assert.NoError(t, err)
}
