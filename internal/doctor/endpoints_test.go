package doctor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
)

// startHubStub serves minimal happy-path responses for every endpoint
// doctor probes, all on one server.
func startHubStub(t *testing.T) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.4.0"}`))
	})
	mux.HandleFunc("/api/v1/alerts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/v1/logs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/v1/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"version":1,"fields":[{"key":"mqtt.host","value":"10.0.0.2"}]}`))
	})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hearth_queue_depth 12\n"))
	})
	mux.HandleFunc("/ws/tail", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Wait for the client's close before tearing down.
		conn.ReadMessage()
		conn.Close()
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func stubClient(srv *httptest.Server) (*api.Client, config.EndpointsConfig) {
	eps := config.EndpointsConfig{
		Control: srv.URL,
		Alerts:  srv.URL,
		Logs:    srv.URL,
		Config:  srv.URL,
		Metrics: srv.URL + "/metrics",
	}
	client := api.New(api.Config{
		ControlURL: eps.Control,
		AlertsURL:  eps.Alerts,
		LogsURL:    eps.Logs,
		ConfigURL:  eps.Config,
		MetricsURL: eps.Metrics,
		Timeout:    2 * time.Second,
	})
	return client, eps
}

func TestEndpointCheck_PassesWhenProbeSucceeds(t *testing.T) {
	check := &EndpointCheck{
		Service: "control",
		URL:     "http://hub:8420",
		probe:   func(ctx context.Context) error { return nil },
	}

	result := check.Run()

	if result.Status != StatusPass {
		t.Fatalf("expected pass, got %v: %s", result.Status, result.Message)
	}
	if !strings.Contains(result.Message, "control reachable") {
		t.Errorf("message should name the service: %q", result.Message)
	}
	if result.Name != "endpoint_control" {
		t.Errorf("unexpected name %q", result.Name)
	}
}

func TestEndpointCheck_FailsWhenProbeErrors(t *testing.T) {
	check := &EndpointCheck{
		Service: "alerts",
		URL:     "http://hub:8421",
		probe: func(ctx context.Context) error {
			return errors.New(errors.ErrHTTP, "Cannot reach the alert service", "")
		},
	}

	result := check.Run()

	if result.Status != StatusFail {
		t.Fatalf("expected fail, got %v", result.Status)
	}
	if !strings.Contains(result.Message, "http://hub:8421") {
		t.Errorf("message should include the URL: %q", result.Message)
	}
	if !strings.Contains(result.Message, "Cannot reach the alert service") {
		t.Errorf("message should include the probe error: %q", result.Message)
	}
	if result.Suggestion == "" {
		t.Error("failed probe should carry a suggestion")
	}
}

func TestEndpointCheck_WarnsWhenSlow(t *testing.T) {
	if testing.Short() {
		t.Skip("sleeps past the slow threshold")
	}

	check := &EndpointCheck{
		Service: "logs",
		URL:     "http://hub:8422",
		probe: func(ctx context.Context) error {
			time.Sleep(slowThreshold + 50*time.Millisecond)
			return nil
		},
	}

	result := check.Run()

	if result.Status != StatusWarn {
		t.Fatalf("expected warn, got %v: %s", result.Status, result.Message)
	}
	if !strings.Contains(result.Message, "slow") {
		t.Errorf("message should mention slowness: %q", result.Message)
	}
}

func TestEndpointCheck_HonorsTimeout(t *testing.T) {
	check := &EndpointCheck{
		Service: "control",
		URL:     "http://hub:8420",
		Timeout: 50 * time.Millisecond,
		probe: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	start := time.Now()
	result := check.Run()

	if result.Status != StatusFail {
		t.Fatalf("expected fail, got %v", result.Status)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("check ignored its timeout, took %s", elapsed)
	}
}

func TestStreamCheck_PassesWhenUpgradeAccepted(t *testing.T) {
	srv := startHubStub(t)
	client, _ := stubClient(srv)

	check := &StreamCheck{Client: client, URL: srv.URL}
	result := check.Run()

	if result.Status != StatusPass {
		t.Fatalf("expected pass, got %v: %s", result.Status, result.Message)
	}
}

func TestStreamCheck_FailsWhenUpgradeRefused(t *testing.T) {
	// Plain HTTP server with no /ws/tail handler: the upgrade 404s.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	client, _ := stubClient(srv)

	check := &StreamCheck{Client: client, URL: srv.URL}
	result := check.Run()

	if result.Status != StatusFail {
		t.Fatalf("expected fail, got %v", result.Status)
	}
	if !strings.Contains(result.Message, "log tail") {
		t.Errorf("message should name the stream: %q", result.Message)
	}
	if !strings.Contains(result.Suggestion, "/ws/tail") {
		t.Errorf("suggestion should point at the tail endpoint: %q", result.Suggestion)
	}
}

func TestHubChecks_CoversEveryService(t *testing.T) {
	srv := startHubStub(t)
	client, eps := stubClient(srv)

	checks := HubChecks(client, eps)

	wantNames := []string{
		"endpoint_control",
		"endpoint_alerts",
		"endpoint_logs",
		"endpoint_config",
		"endpoint_metrics",
		"stream_tail",
	}
	if len(checks) != len(wantNames) {
		t.Fatalf("expected %d checks, got %d", len(wantNames), len(checks))
	}
	for i, want := range wantNames {
		if checks[i].Name() != want {
			t.Errorf("check %d: got %q, want %q", i, checks[i].Name(), want)
		}
	}
}

func TestHubChecks_AllPassAgainstHealthyHub(t *testing.T) {
	srv := startHubStub(t)
	client, eps := stubClient(srv)

	results := RunAllParallel(HubChecks(client, eps))

	for _, r := range results {
		if r.Status != StatusPass {
			t.Errorf("%s: expected pass, got %v: %s", r.Name, r.Status, r.Message)
		}
	}
}

func TestHubChecks_FailAgainstDownHub(t *testing.T) {
	// Nothing listens on this port.
	eps := config.EndpointsConfig{
		Control: "http://127.0.0.1:1",
		Alerts:  "http://127.0.0.1:1",
		Logs:    "http://127.0.0.1:1",
		Config:  "http://127.0.0.1:1",
		Metrics: "http://127.0.0.1:1/metrics",
	}
	client := api.New(api.Config{
		ControlURL: eps.Control,
		AlertsURL:  eps.Alerts,
		LogsURL:    eps.Logs,
		ConfigURL:  eps.Config,
		MetricsURL: eps.Metrics,
		Timeout:    time.Second,
	})

	results := RunAllParallel(HubChecks(client, eps))

	if !results.HasFailures() {
		t.Fatal("expected failures against a down hub")
	}
	for _, r := range results {
		if r.Status != StatusFail {
			t.Errorf("%s: expected fail, got %v", r.Name, r.Status)
		}
	}
}
