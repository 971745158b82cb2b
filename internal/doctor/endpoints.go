package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
)

// probeTimeout bounds each endpoint probe independently of the client's
// request timeout, so one dead service can't stall the whole run.
const probeTimeout = 5 * time.Second

// slowThreshold is where a reachable endpoint starts counting as a problem.
const slowThreshold = 1 * time.Second

// EndpointCheck probes one hub service with a real request and reports
// reachability plus latency.
type EndpointCheck struct {
	Service string
	URL     string
	Timeout time.Duration

	probe func(context.Context) error
}

func (c *EndpointCheck) Name() string     { return "endpoint_" + c.Service }
func (c *EndpointCheck) Category() string { return "ENDPOINTS" }
func (c *EndpointCheck) Fix() error       { return nil }

func (c *EndpointCheck) Run() CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = probeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := c.probe(ctx)
	latency := time.Since(start)

	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s (%s): %s", c.Service, c.URL, errors.Message(err)),
			Suggestion: "Check the service is running on the hub",
		}
	}

	if latency > slowThreshold {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("%s reachable but slow (%s)", c.Service, latency.Round(time.Millisecond)),
			Suggestion: "The hub may be overloaded; check 'hearth status'",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s reachable (%s)", c.Service, latency.Round(time.Millisecond)),
	}
}

// StreamCheck verifies the log aggregator accepts WebSocket upgrades, which
// plain HTTP probes cannot tell apart from a working tail stream.
type StreamCheck struct {
	Client  *api.Client
	URL     string
	Timeout time.Duration
}

func (c *StreamCheck) Name() string     { return "stream_tail" }
func (c *StreamCheck) Category() string { return "STREAM" }
func (c *StreamCheck) Fix() error       { return nil }

func (c *StreamCheck) Run() CheckResult {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = probeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := c.Client.PingTail(ctx); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("log tail (%s): %s", c.URL, errors.Message(err)),
			Suggestion: "'hearth logs --follow' needs the /ws/tail upgrade; check the aggregator version",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "log tail stream upgrades cleanly",
	}
}

// HubChecks builds the network checks for every hub service the client
// knows about.
func HubChecks(client *api.Client, endpoints config.EndpointsConfig) []Check {
	return []Check{
		&EndpointCheck{
			Service: "control",
			URL:     endpoints.Control,
			probe: func(ctx context.Context) error {
				_, err := client.Health(ctx)
				return err
			},
		},
		&EndpointCheck{
			Service: "alerts",
			URL:     endpoints.Alerts,
			probe: func(ctx context.Context) error {
				_, err := client.Alerts(ctx, 1)
				return err
			},
		},
		&EndpointCheck{
			Service: "logs",
			URL:     endpoints.Logs,
			probe: func(ctx context.Context) error {
				_, err := client.Logs(ctx, 1)
				return err
			},
		},
		&EndpointCheck{
			Service: "config",
			URL:     endpoints.Config,
			probe: func(ctx context.Context) error {
				_, err := client.ConfigDocument(ctx)
				return err
			},
		},
		&EndpointCheck{
			Service: "metrics",
			URL:     endpoints.Metrics,
			probe: func(ctx context.Context) error {
				_, err := client.ScrapeMetrics(ctx)
				return err
			},
		},
		&StreamCheck{Client: client, URL: endpoints.Logs},
	}
}
