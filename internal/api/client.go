package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/logger"
)

// DefaultTimeout bounds a single request when the caller's config does not
// say otherwise.
const DefaultTimeout = 5 * time.Second

// Config holds the service base URLs and request settings for a Client.
type Config struct {
	ControlURL string
	AlertsURL  string
	LogsURL    string
	ConfigURL  string
	MetricsURL string

	Timeout time.Duration
	Logger  logger.Logger
}

// Client talks JSON over HTTP to the hub services. It is safe for concurrent
// use; every method takes a context that bounds the request.
type Client struct {
	control string
	alerts  string
	logs    string
	config  string
	metrics string

	http *http.Client
	log  logger.Logger
}

// New creates a Client from the given service endpoints.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Noop()
	}

	return &Client{
		control: strings.TrimRight(cfg.ControlURL, "/"),
		alerts:  strings.TrimRight(cfg.AlertsURL, "/"),
		logs:    strings.TrimRight(cfg.LogsURL, "/"),
		config:  strings.TrimRight(cfg.ConfigURL, "/"),
		metrics: cfg.MetricsURL,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// StatusError reports a non-2xx response from a hub service.
type StatusError struct {
	StatusCode int
	Message    string // decoded from an {"error": "..."} body when present
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// Health fetches the pipeline health summary from the control API.
func (c *Client) Health(ctx context.Context) (*HealthSummary, error) {
	var out HealthSummary
	if err := c.getJSON(ctx, c.control+"/api/v1/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Services fetches the service status list from the control API.
func (c *Client) Services(ctx context.Context) ([]ServiceStatus, error) {
	var out []ServiceStatus
	if err := c.getJSON(ctx, c.control+"/api/v1/services", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ServiceAction asks the control API to start, stop, or restart a service.
func (c *Client) ServiceAction(ctx context.Context, service, action string) (*ActionResult, error) {
	endpoint := fmt.Sprintf("%s/api/v1/services/%s/%s", c.control, url.PathEscape(service), url.PathEscape(action))

	var out ActionResult
	if err := c.sendJSON(ctx, http.MethodPost, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MetricNames fetches the metric names the control API can serve as series.
func (c *Client) MetricNames(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.getJSON(ctx, c.control+"/api/v1/series", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Series fetches a metric's time series from the control API. The window is
// passed through verbatim (e.g. "15m"); empty means the server default.
func (c *Client) Series(ctx context.Context, metric, window string) (*Series, error) {
	endpoint := c.control + "/api/v1/series/" + url.PathEscape(metric)
	if window != "" {
		endpoint += "?window=" + url.QueryEscape(window)
	}

	var out Series
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Alerts fetches recent alerts from the alert service, newest first as the
// service returns them. Severity and service filtering happen client-side
// over the fetched collection, not here.
func (c *Client) Alerts(ctx context.Context, limit int) ([]Alert, error) {
	endpoint := c.alerts + "/api/v1/alerts"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	var out []Alert
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AckAlert acknowledges one alert by ID.
func (c *Client) AckAlert(ctx context.Context, id string) error {
	endpoint := c.alerts + "/api/v1/alerts/" + url.PathEscape(id) + "/ack"
	return c.sendJSON(ctx, http.MethodPost, endpoint, nil, nil)
}

// Logs fetches recent log entries from the aggregator, oldest first. Level
// and service filtering happen client-side over the fetched collection.
func (c *Client) Logs(ctx context.Context, limit int) ([]LogEntry, error) {
	endpoint := c.logs + "/api/v1/logs"
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	var out []LogEntry
	if err := c.getJSON(ctx, endpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ConfigDocument fetches the hub configuration document.
func (c *Client) ConfigDocument(ctx context.Context) (*ConfigDocument, error) {
	var out ConfigDocument
	if err := c.getJSON(ctx, c.config+"/api/v1/config", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PushConfig uploads a configuration document to the configuration service.
func (c *Client) PushConfig(ctx context.Context, doc *ConfigDocument) error {
	return c.sendJSON(ctx, http.MethodPut, c.config+"/api/v1/config", doc, nil)
}

// getJSON performs a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	return c.sendJSON(ctx, http.MethodGet, endpoint, nil, out)
}

// sendJSON performs one request with an optional JSON body and decodes the
// JSON response into out when out is non-nil.
func (c *Client) sendJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrInput,
				"Failed to encode request body", "")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrHTTP,
			"Failed to build request for "+endpoint, "")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrHTTP,
			method+" "+endpoint+" failed",
			"Check the service is running, or run 'hearth doctor'")
	}
	defer resp.Body.Close()

	c.log.Debug("%s %s -> %d (%s)", method, endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.WrapWithCode(newStatusError(resp), errors.ErrHTTP,
			method+" "+endpoint+" failed", "")
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.WrapWithCode(err, errors.ErrDecode,
			"Response from "+endpoint+" is not valid JSON",
			"Check that the service version matches this hearth")
	}

	return nil
}

// newStatusError builds a StatusError, pulling the message out of a JSON
// {"error": ...} body when the service sent one.
func newStatusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return se
	}

	var body errorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		se.Message = body.Error
	}
	return se
}
