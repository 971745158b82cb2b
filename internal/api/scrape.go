package api

import (
	"context"
	"fmt"
	"io"
	"net/http"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/hearthview/hearth/internal/errors"
)

// ScrapeMetrics fetches the hub's Prometheus text exposition and returns one
// value per metric family, summed across label sets. Counters come back as
// raw totals; the dashboard's history keeps the previous scrape and derives
// rates from the delta.
func (c *Client) ScrapeMetrics(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.metrics, nil)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHTTP,
			"Failed to build metrics request", "")
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrHTTP,
			"GET "+c.metrics+" failed",
			"Check the metrics endpoint is up, or run 'hearth doctor'")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.WrapWithCode(newStatusError(resp), errors.ErrHTTP,
			"GET "+c.metrics+" failed", "")
	}

	families, err := parseExposition(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDecode,
			"Metrics endpoint did not return Prometheus text format",
			"Check endpoints.metrics points at a /metrics path")
	}

	samples := make(map[string]float64, len(families))
	for name, mf := range families {
		samples[name] = sumFamily(mf)
	}
	return samples, nil
}

// parseExposition decodes a Prometheus text exposition into metric families.
// A partial result with a non-fatal parse warning is still returned.
func parseExposition(r io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("parse prometheus text: %w", err)
	}
	return mfs, nil
}

// sumFamily adds up all counter, gauge, or untyped values in a MetricFamily.
// Returns 0 if mf is nil (metric not present in the scrape).
func sumFamily(mf *dto.MetricFamily) float64 {
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		switch {
		case m.Counter != nil:
			total += m.Counter.GetValue()
		case m.Gauge != nil:
			total += m.Gauge.GetValue()
		case m.Untyped != nil:
			total += m.Untyped.GetValue()
		}
	}
	return total
}
