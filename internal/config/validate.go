package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hearthview/hearth/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but hearth only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest hearth: https://github.com/hearthview/hearth/releases")
	}

	if err := validateEndpoints(cfg.Endpoints); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'endpoints' section in your .hearth.yaml.")
	}

	if err := validateIntervals(cfg.Intervals, cfg.RequestTimeout); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'intervals' section in your .hearth.yaml.")
	}

	if err := validateThresholds(cfg.Thresholds); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'thresholds' section in your .hearth.yaml.")
	}

	if err := validateDashboard(cfg.Dashboard); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'dashboard' section in your .hearth.yaml.")
	}

	return nil
}

// validateEndpoints checks that every service URL is present and parseable.
func validateEndpoints(eps EndpointsConfig) error {
	checks := []struct {
		name string
		url  string
	}{
		{"control", eps.Control},
		{"alerts", eps.Alerts},
		{"logs", eps.Logs},
		{"config", eps.Config},
		{"metrics", eps.Metrics},
	}

	for _, c := range checks {
		if strings.TrimSpace(c.url) == "" {
			return fmt.Errorf("endpoints.%s is empty - hearth needs to know where that service lives", c.name)
		}

		u, err := url.Parse(c.url)
		if err != nil {
			return fmt.Errorf("endpoints.%s '%s' isn't a valid URL", c.name, c.url)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoints.%s '%s' needs an http:// or https:// scheme", c.name, c.url)
		}
		if u.Host == "" {
			return fmt.Errorf("endpoints.%s '%s' is missing a host", c.name, c.url)
		}
	}

	return nil
}

// validateIntervals checks polling cadences against each other and the
// request timeout.
func validateIntervals(iv IntervalsConfig, timeout time.Duration) error {
	intervals := []struct {
		name string
		d    time.Duration
	}{
		{"health", iv.Health},
		{"services", iv.Services},
		{"alerts", iv.Alerts},
		{"logs", iv.Logs},
		{"metrics", iv.Metrics},
		{"config", iv.Config},
	}

	for _, it := range intervals {
		if it.d <= 0 {
			return fmt.Errorf("intervals.%s can't be zero or negative - that doesn't make sense", it.name)
		}
		if it.d < time.Second {
			return fmt.Errorf("intervals.%s (%v) is under a second - that would hammer the service. Use 1s or more", it.name, it.d)
		}
		if timeout > 0 && timeout > it.d {
			return fmt.Errorf("request_timeout (%v) is longer than intervals.%s (%v) - a request would still be in flight when the next poll fires", timeout, it.name, it.d)
		}
	}

	if timeout <= 0 {
		return fmt.Errorf("request_timeout can't be zero or negative - polls would never give up")
	}

	return nil
}

// validateThresholds checks the warning/critical boundaries.
func validateThresholds(thresh ThresholdConfig) error {
	if thresh.Warning < 0 || thresh.Warning > 100 {
		return fmt.Errorf("thresholds.warning needs to be 0-100 (got %d)", thresh.Warning)
	}
	if thresh.Critical < 0 || thresh.Critical > 100 {
		return fmt.Errorf("thresholds.critical needs to be 0-100 (got %d)", thresh.Critical)
	}
	if thresh.Warning > 0 && thresh.Critical > 0 && thresh.Warning >= thresh.Critical {
		return fmt.Errorf("thresholds.warning (%d%%) is higher than critical (%d%%) - should be the other way around", thresh.Warning, thresh.Critical)
	}
	return nil
}

// validateDashboard checks dashboard settings.
func validateDashboard(dash DashboardConfig) error {
	if dash.HistorySize < 2 {
		return fmt.Errorf("dashboard.history_size needs at least 2 points - a chart can't draw a line through %d", dash.HistorySize)
	}
	if dash.HistorySize > 10000 {
		return fmt.Errorf("dashboard.history_size (%d) is excessive - anything past 10000 just burns memory", dash.HistorySize)
	}
	return nil
}
