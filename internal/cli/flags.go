package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/logger"
	"github.com/hearthview/hearth/internal/query"
)

// FilterFlags holds the standard filter flags shared by the alerts and logs
// commands. Unset fields match everything.
type FilterFlags struct {
	Severity string
	Level    string
	Service  string
	Text     string
	Unacked  bool
	Query    string
}

// AddAlertFilterFlags registers the alert filter flags on a command.
func AddAlertFilterFlags(cmd *cobra.Command, flags *FilterFlags) {
	cmd.Flags().StringVar(&flags.Severity, "severity", "", "filter by severity (critical, warning, info)")
	cmd.Flags().StringVar(&flags.Service, "service", "", "filter by originating service")
	cmd.Flags().StringVar(&flags.Text, "text", "", "filter by message substring")
	cmd.Flags().BoolVar(&flags.Unacked, "unacked", false, "only unacknowledged alerts")
	cmd.Flags().StringVar(&flags.Query, "query", "", "apply a saved query")
}

// AddLogFilterFlags registers the log filter flags on a command.
func AddLogFilterFlags(cmd *cobra.Command, flags *FilterFlags) {
	cmd.Flags().StringVar(&flags.Level, "level", "", "filter by level (debug, info, warn, error)")
	cmd.Flags().StringVar(&flags.Service, "service", "", "filter by originating service")
	cmd.Flags().StringVar(&flags.Text, "text", "", "filter by message substring")
	cmd.Flags().StringVar(&flags.Query, "query", "", "apply a saved query")
}

// ValidateSeverity checks a --severity flag value. Empty is fine.
func ValidateSeverity(s string) error {
	switch s {
	case "", api.SeverityCritical, api.SeverityWarning, api.SeverityInfo:
		return nil
	}
	return errors.New(errors.ErrInput,
		fmt.Sprintf("'%s' isn't a severity", s),
		"Use critical, warning, or info.")
}

// ValidateLevel checks a --level flag value. Empty is fine.
func ValidateLevel(s string) error {
	switch s {
	case "", "debug", "info", "warn", "error":
		return nil
	}
	return errors.New(errors.ErrInput,
		fmt.Sprintf("'%s' isn't a log level", s),
		"Use debug, info, warn, or error.")
}

// alertFilter resolves the effective alert filter: a saved query when
// --query names one, with explicit flags layered on top.
func (f FilterFlags) alertFilter(store *query.Store) (query.AlertFilter, error) {
	filter := query.AlertFilter{
		Severity:    f.Severity,
		Service:     f.Service,
		Text:        f.Text,
		UnackedOnly: f.Unacked,
	}
	if f.Query == "" {
		return filter, nil
	}

	saved, err := store.Get(f.Query)
	if err != nil {
		return filter, err
	}
	if saved.Kind != query.KindAlerts {
		return filter, errors.New(errors.ErrQuery,
			fmt.Sprintf("Saved query '%s' is a %s query, not an alerts query", f.Query, saved.Kind),
			"Pick one from 'hearth queries' with kind alerts.")
	}

	base := saved.AlertFilter()
	if filter.Severity == "" {
		filter.Severity = base.Severity
	}
	if filter.Service == "" {
		filter.Service = base.Service
	}
	if filter.Text == "" {
		filter.Text = base.Text
	}
	return filter, nil
}

// logFilter resolves the effective log filter, mirroring alertFilter.
func (f FilterFlags) logFilter(store *query.Store) (query.LogFilter, error) {
	filter := query.LogFilter{
		Level:   f.Level,
		Service: f.Service,
		Text:    f.Text,
	}
	if f.Query == "" {
		return filter, nil
	}

	saved, err := store.Get(f.Query)
	if err != nil {
		return filter, err
	}
	if saved.Kind != query.KindLogs {
		return filter, errors.New(errors.ErrQuery,
			fmt.Sprintf("Saved query '%s' is a %s query, not a logs query", f.Query, saved.Kind),
			"Pick one from 'hearth queries' with kind logs.")
	}

	base := saved.LogFilter()
	if filter.Level == "" {
		filter.Level = base.Level
	}
	if filter.Service == "" {
		filter.Service = base.Service
	}
	if filter.Text == "" {
		filter.Text = base.Text
	}
	return filter, nil
}

// loadConfig finds, loads, and validates the active config. Commands that
// can run without one use config.LoadOrDefault instead.
func loadConfig() (*config.Config, error) {
	path, err := config.Find(Config())
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'hearth init' to point hearth at your hub.")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the hub API client from a config.
func newClient(cfg *config.Config) *api.Client {
	return api.New(api.Config{
		ControlURL: cfg.Endpoints.Control,
		AlertsURL:  cfg.Endpoints.Alerts,
		LogsURL:    cfg.Endpoints.Logs,
		ConfigURL:  cfg.Endpoints.Config,
		MetricsURL: cfg.Endpoints.Metrics,
		Timeout:    cfg.RequestTimeout,
		Logger:     logger.Default(),
	})
}

// commandContext returns a request context bounded by the config's timeout.
func commandContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// ParseWindow parses a --window flag into one of the series windows the
// control API accepts. Returns the default when empty.
func ParseWindow(flag string) (string, error) {
	if flag == "" {
		return "15m", nil
	}
	switch flag {
	case "15m", "1h", "6h", "24h":
		return flag, nil
	}
	return "", errors.New(errors.ErrInput,
		fmt.Sprintf("'%s' isn't a series window", flag),
		"Use 15m, 1h, 6h, or 24h.")
}
