package cli

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/ui"
	"github.com/hearthview/hearth/internal/util"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
}

// StatusOutput represents the JSON output for status command.
type StatusOutput struct {
	Hub      string              `json:"hub"`
	Health   *api.HealthSummary  `json:"health,omitempty"`
	Services []api.ServiceStatus `json:"services,omitempty"`
	Alerts   *ui.AlertSummary    `json:"alerts,omitempty"`
	Errors   map[string]string   `json:"errors,omitempty"`
}

// statusResult holds the three parallel fetches. Each section fails on its
// own; one dead service never hides the others.
type statusResult struct {
	health      *api.HealthSummary
	healthErr   error
	services    []api.ServiceStatus
	servicesErr error
	alerts      []api.Alert
	alertsErr   error
}

// statusCommand implements the status command logic.
func statusCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	res := fetchStatus(cfg, client)

	// Nothing answered: report it as one failure instead of three.
	if res.healthErr != nil && res.servicesErr != nil && res.alertsErr != nil {
		return errors.New(errors.ErrHTTP,
			fmt.Sprintf("Hub '%s' is unreachable", cfg.Hub.Name),
			"Check the endpoints in your config, or run 'hearth doctor'.")
	}

	if statusJSON {
		return outputStatusJSON(cfg, res)
	}
	return outputStatusText(cfg, res)
}

// fetchStatus polls health, services, and alerts in parallel.
func fetchStatus(cfg *config.Config, client *api.Client) statusResult {
	var res statusResult
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		ctx, cancel := commandContext(cfg)
		defer cancel()
		res.health, res.healthErr = client.Health(ctx)
	}()
	go func() {
		defer wg.Done()
		ctx, cancel := commandContext(cfg)
		defer cancel()
		res.services, res.servicesErr = client.Services(ctx)
	}()
	go func() {
		defer wg.Done()
		ctx, cancel := commandContext(cfg)
		defer cancel()
		res.alerts, res.alertsErr = client.Alerts(ctx, 200)
	}()
	wg.Wait()

	return res
}

// outputStatusJSON outputs status in JSON format.
func outputStatusJSON(cfg *config.Config, res statusResult) error {
	output := StatusOutput{
		Hub:      cfg.Hub.Name,
		Health:   res.health,
		Services: res.services,
	}
	if res.alertsErr == nil {
		summary := ui.SummarizeAlerts(res.alerts)
		output.Alerts = &summary
	}

	sectionErrs := make(map[string]string)
	if res.healthErr != nil {
		sectionErrs["health"] = errors.Message(res.healthErr)
	}
	if res.servicesErr != nil {
		sectionErrs["services"] = errors.Message(res.servicesErr)
	}
	if res.alertsErr != nil {
		sectionErrs["alerts"] = errors.Message(res.alertsErr)
	}
	if len(sectionErrs) > 0 {
		output.Errors = sectionErrs
	}

	return WriteJSONSuccess(os.Stdout, output)
}

// outputStatusText outputs status in human-readable format.
func outputStatusText(cfg *config.Config, res statusResult) error {
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)

	header := ui.HeaderInfo{Version: GetVersion(), Hub: cfg.Hub.Name}
	if res.health != nil {
		header.Status = res.health.Status
	}
	fmt.Println(ui.RenderHeader(header))

	if res.healthErr != nil {
		fmt.Printf("%s health: %s\n\n", errorStyle.Render(ui.SymbolFail), errors.Message(res.healthErr))
	} else if res.health != nil {
		h := res.health
		fmt.Printf("  hub %s, up %s\n", h.Version, util.FormatUptime(h.UptimeSeconds))
		fmt.Printf("  ingest %.1f ev/s, queue %s, devices %d/%d\n",
			h.IngestRate, formatQueue(h), h.DevicesOnline, h.DevicesTotal)
		fmt.Println()
	}

	if res.servicesErr != nil {
		fmt.Printf("%s services: %s\n", errorStyle.Render(ui.SymbolFail), errors.Message(res.servicesErr))
	} else {
		fmt.Println(ui.RenderServiceTable(res.services))
	}
	fmt.Println()

	if res.alertsErr != nil {
		fmt.Printf("%s alerts: %s\n", errorStyle.Render(ui.SymbolFail), errors.Message(res.alertsErr))
	} else {
		fmt.Println(ui.RenderAlertSummary(ui.SummarizeAlerts(res.alerts)))
	}

	if res.healthErr != nil || res.servicesErr != nil || res.alertsErr != nil {
		fmt.Println()
		fmt.Println(mutedStyle.Render("Some sections failed; run 'hearth doctor' for details."))
	}

	return nil
}

// formatQueue renders queue depth against capacity with a percent when the
// capacity is known.
func formatQueue(h *api.HealthSummary) string {
	if h.QueueCapacity <= 0 {
		return fmt.Sprintf("%d", h.QueueDepth)
	}
	pct := float64(h.QueueDepth) / float64(h.QueueCapacity) * 100
	return fmt.Sprintf("%d/%d (%.0f%%)", h.QueueDepth, h.QueueCapacity, pct)
}
