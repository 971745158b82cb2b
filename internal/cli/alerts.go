package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/query"
	"github.com/hearthview/hearth/internal/ui"
)

// alertsCmd lists alerts from the alert service.
var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List hub alerts",
	Long: `List alerts from the alert service, newest first as the service
reports them. Filters run locally and never change the order.

Examples:
  hearth alerts
  hearth alerts --severity critical --unacked
  hearth alerts --query night-watch
  hearth alerts --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return alertsCommand()
	},
}

// alertsAckCmd acknowledges one alert by id.
var alertsAckCmd = &cobra.Command{
	Use:   "ack <id>",
	Short: "Acknowledge an alert",
	Long: `Acknowledge an alert so it stops counting as unhandled.

The id is the first column of 'hearth alerts --json' output.

Examples:
  hearth alerts ack a1b2c3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return alertsAckCommand(args[0])
	},
}

var (
	alertsFilters FilterFlags
	alertsLimit   int
	alertsJSON    bool
	ackJSON       bool
)

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsAckCmd)

	AddAlertFilterFlags(alertsCmd, &alertsFilters)
	alertsCmd.Flags().IntVar(&alertsLimit, "limit", 50, "maximum alerts to fetch")
	alertsCmd.Flags().BoolVar(&alertsJSON, "json", false, "output in JSON format")
	alertsAckCmd.Flags().BoolVar(&ackJSON, "json", false, "output in JSON format")
}

// AlertsOutput represents the JSON output for the alerts command.
type AlertsOutput struct {
	Alerts  []api.Alert     `json:"alerts"`
	Summary ui.AlertSummary `json:"summary"`
}

// alertsCommand implements the alerts list logic.
func alertsCommand() error {
	if err := ValidateSeverity(alertsFilters.Severity); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := query.NewStore()
	if err != nil {
		return err
	}
	filter, err := alertsFilters.alertFilter(store)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	ctx, cancel := commandContext(cfg)
	defer cancel()

	alerts, err := client.Alerts(ctx, alertsLimit)
	if err != nil {
		return err
	}
	visible := filter.Apply(alerts)

	if alertsJSON {
		return WriteJSONSuccess(os.Stdout, AlertsOutput{
			Alerts:  visible,
			Summary: ui.SummarizeAlerts(visible),
		})
	}

	fmt.Println(ui.RenderAlertTable(visible, time.Now()))
	fmt.Println()
	fmt.Println(ui.RenderAlertSummary(ui.SummarizeAlerts(visible)))

	if len(visible) < len(alerts) {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Println(muted.Render(fmt.Sprintf("(%d hidden by filters)", len(alerts)-len(visible))))
	}

	return nil
}

// alertsAckCommand implements the alerts ack logic.
func alertsAckCommand(id string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	ctx, cancel := commandContext(cfg)
	defer cancel()

	if err := client.AckAlert(ctx, id); err != nil {
		return err
	}

	if ackJSON {
		return WriteJSONSuccess(os.Stdout, map[string]string{"acked": id})
	}

	okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Printf("%s Acknowledged %s\n", okStyle.Render(ui.SymbolSuccess), id)
	return nil
}
