package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hearthview/hearth/internal/errors"
)

// Command-specific flags
var (
	dashMetricFlag string
	initHostFlag   string
	initNameFlag   string
	initForce      bool
)

// dashCmd starts the full-screen dashboard.
var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Live hub dashboard with charts, alerts, and logs",
	Long: `Start the interactive full-screen dashboard.

Six panes poll the hub services independently: health summary, service
list, a metric chart, alerts, logs, and the hub configuration. A pane
that cannot reach its service shows its own error banner while the rest
keep updating.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  tab / 1-6   Move focus between panes
  r           Refresh everything now
  p           Pause and resume polling
  m / w / c   Cycle chart metric, window, and renderer
  h / l       Inspect chart points
  f / u       Cycle the focused pane's filter, toggle unacked-only
  L           Cycle the logs level filter
  a           Acknowledge the selected alert
  v           Reveal masked config values
  Enter       Open detail view for the selection
  ?           Show help

The mouse works too: click to focus and select, hover the chart to
inspect points, scroll to move selections.

Examples:
  hearth dash
  hearth dash --metric queue_depth
  hearth dash --config ./hub.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashCommand(dashMetricFlag)
	},
}

// statusCmd shows a one-shot hub summary.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hub health, services, and alert summary",
	Long: `Display a one-shot summary of the hub: health, version, uptime,
ingest rate, queue depth, the service table, and an alert count.

Examples:
  hearth status
  hearth status --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand()
	},
}

// initCmd creates a new .hearth.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .hearth.yaml configuration",
	Long: `Initialize a new hearth configuration file.

Creates a .hearth.yaml in the current directory pointing at your hub's
services, with interactive prompts for the hub address.

Examples:
  hearth init
  hearth init --host 10.0.0.2
  hearth init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initHostFlag, initNameFlag, initForce)
	},
}

// doctorCmd diagnoses connectivity and configuration issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose connectivity and config issues",
	Long: `Run diagnostic checks to identify and fix common issues.

Checks:
  - Config file presence and validity
  - Saved query store integrity
  - Terminal capabilities for the dashboard
  - Reachability of every hub service
  - Log tail WebSocket upgrade

Examples:
  hearth doctor
  hearth doctor --fix`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for hearth.

Examples:
  # Bash
  hearth completion bash > /etc/bash_completion.d/hearth

  # Zsh
  hearth completion zsh > "${fpath[1]}/_hearth"

  # Fish
  hearth completion fish > ~/.config/fish/completions/hearth.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrInput,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// dash command flags
	dashCmd.Flags().StringVar(&dashMetricFlag, "metric", "", "metric to chart on startup (default from config)")

	// init command flags
	initCmd.Flags().StringVar(&initHostFlag, "host", "", "hub address (e.g., 127.0.0.1 or hub.local)")
	initCmd.Flags().StringVar(&initNameFlag, "name", "", "hub name shown in headers")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	// Register all commands
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(completionCmd)
}
