package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/ui"
	"github.com/hearthview/hearth/internal/util"
)

// servicesCmd lists hub services.
var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List hub services and control them",
	Long: `List the hub's managed services with state, uptime, and restart
counts, or control one with the start/stop/restart subcommands.

Examples:
  hearth services
  hearth services restart rule-engine
  hearth services stop zigbee-gw --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return servicesCommand()
	},
}

var servicesStartCmd = &cobra.Command{
	Use:   "start <service>",
	Short: "Start a stopped service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return serviceActionCommand(args[0], "start")
	},
}

var servicesStopCmd = &cobra.Command{
	Use:   "stop <service>",
	Short: "Stop a running service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return serviceActionCommand(args[0], "stop")
	},
}

var servicesRestartCmd = &cobra.Command{
	Use:   "restart <service>",
	Short: "Restart a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return serviceActionCommand(args[0], "restart")
	},
}

var (
	servicesJSON bool
	actionYes    bool
	actionJSON   bool
)

func init() {
	rootCmd.AddCommand(servicesCmd)
	servicesCmd.AddCommand(servicesStartCmd)
	servicesCmd.AddCommand(servicesStopCmd)
	servicesCmd.AddCommand(servicesRestartCmd)

	servicesCmd.Flags().BoolVar(&servicesJSON, "json", false, "output in JSON format")
	for _, c := range []*cobra.Command{servicesStartCmd, servicesStopCmd, servicesRestartCmd} {
		c.Flags().BoolVarP(&actionYes, "yes", "y", false, "skip the confirmation prompt")
		c.Flags().BoolVar(&actionJSON, "json", false, "output in JSON format")
	}
}

// servicesCommand implements the services list logic.
func servicesCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	ctx, cancel := commandContext(cfg)
	defer cancel()

	services, err := client.Services(ctx)
	if err != nil {
		return err
	}

	if servicesJSON {
		return WriteJSONSuccess(os.Stdout, map[string]interface{}{"services": services})
	}

	fmt.Println(ui.RenderServiceTable(services))
	return nil
}

// serviceActionCommand runs start/stop/restart against one service.
func serviceActionCommand(name, action string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	// Resolve the name against the live list first so a typo gets a
	// suggestion instead of a control API error.
	if err := resolveServiceName(cfg, client, name); err != nil {
		return err
	}

	// Stopping and restarting interrupt a live service; check first.
	if action != "start" && !actionYes {
		confirmed, err := confirmAction(name, action)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	var result *api.ActionResult
	runAction := func() error {
		ctx, cancel := commandContext(cfg)
		defer cancel()
		result, err = client.ServiceAction(ctx, name, action)
		return err
	}

	if actionJSON || MachineMode() {
		if err := runAction(); err != nil {
			return err
		}
	} else {
		spinner := ui.NewSpinner(actionLabel(name, action))
		spinner.Start()
		if err := runAction(); err != nil {
			spinner.Fail()
			return err
		}
		if result.OK {
			spinner.Success()
		} else {
			spinner.Fail()
		}
	}

	if actionJSON {
		return WriteJSONSuccess(os.Stdout, result)
	}

	if !result.OK {
		msg := result.Message
		if msg == "" {
			msg = fmt.Sprintf("The hub refused to %s '%s'", action, name)
		}
		return errors.New(errors.ErrHTTP, msg,
			"Check 'hearth logs --service "+name+"' for what went wrong.")
	}

	if result.Message != "" {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Println(muted.Render("  " + result.Message))
	}
	return nil
}

// resolveServiceName checks the name against the live service list. A list
// fetch failure is not fatal; the action itself will surface it.
func resolveServiceName(cfg *config.Config, client *api.Client, name string) error {
	ctx, cancel := commandContext(cfg)
	defer cancel()

	services, err := client.Services(ctx)
	if err != nil {
		return nil
	}

	var names []string
	for _, s := range services {
		if s.Name == name {
			return nil
		}
		names = append(names, s.Name)
	}

	suggestion := "Run 'hearth services' to see what the hub manages."
	if matches := util.SuggestSimilar(name, names, 3); len(matches) > 0 {
		suggestion = "Did you mean '" + strings.Join(matches, "' or '") + "'?"
	}
	return errors.New(errors.ErrInput,
		fmt.Sprintf("The hub has no service named '%s'", name),
		suggestion)
}

// confirmAction prompts before a disruptive action. Non-interactive runs
// must pass --yes instead.
func confirmAction(name, action string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, errors.New(errors.ErrInput,
			fmt.Sprintf("Refusing to %s '%s' without confirmation", action, name),
			"Pass --yes when running non-interactively.")
	}

	title := "Restart"
	if action == "stop" {
		title = "Stop"
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s service '%s'?", title, name)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrInput,
			"Failed to read confirmation",
			"Pass --yes to skip the prompt.")
	}
	return confirmed, nil
}

func actionLabel(name, action string) string {
	switch action {
	case "start":
		return "Starting " + name
	case "stop":
		return "Stopping " + name
	default:
		return "Restarting " + name
	}
}
