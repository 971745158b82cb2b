package cli

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Host           string // Pre-specified hub address
	Name           string // Pre-specified hub name
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// Init creates a new .hearth.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Collect configuration values. The defaults double as form seeds.
	hubHost := opts.Host
	hubName := opts.Name
	metric := ""
	if hubHost == "" {
		hubHost = "127.0.0.1"
	}
	if hubName == "" {
		hubName = "home"
	}

	if !opts.NonInteractive {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Hub address").
					Description("Host or IP where the hub services run").
					Placeholder("127.0.0.1 or hub.local").
					Value(&hubHost).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("hub address is required")
						}
						if strings.ContainsAny(s, " \t\n") {
							return fmt.Errorf("hub address cannot contain whitespace")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Hub name").
					Description("A friendly name shown in headers and the dashboard").
					Placeholder("home").
					Value(&hubName).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("hub name is required")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Default chart metric (optional)").
					Description("Metric the dashboard charts on startup").
					Placeholder("ingest_rate").
					Value(&metric),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility, or pass --host to skip prompts")
		}
	}

	cfg := buildConfig(hubHost, hubName, metric)

	// Probe the control API before saving so a typo surfaces now.
	fmt.Println()
	spinner := ui.NewSpinner("Checking hub at " + hubHost)
	spinner.Start()

	probeErr := probeControl(cfg)
	if probeErr != nil {
		spinner.Fail()

		// Hub not answering is normal during first setup; offer to save.
		var saveAnyway bool
		if opts.NonInteractive {
			fmt.Printf("\n%s Hub at '%s' didn't answer; saving anyway\n", ui.SymbolFail, hubHost)
		} else {
			fmt.Printf("\n%s Hub at '%s' didn't answer: %v\n\n", ui.SymbolFail, hubHost, errors.Message(probeErr))

			form := huh.NewForm(
				huh.NewGroup(
					huh.NewConfirm().
						Title("Save config anyway? (You can start the hub later)").
						Value(&saveAnyway),
				),
			)

			if formErr := form.Run(); formErr != nil {
				return errors.WrapWithCode(probeErr, errors.ErrHTTP,
					fmt.Sprintf("Hub at '%s' is unreachable", hubHost),
					"Check that the hub services are running")
			}

			if !saveAnyway {
				return errors.WrapWithCode(probeErr, errors.ErrHTTP,
					fmt.Sprintf("Hub at '%s' is unreachable", hubHost),
					"Check that the hub services are running")
			}
		}
	} else {
		spinner.Success()
		fmt.Println()
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	// Add a header comment
	header := `# hearth configuration
# Run 'hearth dash' for the live dashboard, 'hearth doctor' to verify setup
# See: https://github.com/hearthview/hearth for documentation

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  hearth status   - One-shot hub summary")
	fmt.Println("  hearth dash     - Live dashboard")
	fmt.Println("  hearth doctor   - Check the setup")

	return nil
}

// buildConfig derives a full config from a hub address, using the standard
// service ports on that host.
func buildConfig(host, name, metric string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Hub.Name = name
	cfg.Endpoints = endpointsForHost(host)
	if metric != "" {
		cfg.Dashboard.DefaultMetric = metric
	}
	return cfg
}

// endpointsForHost maps a bare host to the five service URLs on their
// standard ports. An address that already parses as a URL keeps its scheme.
func endpointsForHost(host string) config.EndpointsConfig {
	scheme := "http"
	if u, err := url.Parse(host); err == nil && u.Scheme != "" && u.Host != "" {
		scheme = u.Scheme
		host = u.Host
	}
	// Strip a port; the services each have their own.
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	// A bare IPv6 address needs brackets once ports go back on.
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	base := scheme + "://" + host
	return config.EndpointsConfig{
		Control: base + ":8420",
		Alerts:  base + ":8421",
		Logs:    base + ":8422",
		Config:  base + ":8423",
		Metrics: base + ":8424/metrics",
	}
}

// probeControl checks the control API's health endpoint.
func probeControl(cfg *config.Config) error {
	client := newClient(cfg)
	ctx, cancel := commandContext(cfg)
	defer cancel()
	_, err := client.Health(ctx)
	return err
}

// initCommand is the implementation called by the cobra command.
func initCommand(hostFlag, nameFlag string, force bool) error {
	return Init(InitOptions{
		Host:           hostFlag,
		Name:           nameFlag,
		Overwrite:      force,
		NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
	})
}
