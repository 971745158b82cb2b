package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/ui"
	"github.com/hearthview/hearth/internal/util"
)

// Global flags available on every command
var (
	configFlag  string
	verboseFlag bool
	quietFlag   bool
	noColorFlag bool
)

// rootCmd is the base command all subcommands hang off of.
var rootCmd = &cobra.Command{
	Use:   "hearth",
	Short: "Terminal console for a Hearth home-automation hub",
	Long: `Hearth is a terminal console for a Hearth home-automation hub.

It talks to the hub's local services (control, alerts, logs, configuration,
and metrics) and presents them as one-shot commands or as a live full-screen
dashboard.

Common commands:
  hearth dash       Live dashboard with charts, alerts, and logs
  hearth status     One-shot hub health and service summary
  hearth alerts     List and acknowledge alerts
  hearth logs       View or follow hub logs
  hearth doctor     Diagnose connectivity and config issues

Run 'hearth init' once to write a config pointing at your hub.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag || os.Getenv("NO_COLOR") != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		// Any command carrying --json switches the whole run to machine
		// output, including error reporting in Execute.
		if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
			machineMode = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default: search for .hearth.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

// Config returns the --config flag value.
func Config() string { return configFlag }

// Verbose returns the --verbose flag value.
func Verbose() bool { return verboseFlag }

// Quiet returns the --quiet flag value.
func Quiet() bool { return quietFlag }

// Execute runs the root command and turns errors into exit codes. Structured
// errors print their message and suggestion; in machine mode they go out as
// a JSON envelope instead.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	// A command that already reported its failure just carries the code.
	if code, ok := errors.GetExitCode(err); ok {
		os.Exit(code)
	}

	if isUnknownCommandError(err) {
		reportUnknownCommand(err)
		os.Exit(1)
	}

	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
		os.Exit(1)
	}

	errStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	fmt.Fprintf(os.Stderr, "%s %s\n", errStyle.Render(ui.SymbolFail), errors.Message(err))
	if s := errors.Suggestion(err); s != "" {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Fprintf(os.Stderr, "  %s\n", muted.Render(s))
	}
	os.Exit(1)
}

// isUnknownCommandError reports whether err is Cobra's complaint about an
// unrecognized subcommand or flag.
func isUnknownCommandError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand pulls the offending name out of Cobra's
// `unknown command "foo" for "hearth"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// reportUnknownCommand prints the error plus a did-you-mean hint when a
// registered command is a close misspelling.
func reportUnknownCommand(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())

	name := extractUnknownCommand(err)
	if name == "" {
		return
	}

	var candidates []string
	for _, c := range rootCmd.Commands() {
		if !c.Hidden {
			candidates = append(candidates, c.Name())
		}
	}

	if matches := util.SuggestSimilar(name, candidates, 3); len(matches) > 0 {
		fmt.Fprintf(os.Stderr, "\nDid you mean 'hearth %s'?\n", strings.Join(matches, "' or 'hearth "))
	}
	fmt.Fprintln(os.Stderr, "\nRun 'hearth --help' for usage.")
}
