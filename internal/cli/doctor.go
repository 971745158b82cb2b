package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/doctor"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/query"
	"github.com/hearthview/hearth/internal/ui"
)

var (
	doctorJSON  bool
	doctorFix   bool
	doctorLocal bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	doctorCmd.Flags().BoolVar(&doctorLocal, "local", false, "skip the network checks")
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []doctor.CategoryGroup `json:"categories"`
	Summary    SummaryOutput          `json:"summary"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand() error {
	// Doctor runs even when the config is missing or broken; the config
	// check reports that state instead of aborting on it.
	cfg, cfgErr := config.LoadOrDefault()
	if cfgErr != nil || cfg == nil {
		cfg = config.DefaultConfig()
	}

	store, err := query.NewStore()
	if err != nil {
		return err
	}

	checks := collectChecks(cfg, store)

	// Endpoint probes dominate the runtime, so run everything in parallel.
	results := doctor.RunAllParallel(checks)

	if doctorFix {
		results = attemptFixes(checks, results)
	}

	if doctorJSON {
		err = outputDoctorJSON(checks, results)
	} else {
		err = outputDoctorText(checks, results)
	}
	if err != nil {
		return err
	}

	// The report already told the story; scripts get the verdict as the
	// exit code.
	if results.HasFailures() {
		return errors.NewExitError(1)
	}
	return nil
}

// collectChecks gathers the diagnostic checks to run.
func collectChecks(cfg *config.Config, store *query.Store) []doctor.Check {
	checks := doctor.LocalChecks(Config(), store)
	if !doctorLocal {
		checks = append(checks, doctor.HubChecks(newClient(cfg), cfg.Endpoints)...)
	}
	return checks
}

// attemptFixes tries to fix issues where possible.
func attemptFixes(checks []doctor.Check, results doctor.Results) doctor.Results {
	for i, result := range results {
		if result.Fixable && (result.Status == doctor.StatusFail || result.Status == doctor.StatusWarn) {
			if err := checks[i].Fix(); err == nil {
				// Re-run the check to see if it's fixed
				results[i] = checks[i].Run()
			}
		}
	}
	return results
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(checks []doctor.Check, results doctor.Results) error {
	counts := results.Counts()
	output := DoctorOutput{
		Categories: doctor.ByCategory(checks, results),
		Summary: SummaryOutput{
			Pass:     counts[doctor.StatusPass],
			Warn:     counts[doctor.StatusWarn],
			Fail:     counts[doctor.StatusFail],
			Fixable:  results.Fixable(),
			AllClear: !results.HasIssues(),
		},
	}

	return WriteJSONSuccess(os.Stdout, output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(checks []doctor.Check, results doctor.Results) error {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Println()
	fmt.Println(headerStyle.Render("Hearth Diagnostic Report"))
	fmt.Println()

	rows := make([]ui.DoctorCheckRow, 0, len(results))
	for i, check := range checks {
		rows = append(rows, ui.DoctorCheckRow{
			Status:     results[i].Status.String(),
			Category:   check.Category(),
			Message:    results[i].Message,
			Suggestion: results[i].Suggestion,
		})
	}
	fmt.Println(ui.RenderDoctorTable(rows))

	fmt.Println(strings.Repeat("━", 60))
	fmt.Println()

	if !results.HasIssues() {
		fmt.Printf("%s %s\n", successStyle.Render(ui.SymbolSuccess), "Everything looks good")
	} else {
		fmt.Printf("%s %s\n", errorStyle.Render(ui.SymbolFail), results.Summary())

		if fixable := results.Fixable(); fixable > 0 && !doctorFix {
			fmt.Println()
			fmt.Printf("  Run with %s to attempt automatic fixes where possible.\n",
				mutedStyle.Render("--fix"))
		}
	}

	fmt.Println()
	return nil
}
