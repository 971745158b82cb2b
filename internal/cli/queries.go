package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/query"
	"github.com/hearthview/hearth/internal/ui"
	"github.com/hearthview/hearth/internal/util"
)

// queriesCmd lists saved queries.
var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "Manage saved alert and log queries",
	Long: `List, save, and share named filters for the alerts and logs
commands. Saved queries live in ` + "`~/.config/hearth/queries.json`" + ` and
apply with --query on 'hearth alerts', 'hearth logs', and the dashboard.

Examples:
  hearth queries
  hearth queries save night-watch --kind alerts --severity critical
  hearth queries rm night-watch
  hearth queries export > team-queries.json
  hearth queries import team-queries.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return queriesListCommand()
	},
}

var queriesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a named query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return queriesSaveCommand(args[0])
	},
}

var queriesRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a saved query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return queriesRmCommand(args[0])
	},
}

var queriesExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export saved queries as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := ""
		if len(args) == 1 {
			target = args[0]
		}
		return queriesExportCommand(target)
	},
}

var queriesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import saved queries from JSON",
	Long: `Merge queries from an export file into the local store. Existing
names win unless --replace is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return queriesImportCommand(args[0])
	},
}

var (
	queriesJSON   bool
	saveKindFlag  string
	saveFilters   FilterFlags
	importReplace bool
)

func init() {
	rootCmd.AddCommand(queriesCmd)
	queriesCmd.AddCommand(queriesSaveCmd)
	queriesCmd.AddCommand(queriesRmCmd)
	queriesCmd.AddCommand(queriesExportCmd)
	queriesCmd.AddCommand(queriesImportCmd)

	queriesCmd.Flags().BoolVar(&queriesJSON, "json", false, "output in JSON format")

	queriesSaveCmd.Flags().StringVar(&saveKindFlag, "kind", query.KindAlerts, "what the query filters (alerts or logs)")
	queriesSaveCmd.Flags().StringVar(&saveFilters.Severity, "severity", "", "alert severity to match")
	queriesSaveCmd.Flags().StringVar(&saveFilters.Level, "level", "", "log level to match")
	queriesSaveCmd.Flags().StringVar(&saveFilters.Service, "service", "", "service name to match")
	queriesSaveCmd.Flags().StringVar(&saveFilters.Text, "text", "", "message substring to match")

	queriesImportCmd.Flags().BoolVar(&importReplace, "replace", false, "overwrite queries with the same name")
}

// queriesListCommand lists every saved query.
func queriesListCommand() error {
	store, err := query.NewStore()
	if err != nil {
		return err
	}
	queries, err := store.List()
	if err != nil {
		return err
	}

	if queriesJSON {
		return WriteJSONSuccess(os.Stdout, map[string]interface{}{"queries": queries})
	}

	fmt.Println(ui.RenderQueryTable(queries))
	if len(queries) > 0 {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Println()
		fmt.Println(muted.Render(fmt.Sprintf("%d %s in %s",
			len(queries), util.Pluralize(len(queries), "query", "queries"), store.Path())))
	}
	return nil
}

// queriesSaveCommand validates and stores one query.
func queriesSaveCommand(name string) error {
	q, err := buildSavedQuery(name, saveKindFlag, saveFilters)
	if err != nil {
		return err
	}

	store, err := query.NewStore()
	if err != nil {
		return err
	}
	if err := store.Save(q); err != nil {
		return err
	}

	okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Printf("%s Saved '%s'\n", okStyle.Render(ui.SymbolSuccess), name)
	fmt.Printf("  Apply it with: hearth %s --query %s\n", q.Kind, name)
	return nil
}

// buildSavedQuery assembles and validates a saved query from flag values.
func buildSavedQuery(name, kind string, f FilterFlags) (query.SavedQuery, error) {
	q := query.SavedQuery{
		Name:      name,
		Kind:      kind,
		Severity:  f.Severity,
		Level:     f.Level,
		Service:   f.Service,
		Text:      f.Text,
		CreatedAt: time.Now().UTC(),
	}

	if err := ValidateSeverity(q.Severity); err != nil {
		return q, err
	}
	if err := ValidateLevel(q.Level); err != nil {
		return q, err
	}

	// Cross-kind fields are almost certainly a mixed-up flag.
	if q.Kind == query.KindAlerts && q.Level != "" {
		return q, errors.New(errors.ErrInput,
			"--level doesn't apply to an alerts query",
			"Use --severity for alerts, or --kind logs.")
	}
	if q.Kind == query.KindLogs && q.Severity != "" {
		return q, errors.New(errors.ErrInput,
			"--severity doesn't apply to a logs query",
			"Use --level for logs, or --kind alerts.")
	}

	return q, q.Validate()
}

// queriesRmCommand removes one saved query.
func queriesRmCommand(name string) error {
	store, err := query.NewStore()
	if err != nil {
		return err
	}
	if err := store.Remove(name); err != nil {
		return err
	}

	okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Printf("%s Removed '%s'\n", okStyle.Render(ui.SymbolSuccess), name)
	return nil
}

// queriesExportCommand writes the store to a file or stdout.
func queriesExportCommand(target string) error {
	store, err := query.NewStore()
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if target != "" {
		f, err := os.Create(target)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrQuery,
				"Cannot write "+target,
				"Check the path and directory permissions.")
		}
		defer f.Close()
		w = f
	}

	if err := store.Export(w); err != nil {
		return err
	}

	if target != "" {
		okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
		fmt.Printf("%s Exported to %s\n", okStyle.Render(ui.SymbolSuccess), target)
	}
	return nil
}

// queriesImportCommand merges queries from an export file.
func queriesImportCommand(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrQuery,
			"Cannot read "+path,
			"Check the path; exports come from 'hearth queries export'.")
	}
	defer f.Close()

	store, err := query.NewStore()
	if err != nil {
		return err
	}

	added, err := store.Import(f, importReplace)
	if err != nil {
		return err
	}

	okStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	fmt.Printf("%s Imported %d %s\n", okStyle.Render(ui.SymbolSuccess),
		added, util.Pluralize(added, "query", "queries"))
	if !importReplace {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Println(muted.Render("  Existing names were kept; use --replace to overwrite."))
	}
	return nil
}
