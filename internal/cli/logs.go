package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/query"
	"github.com/hearthview/hearth/internal/ui"
)

// logsCmd lists or follows hub logs.
var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View or follow hub logs",
	Long: `Fetch recent log entries from the log aggregator, or follow the
live tail stream with --follow.

Filters run locally in both modes, so a follow with --level error stays
quiet until something actually breaks. Ctrl+C stops following.

Examples:
  hearth logs
  hearth logs --level error --service ingestd
  hearth logs --follow
  hearth logs --query ingest-errors --follow`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return logsCommand()
	},
}

var (
	logsFilters FilterFlags
	logsLimit   int
	logsFollow  bool
	logsJSON    bool
)

func init() {
	rootCmd.AddCommand(logsCmd)

	AddLogFilterFlags(logsCmd, &logsFilters)
	logsCmd.Flags().IntVar(&logsLimit, "limit", 100, "maximum entries to fetch")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "stream new entries as they arrive")
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "output in JSON format")
}

// logsCommand implements the logs command logic.
func logsCommand() error {
	if err := ValidateLevel(logsFilters.Level); err != nil {
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
	filter, err := logsFilters.logFilter(store)
	if err != nil {
		return err
	}

	client := newClient(cfg)

	if logsFollow {
		return followLogs(client, filter)
	}

	ctx, cancel := commandContext(cfg)
	defer cancel()

	entries, err := client.Logs(ctx, logsLimit)
	if err != nil {
		return err
	}
	visible := filter.Apply(entries)

	if logsJSON {
		return WriteJSONSuccess(os.Stdout, map[string]interface{}{"entries": visible})
	}

	for _, e := range visible {
		fmt.Println(ui.RenderLogLine(e))
	}
	if len(visible) == 0 {
		fmt.Println("No log entries match.")
	}
	return nil
}

// followLogs streams the live tail until interrupted. The filter applies
// per entry; the stream itself is never narrowed server-side.
func followLogs(client *api.Client, filter query.LogFilter) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := client.Tail(ctx, func(e api.LogEntry) {
		if matched := filter.Apply([]api.LogEntry{e}); len(matched) == 0 {
			return
		}
		if logsJSON {
			_ = WriteJSONSuccess(os.Stdout, e)
			return
		}
		fmt.Println(ui.RenderLogLine(e))
	})

	// Ctrl+C is how a follow ends, not a failure.
	if ctx.Err() != nil {
		return nil
	}
	return err
}
