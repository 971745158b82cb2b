package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/chart"
	"github.com/hearthview/hearth/internal/ui"
)

// metricsCmd lists metrics or charts one of them.
var metricsCmd = &cobra.Command{
	Use:   "metrics [metric]",
	Short: "List hub metrics or chart one",
	Long: `Without arguments, list every metric the hub records with a
sparkline over the chosen window. With a metric name, draw a full
chart in the terminal.

Examples:
  hearth metrics
  hearth metrics ingest_rate
  hearth metrics queue_depth --window 6h
  hearth metrics ingest_rate --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return metricDetailCommand(args[0])
		}
		return metricsListCommand()
	},
}

var (
	metricsWindowFlag string
	metricsJSON       bool
)

func init() {
	rootCmd.AddCommand(metricsCmd)

	metricsCmd.Flags().StringVar(&metricsWindowFlag, "window", "15m", "series window (15m, 1h, 6h, 24h)")
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "output in JSON format")
}

// MetricsListOutput represents the JSON output for the metrics list.
type MetricsListOutput struct {
	Window  string       `json:"window"`
	Metrics []MetricInfo `json:"metrics"`
}

// MetricInfo is one metric's summary in the list output.
type MetricInfo struct {
	Name   string  `json:"name"`
	Unit   string  `json:"unit,omitempty"`
	Points int     `json:"points"`
	Last   float64 `json:"last,omitempty"`
	Min    float64 `json:"min,omitempty"`
	Max    float64 `json:"max,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// metricsListCommand lists every metric with a sparkline.
func metricsListCommand() error {
	window, err := ParseWindow(metricsWindowFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := commandContext(cfg)
	names, err := client.MetricNames(ctx)
	cancel()
	if err != nil {
		return err
	}

	// One series fetch per metric; a failing metric gets an error row
	// instead of sinking the whole list.
	type row struct {
		info   MetricInfo
		values []float64
	}
	rows := make([]row, 0, len(names))
	for _, name := range names {
		ctx, cancel := commandContext(cfg)
		series, err := client.Series(ctx, name, window)
		cancel()

		r := row{info: MetricInfo{Name: name}}
		if err != nil {
			r.info.Error = err.Error()
		} else if series != nil {
			r.info.Unit = series.Unit
			r.info.Points = len(series.Points)
			r.values = seriesValues(series)
			if len(r.values) > 0 {
				r.info.Last = r.values[len(r.values)-1]
				r.info.Min, r.info.Max = seriesBounds(r.values)
			}
		}
		rows = append(rows, r)
	}

	if metricsJSON {
		out := MetricsListOutput{Window: window}
		for _, r := range rows {
			out.Metrics = append(out.Metrics, r.info)
		}
		return WriteJSONSuccess(os.Stdout, out)
	}

	if len(rows) == 0 {
		fmt.Println("The hub reports no metrics.")
		return nil
	}

	muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	errStyle := lipgloss.NewStyle().Foreground(ui.ColorError)

	fmt.Printf("Metrics over the last %s:\n\n", window)
	for _, r := range rows {
		if r.info.Error != "" {
			fmt.Printf("  %-24s %s\n", r.info.Name, errStyle.Render("unavailable"))
			continue
		}
		spark := ui.RenderSparkline(r.values, 24, cfg.Thresholds.Warning, cfg.Thresholds.Critical)
		last := chart.FormatValue(r.info.Last)
		if r.info.Unit != "" {
			last += " " + r.info.Unit
		}
		fmt.Printf("  %-24s %s  %s\n", r.info.Name, spark, muted.Render(last))
	}
	return nil
}

// metricDetailCommand draws one metric as a full terminal chart.
func metricDetailCommand(name string) error {
	window, err := ParseWindow(metricsWindowFlag)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client := newClient(cfg)

	ctx, cancel := commandContext(cfg)
	defer cancel()
	series, err := client.Series(ctx, name, window)
	if err != nil {
		return err
	}

	if metricsJSON {
		return WriteJSONSuccess(os.Stdout, series)
	}

	values := seriesValues(series)

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}
	if width > 120 {
		width = 120
	}

	title := name
	if series != nil && series.Unit != "" {
		title += " (" + series.Unit + ")"
	}
	fmt.Println(lipgloss.NewStyle().Bold(true).Render(title))

	fmt.Println(chart.Render(values, chart.Options{
		Width:       width,
		Height:      14,
		Mode:        chart.ModeLine,
		Color:       ui.ColorInfo,
		Axis:        ui.ColorMuted,
		GridLines:   2,
		YLabels:     true,
		XLabelLeft:  "-" + window,
		XLabelRight: "now",
		Placeholder: "no data in this window",
	}))

	if len(values) > 0 {
		min, max := seriesBounds(values)
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Println(muted.Render(fmt.Sprintf("%d points  min %s  max %s  last %s",
			len(values), chart.FormatValue(min), chart.FormatValue(max),
			chart.FormatValue(values[len(values)-1]))))
	}
	return nil
}

// seriesValues extracts the value column in arrival order.
func seriesValues(s *api.Series) []float64 {
	if s == nil {
		return nil
	}
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}
	return values
}

// seriesBounds returns the min and max of a non-empty value slice.
func seriesBounds(values []float64) (min, max float64) {
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
