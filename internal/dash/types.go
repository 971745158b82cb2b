package dash

import "time"

// Pane identifies one dashboard panel. Each pane owns an independent polling
// loop; one slow or failing endpoint never blocks another pane.
type Pane int

const (
	PaneHealth Pane = iota
	PaneServices
	PaneChart
	PaneAlerts
	PaneLogs
	PaneConfig

	paneCount
)

// String returns the pane's identifier, used in keybinding hints and logs.
func (p Pane) String() string {
	switch p {
	case PaneHealth:
		return "health"
	case PaneServices:
		return "services"
	case PaneChart:
		return "chart"
	case PaneAlerts:
		return "alerts"
	case PaneLogs:
		return "logs"
	case PaneConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Title returns the pane's header label.
func (p Pane) Title() string {
	switch p {
	case PaneHealth:
		return "Hub"
	case PaneServices:
		return "Services"
	case PaneChart:
		return "Metrics"
	case PaneAlerts:
		return "Alerts"
	case PaneLogs:
		return "Logs"
	case PaneConfig:
		return "Config"
	default:
		return "Unknown"
	}
}

// FetchState tracks where a pane's current polling cycle stands.
type FetchState int

const (
	// FetchIdle means no fetch has been issued yet.
	FetchIdle FetchState = iota
	// FetchLoading means a fetch is in flight; existing data stays visible.
	FetchLoading
	// FetchOK means the last fetch landed.
	FetchOK
	// FetchFailed means the last fetch errored; the pane shows the error
	// and keeps polling.
	FetchFailed
)

// String returns a human-readable state label.
func (s FetchState) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchOK:
		return "ok"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// paneState is the per-pane polling bookkeeping. The generation counter
// stamps every fetch and tick; responses and ticks carrying a stale
// generation are discarded, so a refresh or teardown can never be raced by
// an in-flight reply.
type paneState struct {
	state   FetchState
	err     string // last fetch error, empty while healthy
	gen     uint64
	lastOK  time.Time
	fetches int // completed fetch count, failures included
}

// LayoutMode is the responsive layout tier for the current terminal width.
type LayoutMode int

const (
	// LayoutMinimal (< 80 cols): hub summary and alerts only.
	LayoutMinimal LayoutMode = iota
	// LayoutCompact (80-119 cols): single column, no config pane.
	LayoutCompact
	// LayoutStandard (120-159 cols): two columns, all panes.
	LayoutStandard
	// LayoutWide (160+ cols): two columns with a wider chart.
	LayoutWide
)

// Width breakpoints for layout tiers.
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
	BreakpointWide     = 160
)

// HeightFooter is the minimum terminal height that still shows the footer.
const HeightFooter = 20

// ViewMode selects between the pane grid and the focused detail view.
type ViewMode int

const (
	ViewDash ViewMode = iota
	ViewDetail
)
