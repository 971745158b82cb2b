package dash

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding is a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpSection groups related shortcuts under one heading in the overlay.
type helpSection struct {
	Title    string
	Bindings []HelpBinding
}

// helpSections mirrors handleKey. A shortcut that only works with a
// particular pane focused sits under that pane's heading.
var helpSections = []helpSection{
	{
		Title: "Global",
		Bindings: []HelpBinding{
			{Key: "q / Ctrl+C", Desc: "Quit"},
			{Key: "r", Desc: "Refresh all panes now"},
			{Key: "p", Desc: "Pause or resume polling"},
			{Key: "?", Desc: "Toggle this help"},
		},
	},
	{
		Title: "Focus",
		Bindings: []HelpBinding{
			{Key: "Tab / Shift+Tab", Desc: "Move focus between panes"},
			{Key: "1-6", Desc: "Jump straight to a pane"},
			{Key: "j / down, k / up", Desc: "Move the row cursor"},
			{Key: "g / Home, G / End", Desc: "First or last row"},
			{Key: "Enter", Desc: "Expand the focused pane"},
			{Key: "Esc", Desc: "Close help or detail"},
		},
	},
	{
		Title: "Alerts",
		Bindings: []HelpBinding{
			{Key: "f", Desc: "Cycle the severity filter"},
			{Key: "u", Desc: "Show unacked alerts only"},
			{Key: "a", Desc: "Acknowledge the selected alert"},
		},
	},
	{
		Title: "Chart",
		Bindings: []HelpBinding{
			{Key: "m / M", Desc: "Next or previous metric"},
			{Key: "w", Desc: "Cycle the time window"},
			{Key: "c", Desc: "Cycle the chart mode"},
			{Key: "h / left, l / right", Desc: "Walk the chart points"},
		},
	},
	{
		Title: "Logs & Config",
		Bindings: []HelpBinding{
			{Key: "f / L", Desc: "Cycle the log level filter"},
			{Key: "v", Desc: "Reveal or mask config values"},
		},
	},
}

var (
	helpFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurface).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	helpSectionStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(20)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// renderHelpOverlay draws the shortcut reference centered over a blank
// screen. It replaces the grid entirely rather than floating above it.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, sec := range helpSections {
		b.WriteString("\n")
		b.WriteString(helpSectionStyle.Render(sec.Title))
		b.WriteString("\n")
		for _, bind := range sec.Bindings {
			b.WriteString(helpKeyStyle.Render(bind.Key))
			b.WriteString(helpDescStyle.Render(bind.Desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Press ? or Esc to close"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpFrameStyle.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorBg),
	)
}
