package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HeaderInfo contains information to display in the header.
type HeaderInfo struct {
	Version string // Version string (e.g., "v0.3.0")
	Hub     string // Hub name from the config
	Status  string // Hub health status, empty to omit
}

// HeaderWidth is the default width of the header divider
const HeaderWidth = 50

// RenderHeader renders the one-shot command banner: product, version, hub.
func RenderHeader(info HeaderInfo) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	versionStyle := lipgloss.NewStyle().
		Foreground(ColorInfo)

	mutedStyle := lipgloss.NewStyle().
		Foreground(ColorMuted)

	var output strings.Builder

	output.WriteString(titleStyle.Render("hearth"))
	output.WriteString(" ")
	output.WriteString(versionStyle.Render(info.Version))
	if info.Hub != "" {
		output.WriteString(mutedStyle.Render(" · hub " + info.Hub))
	}
	if info.Status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(HealthColor(info.Status))
		output.WriteString(" ")
		output.WriteString(statusStyle.Render(info.Status))
	}
	output.WriteString("\n")

	output.WriteString(mutedStyle.Render(strings.Repeat("─", HeaderWidth)))
	output.WriteString("\n")

	return output.String()
}

// PrintHeader prints the styled header to stdout.
func PrintHeader(info HeaderInfo) {
	fmt.Print(RenderHeader(info))
}
