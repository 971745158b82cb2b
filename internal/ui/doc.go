// Package ui provides terminal output components for hearth's one-shot
// CLI commands.
//
// The package covers the styled pieces every command shares: tables for
// services, alerts, saved queries, and config fields; a spinner for slow
// operations; sparklines with threshold coloring; and the banner header.
// The full-screen dashboard has its own styling in the dash package.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Running services, passed checks
//	ColorError     (red)    - Failures, critical alerts
//	ColorWarning   (yellow) - Warnings and degraded states
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, timing info
//	ColorSecondary (blue)   - Keys and labels
//
// StateColor, SeverityColor, LevelColor, and HealthColor map the hub's
// string enums onto this palette so every command colors them the same way.
//
// # Symbols
//
// Unicode symbols provide visual status indicators:
//
//	SymbolSuccess  (checkmark)  - Check passed, alert acked
//	SymbolFail     (X)          - Check or service failed
//	SymbolPending  (circle)     - Stopped / not started
//	SymbolProgress (half-fill)  - Starting / in progress
//	SymbolComplete (filled)     - Running / healthy
//	SymbolSkipped  (slashed)    - Skipped
//
// # Spinner Usage
//
// The Spinner type provides an animated indicator for operations:
//
//	s := ui.NewSpinner("Restarting mqtt-bridge")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail() or s.Skip()
//
// The spinner handles terminal output, clearing lines, and timing display.
package ui
