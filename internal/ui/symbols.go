package ui

import "github.com/hearthview/hearth/internal/api"

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Check passed, alert acked
	SymbolFail     = "✗" // Check or service failed
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress / starting
	SymbolComplete = "●" // Running / healthy
	SymbolSkipped  = "⊘" // Skipped
)

// StateSymbol maps a service state to its indicator symbol.
func StateSymbol(state string) string {
	switch state {
	case api.StateRunning:
		return SymbolComplete
	case api.StateStarting:
		return SymbolProgress
	case api.StateStopped:
		return SymbolPending
	case api.StateFailed:
		return SymbolFail
	default:
		return SymbolPending
	}
}

// SeveritySymbol maps an alert severity to its indicator symbol.
func SeveritySymbol(severity string) string {
	switch severity {
	case api.SeverityCritical:
		return SymbolFail
	case api.SeverityWarning:
		return "!"
	default:
		return SymbolComplete
	}
}
