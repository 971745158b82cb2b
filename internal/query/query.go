// Package query holds saved alert/log queries and the pure filters they
// compile into. Filters never touch the network: they run over the most
// recently fetched collection and preserve its order.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/hearthview/hearth/internal/api"
	"github.com/hearthview/hearth/internal/errors"
)

// Query kinds.
const (
	KindAlerts = "alerts"
	KindLogs   = "logs"
)

// SavedQuery is a named filter a user keeps around. Kind decides which
// collection it applies to; unused fields stay empty.
type SavedQuery struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Severity  string    `json:"severity,omitempty"`
	Level     string    `json:"level,omitempty"`
	Service   string    `json:"service,omitempty"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the query can be stored and later applied.
func (q SavedQuery) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return errors.New(errors.ErrQuery,
			"Saved query has no name",
			"Give it one: 'hearth queries save <name> ...'")
	}
	if q.Kind != KindAlerts && q.Kind != KindLogs {
		return errors.New(errors.ErrQuery,
			"Saved query kind must be 'alerts' or 'logs', got '"+q.Kind+"'",
			"Check the --kind flag")
	}
	return nil
}

// AlertFilter applies to SavedQuery with Kind == KindAlerts.
func (q SavedQuery) AlertFilter() AlertFilter {
	return AlertFilter{Severity: q.Severity, Service: q.Service, Text: q.Text}
}

// LogFilter applies to SavedQuery with Kind == KindLogs.
func (q SavedQuery) LogFilter() LogFilter {
	return LogFilter{Level: q.Level, Service: q.Service, Text: q.Text}
}

// AlertFilter selects alerts by exact severity/service match and
// case-insensitive text search. Zero fields match everything.
type AlertFilter struct {
	Severity    string
	Service     string
	Text        string
	UnackedOnly bool
}

// Apply returns the alerts matching the filter, in their original order.
// The input slice is never modified.
func (f AlertFilter) Apply(alerts []api.Alert) []api.Alert {
	if f.isZero() {
		return alerts
	}

	out := make([]api.Alert, 0, len(alerts))
	for _, a := range alerts {
		if f.matches(a) {
			out = append(out, a)
		}
	}
	return out
}

func (f AlertFilter) isZero() bool {
	return f.Severity == "" && f.Service == "" && f.Text == "" && !f.UnackedOnly
}

func (f AlertFilter) matches(a api.Alert) bool {
	if f.Severity != "" && a.Severity != f.Severity {
		return false
	}
	if f.Service != "" && a.Service != f.Service {
		return false
	}
	if f.UnackedOnly && a.Acked {
		return false
	}
	if f.Text != "" {
		needle := strings.ToLower(f.Text)
		if !strings.Contains(strings.ToLower(a.Message), needle) &&
			!strings.Contains(strings.ToLower(a.Source), needle) {
			return false
		}
	}
	return true
}

// LogFilter selects log entries by exact level/service match and
// case-insensitive text search. Zero fields match everything.
type LogFilter struct {
	Level   string
	Service string
	Text    string
}

// Apply returns the entries matching the filter, in their original order.
// The input slice is never modified.
func (f LogFilter) Apply(entries []api.LogEntry) []api.LogEntry {
	if f.Level == "" && f.Service == "" && f.Text == "" {
		return entries
	}

	out := make([]api.LogEntry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f LogFilter) matches(e api.LogEntry) bool {
	if f.Level != "" && e.Level != f.Level {
		return false
	}
	if f.Service != "" && e.Service != f.Service {
		return false
	}
	if f.Text != "" && !strings.Contains(strings.ToLower(e.Message), strings.ToLower(f.Text)) {
		return false
	}
	return true
}

// severityRank orders severities for display, most urgent first.
var severityRank = map[string]int{
	api.SeverityCritical: 0,
	api.SeverityWarning:  1,
	api.SeverityInfo:     2,
}

// SortBySeverity returns a copy of alerts ordered critical first. Alerts
// sharing a severity keep their original relative order.
func SortBySeverity(alerts []api.Alert) []api.Alert {
	out := make([]api.Alert, len(alerts))
	copy(out, alerts)
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i].Severity) < rankOf(out[j].Severity)
	})
	return out
}

func rankOf(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return len(severityRank)
}
