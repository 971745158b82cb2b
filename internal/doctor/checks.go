package doctor

import (
	"fmt"
	"sync"
	"time"
)

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// CheckResult contains the outcome of running a check. LatencyMS is stamped
// by the runners, not the checks; for endpoint probes it doubles as a rough
// reachability latency.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Fixable    bool        `json:"fixable,omitempty"` // Whether --fix can address this
	LatencyMS  int64       `json:"latency_ms,omitempty"`
}

// Check defines the interface for diagnostic checks.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns the check's category (e.g., "ENDPOINTS", "CONFIG").
	Category() string

	// Run executes the check and returns the result.
	Run() CheckResult

	// Fix attempts to automatically fix the issue (if supported).
	// Returns nil if fix was successful or not applicable.
	Fix() error
}

// Results is an ordered set of check outcomes, one per check run.
type Results []CheckResult

// RunAll executes all checks sequentially and returns the results.
func RunAll(checks []Check) Results {
	results := make(Results, len(checks))
	for i, check := range checks {
		results[i] = timedRun(check)
	}
	return results
}

// RunAllParallel executes all checks in parallel and returns the results
// in the original order. Endpoint probes dominate doctor's runtime, so
// running them together keeps the command snappy.
func RunAllParallel(checks []Check) Results {
	results := make(Results, len(checks))
	var wg sync.WaitGroup

	for i, check := range checks {
		wg.Add(1)
		go func(idx int, c Check) {
			defer wg.Done()
			results[idx] = timedRun(c)
		}(i, check)
	}

	wg.Wait()
	return results
}

func timedRun(c Check) CheckResult {
	start := time.Now()
	r := c.Run()
	r.LatencyMS = time.Since(start).Milliseconds()
	return r
}

// CategoryGroup pairs a category with the results of its checks.
type CategoryGroup struct {
	Category string  `json:"category"`
	Results  Results `json:"results"`
}

// ByCategory groups results by their check's category, categories in
// first-seen order. checks and results must be parallel slices as produced
// by the runners.
func ByCategory(checks []Check, results Results) []CategoryGroup {
	idx := make(map[string]int)
	var groups []CategoryGroup

	for i, check := range checks {
		cat := check.Category()
		at, seen := idx[cat]
		if !seen {
			at = len(groups)
			idx[cat] = at
			groups = append(groups, CategoryGroup{Category: cat})
		}
		groups[at].Results = append(groups[at].Results, results[i])
	}
	return groups
}

// Counts tallies results by status.
func (rs Results) Counts() map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range rs {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func (rs Results) HasFailures() bool {
	for _, r := range rs {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func (rs Results) HasIssues() bool {
	for _, r := range rs {
		if r.Status == StatusFail || r.Status == StatusWarn {
			return true
		}
	}
	return false
}

// Fixable returns the number of issues that --fix could attempt.
func (rs Results) Fixable() int {
	count := 0
	for _, r := range rs {
		if r.Fixable && (r.Status == StatusFail || r.Status == StatusWarn) {
			count++
		}
	}
	return count
}

// Summary returns a one-line digest of the results.
func (rs Results) Summary() string {
	counts := rs.Counts()
	warn := counts[StatusWarn]
	fail := counts[StatusFail]

	if fail == 0 && warn == 0 {
		return "Everything looks good"
	}

	total := warn + fail
	return fmt.Sprintf("%d issue%s found", total, pluralize(total))
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
