package doctor

import (
	"os"
	"strings"
)

// TerminalCheck verifies the terminal can host the full-screen dashboard.
type TerminalCheck struct{}

func (c *TerminalCheck) Name() string     { return "terminal" }
func (c *TerminalCheck) Category() string { return "TERMINAL" }
func (c *TerminalCheck) Fix() error       { return nil }

func (c *TerminalCheck) Run() CheckResult {
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "TERM is empty or 'dumb'",
			Suggestion: "'hearth dash' needs an interactive terminal; one-shot commands still work",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "terminal type " + term,
	}
}

// LocaleCheck verifies the locale is UTF-8. Charts draw with braille glyphs,
// which degrade to mojibake under a non-UTF-8 locale.
type LocaleCheck struct{}

func (c *LocaleCheck) Name() string     { return "locale" }
func (c *LocaleCheck) Category() string { return "TERMINAL" }
func (c *LocaleCheck) Fix() error       { return nil }

func (c *LocaleCheck) Run() CheckResult {
	locale := firstNonEmpty(os.Getenv("LC_ALL"), os.Getenv("LC_CTYPE"), os.Getenv("LANG"))
	if locale == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No locale set (LC_ALL, LC_CTYPE, and LANG are all empty)",
			Suggestion: "export LANG=en_US.UTF-8 so charts render correctly",
		}
	}

	upper := strings.ToUpper(locale)
	if !strings.Contains(upper, "UTF-8") && !strings.Contains(upper, "UTF8") {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "Locale " + locale + " is not UTF-8",
			Suggestion: "Charts use braille glyphs; switch to a UTF-8 locale to see them",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "locale " + locale,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
