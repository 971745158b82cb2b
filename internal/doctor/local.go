package doctor

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/query"
	"github.com/hearthview/hearth/internal/util"
)

// ConfigFileCheck verifies a config file exists and holds a valid config.
// Path carries the --config flag value; empty means the usual search order.
type ConfigFileCheck struct {
	Path string
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return "CONFIG" }

func (c *ConfigFileCheck) Run() CheckResult {
	path, err := config.Find(c.Path)
	if err != nil {
		// Only an explicit --config path errors here.
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    errors.Message(err),
			Suggestion: "Check the --config path",
		}
	}
	if path == "" {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    "No config file found, running on defaults",
			Suggestion: "Run 'hearth init' to write one",
			Fixable:    true,
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot load %s: %s", path, errors.Message(err)),
			Suggestion: "Fix the YAML or regenerate with 'hearth init'",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Config at %s is invalid: %s", path, errors.Message(err)),
			Suggestion: "Run 'hearth init' to start from working values",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Config valid: " + path,
	}
}

// Fix writes a default config to the global location when none exists.
func (c *ConfigFileCheck) Fix() error {
	found, err := config.Find(c.Path)
	if err != nil {
		return err
	}
	if found != "" {
		return nil
	}

	path, err := config.GlobalConfigPath(config.GlobalConfigFile)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LocalChecks builds the checks that never touch the network.
func LocalChecks(configPath string, store *query.Store) []Check {
	return []Check{
		&ConfigFileCheck{Path: configPath},
		&QueryStoreCheck{Store: store},
		&TerminalCheck{},
		&LocaleCheck{},
	}
}

// QueryStoreCheck verifies the saved-queries file is readable.
type QueryStoreCheck struct {
	Store *query.Store
}

func (c *QueryStoreCheck) Name() string     { return "query_store" }
func (c *QueryStoreCheck) Category() string { return "QUERIES" }
func (c *QueryStoreCheck) Fix() error       { return nil }

func (c *QueryStoreCheck) Run() CheckResult {
	queries, err := c.Store.List()
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    "Saved queries unreadable: " + errors.Message(err),
			Suggestion: "Fix or delete " + c.Store.Path(),
		}
	}

	if len(queries) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No saved queries yet",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%d saved %s", len(queries),
			util.Pluralize(len(queries), "query", "queries")),
	}
}
