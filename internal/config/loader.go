package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hearthview/hearth/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".hearth.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/hearth"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'hearth init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .hearth.yaml in current directory
// 3. .hearth.yaml in parent directories (stops at git root or home)
// 4. ~/.config/hearth/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not
// found. This is useful for commands like 'hearth init' and 'hearth doctor'
// that should work without existing config.
func LoadOrDefault() (*Config, error) {
	path, err := Find("")
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// GlobalConfigPath returns ~/.config/hearth/<name>, the fixed location for
// files hearth owns itself (saved queries, session log, global config).
func GlobalConfigPath(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine home directory",
			"Set HOME and try again")
	}
	return filepath.Join(home, GlobalConfigDir, name), nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	setDefaults(v)

	// Environment overrides: HEARTH_ENDPOINTS_ALERTS, HEARTH_HUB_NAME, etc.
	v.SetEnvPrefix("HEARTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	// Expand ~ and $HOME in the log file path
	cfg.Log.File = Expand(cfg.Log.File)

	return cfg, nil
}

// setDefaults seeds viper so partial config files merge over full defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("hub.name", "home")
	v.SetDefault("endpoints.control", "http://127.0.0.1:8420")
	v.SetDefault("endpoints.alerts", "http://127.0.0.1:8421")
	v.SetDefault("endpoints.logs", "http://127.0.0.1:8422")
	v.SetDefault("endpoints.config", "http://127.0.0.1:8423")
	v.SetDefault("endpoints.metrics", "http://127.0.0.1:8424/metrics")
	v.SetDefault("intervals.health", "5s")
	v.SetDefault("intervals.services", "10s")
	v.SetDefault("intervals.alerts", "30s")
	v.SetDefault("intervals.logs", "10s")
	v.SetDefault("intervals.metrics", "10s")
	v.SetDefault("intervals.config", "60s")
	v.SetDefault("thresholds.warning", 70)
	v.SetDefault("thresholds.critical", 90)
	v.SetDefault("dashboard.history_size", 60)
	v.SetDefault("dashboard.default_metric", "ingest_rate")
	v.SetDefault("request_timeout", "5s")
}
