package cli

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/hearthview/hearth/internal/config"
	"github.com/hearthview/hearth/internal/dash"
	"github.com/hearthview/hearth/internal/errors"
	"github.com/hearthview/hearth/internal/logger"
)

// dashCommand starts the full-screen dashboard.
func dashCommand(metricFlag string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrInput,
			"The dashboard needs an interactive terminal",
			"Run 'hearth status --json' for scriptable output instead.")
	}

	// Keep the found path so edits to the file can be watched below.
	cfgPath, err := config.Find(Config())
	if err != nil {
		return err
	}

	var cfg *config.Config
	if cfgPath == "" {
		// No config yet is fine for a localhost hub; the doctor check
		// nudges toward 'hearth init' when something is off.
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
	}

	if metricFlag != "" {
		cfg.Dashboard.DefaultMetric = metricFlag
	}

	// The dashboard owns the terminal, so diagnostics go to a rotating
	// file next to the config instead of stderr.
	log, closeLog := sessionLogger(cfg, cfgPath)
	defer closeLog()

	model := dash.New(newClient(cfg), cfg, log).WithVersion(formatVersion(GetVersion()))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Watch the config file while the dashboard runs. Edits land as a
	// ConfigReloadedMsg; invalid edits are dropped inside Watch.
	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if cfgPath != "" {
		go func() {
			if err := config.Watch(watchCtx, cfgPath, log, func(next *config.Config) {
				if metricFlag != "" {
					next.Dashboard.DefaultMetric = metricFlag
				}
				p.Send(dash.ConfigReloadedMsg{Cfg: next})
			}); err != nil {
				log.Warn("config watch unavailable: %v", err)
			}
		}()
	}

	_, err = p.Run()
	return err
}

// sessionLogger opens the rotating dashboard log. Logging is best-effort;
// when the file cannot be opened the dashboard runs silent rather than
// scribbling over its own UI.
func sessionLogger(cfg *config.Config, cfgPath string) (logger.Logger, func()) {
	path := cfg.Log.File
	if path == "" {
		if cfgPath != "" {
			path = filepath.Join(filepath.Dir(cfgPath), "hearth.log")
		} else if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, config.GlobalConfigDir, "hearth.log")
		}
	}
	if path == "" {
		return logger.Noop(), func() {}
	}

	fl, err := logger.NewFileLogger(path)
	if err != nil {
		return logger.Noop(), func() {}
	}
	return fl, func() { _ = fl.Close() }
}
