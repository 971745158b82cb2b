package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, CurrentConfigVersion, cfg.Version)
	assert.Equal(t, "home", cfg.Hub.Name)

	assert.Equal(t, "http://127.0.0.1:8420", cfg.Endpoints.Control)
	assert.Equal(t, "http://127.0.0.1:8421", cfg.Endpoints.Alerts)
	assert.Equal(t, "http://127.0.0.1:8422", cfg.Endpoints.Logs)
	assert.Equal(t, "http://127.0.0.1:8423", cfg.Endpoints.Config)
	assert.Equal(t, "http://127.0.0.1:8424/metrics", cfg.Endpoints.Metrics)

	assert.Equal(t, 5*time.Second, cfg.Intervals.Health)
	assert.Equal(t, 10*time.Second, cfg.Intervals.Services)
	assert.Equal(t, 30*time.Second, cfg.Intervals.Alerts)
	assert.Equal(t, 10*time.Second, cfg.Intervals.Logs)
	assert.Equal(t, 10*time.Second, cfg.Intervals.Metrics)
	assert.Equal(t, 60*time.Second, cfg.Intervals.Config)

	assert.Equal(t, 70, cfg.Thresholds.Warning)
	assert.Equal(t, 90, cfg.Thresholds.Critical)

	assert.Equal(t, 60, cfg.Dashboard.HistorySize)
	assert.Equal(t, "ingest_rate", cfg.Dashboard.DefaultMetric)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hearth.yaml")

	content := `
version: 1
hub:
  name: cabin
endpoints:
  control: http://192.168.4.2:8420
  alerts: http://192.168.4.2:8421
intervals:
  health: 2s
  alerts: 45s
thresholds:
  warning: 60
  critical: 85
dashboard:
  history_size: 120
  default_metric: queue_depth
request_timeout: 1s
`
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "cabin", cfg.Hub.Name)
	assert.Equal(t, "http://192.168.4.2:8420", cfg.Endpoints.Control)
	assert.Equal(t, "http://192.168.4.2:8421", cfg.Endpoints.Alerts)
	assert.Equal(t, 2*time.Second, cfg.Intervals.Health)
	assert.Equal(t, 45*time.Second, cfg.Intervals.Alerts)
	assert.Equal(t, 60, cfg.Thresholds.Warning)
	assert.Equal(t, 85, cfg.Thresholds.Critical)
	assert.Equal(t, 120, cfg.Dashboard.HistorySize)
	assert.Equal(t, "queue_depth", cfg.Dashboard.DefaultMetric)
	assert.Equal(t, time.Second, cfg.RequestTimeout)
}

func TestLoad_PartialFileMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hearth.yaml")

	// Only override one endpoint; everything else should keep defaults.
	content := `
version: 1
endpoints:
  logs: http://127.0.0.1:9522
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9522", cfg.Endpoints.Logs)
	assert.Equal(t, "http://127.0.0.1:8420", cfg.Endpoints.Control)
	assert.Equal(t, 5*time.Second, cfg.Intervals.Health)
	assert.Equal(t, 60, cfg.Dashboard.HistorySize)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hearth.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("version: 1\nhub:\n  name: cabin\n"), 0644))

	t.Setenv("HEARTH_HUB_NAME", "attic")
	t.Setenv("HEARTH_INTERVALS_HEALTH", "7s")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "attic", cfg.Hub.Name, "env should win over the file")
	assert.Equal(t, 7*time.Second, cfg.Intervals.Health)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/.hearth.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Config file not found")
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, ".hearth.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("endpoints: [not: a: map\n"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestFind_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1"), 0644))

	found, err := Find(path)
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFind_ExplicitNotFound(t *testing.T) {
	_, err := Find("/nonexistent/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFind_CurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1"), 0644))

	t.Chdir(dir)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}

func TestFind_GlobalFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	globalDir := filepath.Join(home, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	globalPath := filepath.Join(globalDir, GlobalConfigFile)
	require.NoError(t, os.WriteFile(globalPath, []byte("version: 1"), 0644))

	// Work from an unrelated directory with no local config.
	t.Chdir(t.TempDir())

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, globalPath, found)
}

func TestLoadOrDefault_NoConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Endpoints.Control, cfg.Endpoints.Control)
}

func TestGlobalConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path, err := GlobalConfigPath("queries.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, GlobalConfigDir, "queries.json"), path)
}
