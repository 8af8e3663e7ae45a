package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "surf", cfg.Server.Name)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "surf.log", cfg.Logging.File)
	assert.Equal(t, 10, cfg.Logging.MaxSizeMB)
	assert.Equal(t, 5, cfg.Logging.Backups)
	assert.Equal(t, 10000, cfg.Performance.DefaultTimeoutMS)
	assert.Equal(t, 5, cfg.Performance.MaxSessions)
	assert.Equal(t, "screenshots", cfg.Screenshots.Directory)
	assert.True(t, cfg.Security.AllowFileUploads)
	assert.False(t, cfg.Telemetry.Enabled)

	require.NoError(t, cfg.Validate())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  name: surf-staging
logging:
  level: debug
  console: true
performance:
  default_timeout_ms: 20000
  max_sessions: 2
screenshots:
  directory: /tmp/shots
telemetry:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "surf-staging", cfg.Server.Name)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
	assert.Equal(t, 20000, cfg.Performance.DefaultTimeoutMS)
	assert.Equal(t, 2, cfg.Performance.MaxSessions)
	assert.Equal(t, "/tmp/shots", cfg.Screenshots.Directory)
	assert.True(t, cfg.Telemetry.Enabled)

	// Unset sections keep their defaults.
	assert.Equal(t, "surf.log", cfg.Logging.File)
	assert.True(t, cfg.Security.AllowFileUploads)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("SURF_LOG_LEVEL", "warn")
	t.Setenv("SURF_DEFAULT_TIMEOUT", "15000")
	t.Setenv("SURF_MAX_SESSIONS", "3")
	t.Setenv("SURF_SCREENSHOT_DIR", "captures")
	t.Setenv("SURF_ALLOW_FILE_UPLOADS", "false")
	t.Setenv("SURF_TELEMETRY", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 15000, cfg.Performance.DefaultTimeoutMS)
	assert.Equal(t, 3, cfg.Performance.MaxSessions)
	assert.Equal(t, "captures", cfg.Screenshots.Directory)
	assert.False(t, cfg.Security.AllowFileUploads)
	assert.True(t, cfg.Telemetry.Enabled)
}

func TestEnvironmentOverridesIgnoreBadNumbers(t *testing.T) {
	t.Setenv("SURF_MAX_SESSIONS", "many")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Performance.MaxSessions)
}

func TestEnvironmentOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("performance:\n  max_sessions: 2\n"), 0o644))
	t.Setenv("SURF_MAX_SESSIONS", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Performance.MaxSessions)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{name: "timeout below the floor", mutate: func(c *Config) { c.Performance.DefaultTimeoutMS = 500 }, wantErr: true},
		{name: "zero sessions", mutate: func(c *Config) { c.Performance.MaxSessions = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "info", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
		{input: "WARN", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		level, err := LoggingConfig{Level: tt.input}.SlogLevel()
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, level, tt.input)
	}
}

func TestDefaultTimeoutDuration(t *testing.T) {
	cfg := PerformanceConfig{DefaultTimeoutMS: 2500}
	assert.Equal(t, 2500*time.Millisecond, cfg.DefaultTimeout())
}

func TestExtensionAllowed(t *testing.T) {
	sec := Default().Security
	assert.True(t, sec.ExtensionAllowed(".txt"))
	assert.True(t, sec.ExtensionAllowed(".PNG"))
	assert.False(t, sec.ExtensionAllowed(".exe"))

	open := SecurityConfig{}
	assert.True(t, open.ExtensionAllowed(".anything"))
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Screenshots.Directory = filepath.Join(dir, "shots")
	cfg.Logging.File = filepath.Join(dir, "logs", "surf.log")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.Screenshots.Directory)
	assert.DirExists(t, filepath.Join(dir, "logs"))
}
