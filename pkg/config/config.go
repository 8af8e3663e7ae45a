// Package config loads server configuration from an optional YAML file
// with environment variable overrides and validated defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Screenshots ScreenshotConfig  `yaml:"screenshots"`
	Security    SecurityConfig    `yaml:"security"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
}

// ServerConfig identifies the server to MCP clients.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LoggingConfig controls the rotating log file and verbosity.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// File is the log file path. Rotated by size.
	File string `yaml:"file"`

	// MaxSizeMB is the size at which the log file rotates.
	MaxSizeMB int `yaml:"max_size_mb"`

	// Backups is the number of rotated files to keep.
	Backups int `yaml:"backups"`

	// Console mirrors log records to stderr. Stdout is never used: it
	// carries the MCP transport.
	Console bool `yaml:"console"`
}

// PerformanceConfig bounds timeouts and concurrent sessions.
type PerformanceConfig struct {
	// DefaultTimeoutMS is the wait timeout applied when an operation
	// supplies none.
	DefaultTimeoutMS int `yaml:"default_timeout_ms"`

	// MaxSessions caps concurrently open browser sessions.
	MaxSessions int `yaml:"max_sessions"`
}

// ScreenshotConfig controls where screenshots land.
type ScreenshotConfig struct {
	Directory string `yaml:"directory"`
}

// SecurityConfig bounds file uploads.
type SecurityConfig struct {
	AllowFileUploads      bool     `yaml:"allow_file_uploads"`
	AllowedFileExtensions []string `yaml:"allowed_file_extensions"`
	MaxFileSizeMB         int      `yaml:"max_file_size_mb"`
}

// TelemetryConfig gates tracing.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Name:    "surf",
			Version: "1.0.0",
		},
		Logging: LoggingConfig{
			Level:     "info",
			File:      "surf.log",
			MaxSizeMB: 10,
			Backups:   5,
		},
		Performance: PerformanceConfig{
			DefaultTimeoutMS: 10000,
			MaxSessions:      5,
		},
		Screenshots: ScreenshotConfig{
			Directory: "screenshots",
		},
		Security: SecurityConfig{
			AllowFileUploads: true,
			AllowedFileExtensions: []string{
				".txt", ".csv", ".json", ".xml", ".pdf",
				".png", ".jpg", ".jpeg", ".gif",
			},
			MaxFileSizeMB: 10,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then SURF_* environment overrides on top. The result is
// validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv layers SURF_* environment variables over the current values.
// Unparseable numeric values are ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv("SURF_SERVER_NAME"); v != "" {
		c.Server.Name = v
	}
	if v := os.Getenv("SURF_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SURF_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SURF_LOG_CONSOLE"); v != "" {
		c.Logging.Console = isTruthy(v)
	}
	if v := os.Getenv("SURF_DEFAULT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Performance.DefaultTimeoutMS = n
		}
	}
	if v := os.Getenv("SURF_MAX_SESSIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Performance.MaxSessions = n
		}
	}
	if v := os.Getenv("SURF_SCREENSHOT_DIR"); v != "" {
		c.Screenshots.Directory = v
	}
	if v := os.Getenv("SURF_ALLOW_FILE_UPLOADS"); v != "" {
		c.Security.AllowFileUploads = isTruthy(v)
	}
	if v := os.Getenv("SURF_MAX_FILE_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Security.MaxFileSizeMB = n
		}
	}
	if v := os.Getenv("SURF_TELEMETRY"); v != "" {
		c.Telemetry.Enabled = isTruthy(v)
	}
}

// Validate rejects configurations the server cannot run with.
func (c Config) Validate() error {
	if c.Performance.DefaultTimeoutMS < 1000 {
		return fmt.Errorf("default timeout must be at least 1000ms, got %d", c.Performance.DefaultTimeoutMS)
	}
	if c.Performance.MaxSessions < 1 {
		return fmt.Errorf("max sessions must be at least 1, got %d", c.Performance.MaxSessions)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// EnsureDirectories creates the directories the server writes into.
func (c Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Screenshots.Directory, 0o755); err != nil {
		return fmt.Errorf("failed to create screenshot directory: %w", err)
	}
	if dir := filepath.Dir(c.Logging.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	return nil
}

// SlogLevel maps the configured level name onto slog's levels.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", l.Level)
	}
}

// DefaultTimeout returns the configured default wait timeout.
func (p PerformanceConfig) DefaultTimeout() time.Duration {
	return time.Duration(p.DefaultTimeoutMS) * time.Millisecond
}

// ExtensionAllowed reports whether the upload policy permits files with
// the given extension. An empty allow-list permits everything.
func (s SecurityConfig) ExtensionAllowed(ext string) bool {
	if len(s.AllowedFileExtensions) == 0 {
		return true
	}
	ext = strings.ToLower(ext)
	for _, allowed := range s.AllowedFileExtensions {
		if strings.ToLower(allowed) == ext {
			return true
		}
	}
	return false
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
