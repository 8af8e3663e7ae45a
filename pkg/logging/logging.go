// Package logging constructs the server's structured logger.
//
// Records are JSON-encoded into a size-rotated file, optionally mirrored
// to stderr. Stdout is never written: it carries the MCP transport.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/entrhq/surf/pkg/config"
)

// New builds a slog.Logger from the logging configuration. The level must
// already be validated; invalid levels fall back to info.
func New(cfg config.LoggingConfig) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}

	var w io.Writer = &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.Backups,
	}
	if cfg.Console {
		w = io.MultiWriter(w, os.Stderr)
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
