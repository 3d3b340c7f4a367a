// Package logging builds the slog.Logger used by the commands and the server.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/etnz/wealth/internal/config"
)

// New builds a slog.Logger writing to stderr according to cfg.
func New(cfg config.LoggingConfig) *slog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter builds a slog.Logger writing to w.
//
// The json format uses the standard JSON handler; text uses tint when colors
// are enabled and the standard text handler otherwise.
func NewWithWriter(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	switch {
	case strings.EqualFold(cfg.Format, "json"):
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case cfg.Colored:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}

// Setup installs the logger built from cfg as the slog default.
func Setup(cfg config.LoggingConfig) *slog.Logger {
	logger := New(cfg)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel reads a level name, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
