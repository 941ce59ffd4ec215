package config

import (
	"io"
	"log/slog"
	"strings"
)

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

var logLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// NewLogger creates a structured text logger writing to w.
func (c LoggerConfig) NewLogger(w io.Writer) *slog.Logger {
	level := parseLogLevel(c.Level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}))
}

// lookupLogLevel resolves a level name case-insensitively. Empty means info.
func lookupLogLevel(level string) (slog.Level, bool) {
	if level == "" {
		return slog.LevelInfo, true
	}
	l, ok := logLevels[strings.ToLower(level)]
	return l, ok
}

func parseLogLevel(level string) slog.Level {
	if l, ok := lookupLogLevel(level); ok {
		return l
	}
	return slog.LevelInfo
}
