// Package logging provides structured logging configuration using log/slog.
//
// Parse operations carry a UUID (the problems collector's operation ID);
// loggers returned by WithOperation include it in every entry so all log
// lines for one parse can be correlated.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// New builds a logger writing to stdout with the given level and format.
// DefaultTypeOptions uses it to turn the TABULAR_LOG_* environment
// settings into the options' Logger.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func New(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// WithOperation returns a logger that includes the parse operation ID in
// every entry. A nil logger falls back to slog.Default.
func WithOperation(logger *slog.Logger, op uuid.UUID) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("operation_id", op.String())
}

// Columns logs the resolved column specs at debug level, one compact
// name:type pair per column.
func Columns(logger *slog.Logger, specs []string) {
	if logger == nil {
		return
	}
	logger.Debug("column types resolved", "columns", strings.Join(specs, ","))
}
