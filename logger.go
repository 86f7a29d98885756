package gridview

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with gridview-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithField adds a field name to the logger.
func (l *Logger) WithField(field string) *Logger {
	return &Logger{
		Logger: l.Logger.With("field", field),
	}
}

// WithRowCount adds a row count field to the logger.
func (l *Logger) WithRowCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", count),
	}
}

// LogLoad logs a data load operation.
func (l *Logger) LogLoad(count int, appended bool, err error) {
	if err != nil {
		l.Error("load failed",
			"rows", count,
			"append", appended,
			"error", err,
		)
	} else {
		l.Debug("load completed",
			"rows", count,
			"append", appended,
		)
	}
}

// LogRecompute logs a pipeline recompute.
func (l *Logger) LogRecompute(facets Facet, visible int, duration time.Duration) {
	l.Debug("recompute completed",
		"facets", facets.String(),
		"visible", visible,
		"duration", duration,
	)
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op string, rows int, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"rows", rows,
		)
	}
}
