package saveppm

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with saveppm-specific helpers.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, nil))
}

// WithStore adds a store field to the logger.
func (l *Logger) WithStore(store string) *Logger {
	return &Logger{
		Logger: l.Logger.With("store", store),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, bytes int64, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "image save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "image saved",
			"name", name,
			"bytes", bytes,
			"duration", duration,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "image load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "image loaded",
			"name", name,
		)
	}
}
