package spitfire

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with spitfire-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithLibrary adds a library name field to the logger.
func (l *Logger) WithLibrary(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("library", name),
	}
}

// LogSave logs a save operation.
func (l *Logger) LogSave(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"library", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "library saved",
			"library", name,
			"bytes", bytes,
		)
	}
}

// LogLoad logs a load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"library", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "library loaded",
			"library", name,
			"bytes", bytes,
		)
	}
}

// LogLoadAll logs a parallel load.
func (l *Logger) LogLoadAll(ctx context.Context, count int, err error) {
	if err != nil {
		l.WarnContext(ctx, "parallel load failed",
			"requested", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "parallel load completed",
			"count", count,
		)
	}
}

// LogExport logs a text directory export.
func (l *Logger) LogExport(ctx context.Context, name, dir string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "export failed",
			"library", name,
			"dir", dir,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "library exported",
			"library", name,
			"dir", dir,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"library", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "library deleted",
			"library", name,
		)
	}
}
