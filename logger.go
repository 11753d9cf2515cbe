package cgmdust

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/cgmdust/pipeline"
)

// Logger wraps slog.Logger with cgmdust-specific fields.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithWorkers adds a workers field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// LogEstimate logs an estimate operation.
func (l *Logger) LogEstimate(ctx context.Context, lenses, sources int, stats pipeline.Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "estimate failed",
			"lenses", lenses,
			"sources", sources,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "estimate completed",
			"lenses", lenses,
			"sources", sources,
			"stats", stats,
		)
	}
}
