package docgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with docgo-specific context.
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

// WithQuery adds a query canonical-ID field to the logger.
func (l *Logger) WithQuery(canonicalID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("query", canonicalID),
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

// LogExecute logs a query execution against a snapshot.
func (l *Logger) LogExecute(ctx context.Context, canonicalID string, matched int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "execute failed",
			"query", canonicalID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "execute completed",
			"query", canonicalID,
			"matched", matched,
		)
	}
}

// LogReevaluate logs a single-document membership re-evaluation.
func (l *Logger) LogReevaluate(ctx context.Context, canonicalID string, matched bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "reevaluate failed",
			"query", canonicalID,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "reevaluate completed",
			"query", canonicalID,
			"matched", matched,
		)
	}
}
