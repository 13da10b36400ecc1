package hypercube

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with hypercube-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dimension string) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dimension),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithSource adds a source field (file, blob prefix, bucket) to the logger.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", source),
	}
}

// LogIngest logs a finished load.
func (l *Logger) LogIngest(ctx context.Context, read, skipped int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "ingest failed",
			"read", read,
			"skipped", skipped,
			"error", err,
		)
		return
	}
	if skipped > 0 {
		l.WarnContext(ctx, "ingest completed with skipped records",
			"read", read,
			"skipped", skipped,
			"duration", duration,
		)
		return
	}
	l.InfoContext(ctx, "ingest completed",
		"read", read,
		"duration", duration,
	)
}

// LogEnrich logs a calendar enrichment pass.
func (l *Logger) LogEnrich(ctx context.Context, records int, err error) {
	if err != nil {
		l.WarnContext(ctx, "enrich incomplete",
			"records", records,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "enrich completed",
			"records", records,
		)
	}
}

// LogQuery logs a cube operation.
func (l *Logger) LogQuery(ctx context.Context, op string, cells int, duration time.Duration) {
	l.DebugContext(ctx, "query completed",
		"op", op,
		"cells", cells,
		"duration", duration,
	)
}
