package glyphs

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with glyphs-specific context.
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

// WithGodel adds a godel field to the logger.
func (l *Logger) WithGodel(godel uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("godel", godel),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogEncode logs a forward transform.
func (l *Logger) LogEncode(ctx context.Context, t Triple, glyphs string) {
	l.DebugContext(ctx, "encode completed",
		"godel", t.Godel,
		"curve", t.Curve,
		"band", t.Band,
		"glyphs", glyphs,
	)
}

// LogDecode logs a reverse transform. Symbols outside the alphabet are
// reported at warn level.
func (l *Logger) LogDecode(ctx context.Context, length, missing int, t Triple) {
	if missing > 0 {
		l.WarnContext(ctx, "decode completed with unknown symbols",
			"length", length,
			"missing", missing,
			"godel", t.Godel,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"length", length,
			"godel", t.Godel,
		)
	}
}

// LogExtract logs a field extraction.
func (l *Logger) LogExtract(ctx context.Context, t Triple, err error) {
	if err != nil {
		l.ErrorContext(ctx, "extract failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "extract completed",
			"godel", t.Godel,
			"curve", t.Curve,
			"band", t.Band,
		)
	}
}

// LogBatch logs a batch encode.
func (l *Logger) LogBatch(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch encode failed",
			"count", count,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch encode completed",
			"count", count,
		)
	}
}
