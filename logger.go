package parclust

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with parclust-specific context.
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

// WithRun adds a trial index field to the logger.
func (l *Logger) WithRun(run int) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", run),
	}
}

// LogSeeding logs completion of the seeding phase.
func (l *Logger) LogSeeding(ctx context.Context, k, runs, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seeding failed",
			"k", k,
			"runs", runs,
			"points", n,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seeding completed",
			"k", k,
			"runs", runs,
			"points", n,
		)
	}
}

// LogRefine logs completion of the refinement phase.
func (l *Logger) LogRefine(ctx context.Context, iterations int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "refinement failed",
			"iterations", iterations,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "refinement converged",
			"iterations", iterations,
		)
	}
}

// LogFit logs completion of a full clustering invocation.
func (l *Logger) LogFit(ctx context.Context, iterations, best int, cost float64) {
	l.InfoContext(ctx, "clustering completed",
		"iterations", iterations,
		"best_run", best,
		"best_cost", cost,
	)
}
