package graphkeep

import (
	"log/slog"
	"os"

	"github.com/hupe1980/graphkeep/core"
)

// Logger wraps slog.Logger with graphkeep-specific fields.
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

// WithKey adds a key field to the logger.
func (l *Logger) WithKey(k core.AnyKey) *Logger {
	return &Logger{
		Logger: l.Logger.With("key", k.String()),
	}
}

// WithType adds an item type field to the logger.
func (l *Logger) WithType(ty core.TypeID) *Logger {
	return &Logger{
		Logger: l.Logger.With("type", ty.String()),
	}
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(ty core.TypeID, k core.AnyKey, links int, err error) {
	if err != nil {
		l.Error("add failed",
			"type", ty.String(),
			"error", err,
		)
	} else {
		l.Debug("add completed",
			"key", k.String(),
			"links", links,
		)
	}
}

// LogRemove logs a remove operation and its cascade.
func (l *Logger) LogRemove(k core.AnyKey, removed, notified int, err error) {
	if err != nil {
		l.Error("remove failed",
			"key", k.String(),
			"error", err,
		)
	} else {
		l.Debug("remove completed",
			"key", k.String(),
			"removed", removed,
			"notified", notified,
		)
	}
}

// LogMutate logs a mutate operation.
func (l *Logger) LogMutate(k core.AnyKey, relinked bool, err error) {
	if err != nil {
		l.Warn("mutate rejected",
			"key", k.String(),
			"error", err,
		)
	} else {
		l.Debug("mutate completed",
			"key", k.String(),
			"relinked", relinked,
		)
	}
}

// LogCompact logs a compaction.
func (l *Logger) LogCompact(live, moved, notified int) {
	l.Info("compaction completed",
		"live", live,
		"moved", moved,
		"notified", notified,
	)
}

// LogIntegrity logs a reference integrity violation right before it panics.
func (l *Logger) LogIntegrity(err *core.IntegrityError) {
	l.Error("integrity violation",
		"op", err.Op,
		"key", err.Key.String(),
		"error", err,
	)
}
