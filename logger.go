package rawmem

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with rawmem-specific context.
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

// WithAddress adds an address field to the logger.
func (l *Logger) WithAddress(addr Address) *Logger {
	return &Logger{
		Logger: l.Logger.With("addr", addr.String()),
	}
}

// WithSize adds a size field to the logger.
func (l *Logger) WithSize(size int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("size", size),
	}
}

// LogMap logs a mapping operation.
func (l *Logger) LogMap(addr Address, size int64, mode MapMode, err error) {
	if err != nil {
		l.Error("mmap failed",
			"size", size,
			"mode", mode.String(),
			"error", err,
		)
	} else {
		l.Debug("mapped region",
			"addr", addr.String(),
			"size", size,
			"mode", mode.String(),
		)
	}
}

// LogUnmap logs an unmapping operation.
func (l *Logger) LogUnmap(addr Address, size int64, err error) {
	if err != nil {
		l.Error("munmap failed",
			"addr", addr.String(),
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("unmapped region",
			"addr", addr.String(),
			"size", size,
		)
	}
}

// LogSync logs a sync of a mapped region.
func (l *Logger) LogSync(addr Address, size int64, err error) {
	if err != nil {
		l.Error("msync failed",
			"addr", addr.String(),
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("synced region",
			"addr", addr.String(),
			"size", size,
		)
	}
}

// LogLoad logs a residency hint. Failures are expected under locked
// memory limits, so they are reported at debug level.
func (l *Logger) LogLoad(addr Address, size int64, err error) {
	if err != nil {
		l.Debug("load hint ignored",
			"addr", addr.String(),
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("loaded region",
			"addr", addr.String(),
			"size", size,
		)
	}
}

// LogAlloc logs an allocation.
func (l *Logger) LogAlloc(addr Address, size int64, err error) {
	if err != nil {
		l.Error("allocation failed",
			"size", size,
			"error", err,
		)
	} else {
		l.Debug("allocated block",
			"addr", addr.String(),
			"size", size,
		)
	}
}

// LogFree logs a release of an allocation.
func (l *Logger) LogFree(addr Address, size int64) {
	l.Debug("freed block",
		"addr", addr.String(),
		"size", size,
	)
}
