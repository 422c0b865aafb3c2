package logutil

import (
	"fmt"
	"log/slog"
	"time"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns logger, or a discarding logger when logger is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// NewTimingLogger returns a closure that logs a debug message with duration when called.
// Pass in the logger, a start time, a message, and any initial fields.
//
//	defer logutil.NewTimingLogger(s.log, time.Now(), "executed sql query", "method", "ListRooms")()
func NewTimingLogger(logger *slog.Logger, start time.Time, msg string, initialFields ...any) func() {
	return func() {
		fields := append(initialFields, "duration", time.Since(start).String())
		logger.Debug(msg, fields...)
	}
}

// LogAndWrapErr logs an error with context fields and wraps it with a message.
// It returns a wrapped error (with %w) so errors.Is / errors.As still work.
func LogAndWrapErr(logger *slog.Logger, msg string, err error, fields ...any) error {
	return logAndWrap(logger, slog.LevelError, msg, err, fields...)
}

// DebugAndWrapErr is LogAndWrapErr at debug level, for expected failures
// such as lookups of missing rows.
func DebugAndWrapErr(logger *slog.Logger, msg string, err error, fields ...any) error {
	return logAndWrap(logger, slog.LevelDebug, msg, err, fields...)
}

func logAndWrap(logger *slog.Logger, level slog.Level, msg string, err error, fields ...any) error {
	if err == nil {
		return nil
	}
	// the error field goes last by convention
	allFields := append(fields, "err", err)
	switch level {
	case slog.LevelDebug:
		logger.Debug(msg, allFields...)
	default:
		logger.Error(msg, allFields...)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// LogDurationWithError measures duration and handles potential errors from the function
func LogDurationWithError(logger *slog.Logger, msg string, fn func() error, fields ...any) error {
	start := time.Now()
	err := fn()

	finalFields := append(fields, "duration", time.Since(start).String())
	if err != nil {
		finalFields = append(finalFields, "err", err)
		logger.Error(msg+" failed", finalFields...)
		return err
	}

	logger.Debug(msg+" completed", finalFields...)
	return nil
}
