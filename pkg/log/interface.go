// Package log provides the structured logging interface used across ratingfit.
//
// The Logger interface mirrors log/slog's method set so the backend can be
// swapped, while the default backend is zerolog. Messages carry key/value pairs
// drawn from the attribute keys in attributes.go:
//
//	logger := log.GetLogger().With(
//	    log.ModelNameKey, "LinearRegression",
//	    log.EstimatorIDKey, id,
//	)
//	logger.Info("fit complete",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1200,
//	    log.FeaturesKey, 15,
//	)
//
// The numeric kernel in core/matrix does not log; estimators, the ratings
// pipeline and the CLI do.
package log

import (
	"context"
)

// Logger is a structured logger with a slog-compatible method set.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs normal operational events.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the current operation.
	Warn(msg string, fields ...any)

	// Error logs a failure. When the first field is an error it is attached
	// together with its stack trace:
	//
	//	logger.Error("fit failed", err, log.OperationKey, log.OperationFit)
	Error(msg string, fields ...any)

	// With returns a child logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with slog-compatible values.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
