package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/rs/zerolog"
)

var (
	loggerMu      sync.RWMutex
	defaultLogger Logger = NewZerologLogger(os.Stderr, LevelInfo)
)

// GetLogger returns the process-wide logger.
func GetLogger() Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the process-wide logger.
func SetLogger(l Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	defaultLogger = l
}

// GetLoggerWithName returns the process-wide logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// ParseLevel converts "debug", "info", "warn" or "error".
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, errors.NewValidationError("log.level", "unknown log level", level)
	}
}

// Setup installs a zerolog logger writing to w as the process-wide logger and
// routes errors.Warn through it. format is "json" or "console".
func Setup(level, format string, w io.Writer) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var logger *ZerologLogger
	switch strings.ToLower(format) {
	case "json", "":
		logger = NewZerologLogger(w, lvl)
	case "console", "text":
		cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
		logger = NewZerologLogger(cw, lvl)
	default:
		return errors.NewValidationError("log.format", "must be json or console", format)
	}

	SetLogger(logger)
	errors.SetZerologWarnFunc(func(warning error) {
		logger.Warn(fmt.Sprintf("%v", warning), WarningKey, warning)
	})
	return nil
}
