package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/hoopsim/ratingfit/pkg/errors"
	"github.com/rs/zerolog"
)

var stackMarshalerOnce sync.Once

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerologLogger writes JSON records at or above level to w.
func NewZerologLogger(w io.Writer, level Level) *ZerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return NewZerologLoggerFrom(zl)
}

// NewZerologLoggerFrom wraps an already configured zerolog.Logger.
func NewZerologLoggerFrom(zl zerolog.Logger) *ZerologLogger {
	stackMarshalerOnce.Do(func() {
		zerolog.ErrorStackMarshaler = marshalStack
	})
	return &ZerologLogger{zl: zl}
}

func (l *ZerologLogger) Debug(msg string, fields ...any) { emit(l.zl.Debug(), msg, fields) }
func (l *ZerologLogger) Info(msg string, fields ...any)  { emit(l.zl.Info(), msg, fields) }
func (l *ZerologLogger) Warn(msg string, fields ...any)  { emit(l.zl.Warn(), msg, fields) }
func (l *ZerologLogger) Error(msg string, fields ...any) { emit(l.zl.Error(), msg, fields) }

// With implements Logger.
func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		if err, ok := fields[i+1].(error); ok {
			ctx = ctx.AnErr(key, err)
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &ZerologLogger{zl: ctx.Logger()}
}

// Enabled implements Logger.
func (l *ZerologLogger) Enabled(_ context.Context, level Level) bool {
	return l.zl.GetLevel() <= toZerologLevel(level)
}

// emit writes fields onto e. A leading error is attached under "error" with its
// stack; structured errors additionally embed their fields.
func emit(e *zerolog.Event, msg string, fields []any) {
	if e == nil {
		return
	}

	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Stack().Err(err)
			var obj zerolog.LogObjectMarshaler
			if errors.As(err, &obj) {
				e = e.Object("error_detail", obj)
			}
			fields = fields[1:]
		}
	}

	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		switch v := fields[i+1].(type) {
		case error:
			e = e.AnErr(key, v)
		case zerolog.LogObjectMarshaler:
			e = e.Object(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	if len(fields)%2 == 1 {
		e = e.Interface("!BADKEY", fields[len(fields)-1])
	}

	e.Msg(msg)
}

// marshalStack extracts the stack recorded by cockroachdb/errors.
func marshalStack(err error) interface{} {
	details := errors.GetSafeDetails(err)
	if len(details) > 0 {
		return details[0]
	}
	return nil
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
