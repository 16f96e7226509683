// internal/platform/logx/log.go
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// EnvLevel is the environment variable that sets the initial level of New().
const EnvLevel = "VITA_LOG_LEVEL"

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

type zapLogger struct {
	sl  *zap.SugaredLogger
	lvl zap.AtomicLevel
}

// New creates a stderr logger at the VITA_LOG_LEVEL level (info by default).
func New() Logger {
	return NewWithWriter(os.Stderr, ParseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a stderr logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return NewWithWriter(os.Stderr, lvl)
}

// NewSilent creates a logger that only outputs errors
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewWithWriter creates a logger writing console-encoded lines to w.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	atom := zap.NewAtomicLevelAt(toZap(lvl))
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		atom,
	)
	return &zapLogger{
		sl:  zap.New(core).Sugar(),
		lvl: atom,
	}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &zapLogger{
		sl:  zap.NewNop().Sugar(),
		lvl: zap.NewAtomicLevelAt(zapcore.FatalLevel),
	}
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeLevel = tagLevel
	cfg.CallerKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	cfg.ConsoleSeparator = " "
	return cfg
}

// tagLevel keeps the short DBG/INF/WRN/ERR tags.
func tagLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString("DBG")
	case zapcore.InfoLevel:
		enc.AppendString("INF")
	case zapcore.WarnLevel:
		enc.AppendString("WRN")
	default:
		enc.AppendString("ERR")
	}
}

func (z *zapLogger) With(kv ...any) Logger {
	return &zapLogger{
		sl:  z.sl.With(kvPairs(kv...)...),
		lvl: z.lvl,
	}
}

func (z *zapLogger) SetLevel(lvl Level) {
	z.lvl.SetLevel(toZap(lvl))
}

func (z *zapLogger) Debug(msg string, kv ...any) { z.sl.Debugw(msg, kvPairs(kv...)...) }
func (z *zapLogger) Info(msg string, kv ...any)  { z.sl.Infow(msg, kvPairs(kv...)...) }
func (z *zapLogger) Warn(msg string, kv ...any)  { z.sl.Warnw(msg, kvPairs(kv...)...) }
func (z *zapLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	z.sl.Errorw("", kvPairs(kv...)...)
}

// kvPairs normalizes key/value pairs: keys become strings and an unpaired
// key gets the value "(missing)".
func kvPairs(kv ...any) []any {
	out := make([]any, 0, len(kv)+1)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, fmt.Sprint(kv[i]))
		if i+1 < len(kv) {
			out = append(out, kv[i+1])
		} else {
			out = append(out, "(missing)")
		}
	}
	return out
}

func toZap(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a level name; unknown values map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// String returns the canonical level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}
