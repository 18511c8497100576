// Package logging is a small key/value facade over zap. The HTTP service logs
// JSON lines; the CLI logs human-readable lines to stderr.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// Encoding selects the line format.
type Encoding string

const (
	EncodingJSON    Encoding = "json"
	EncodingConsole Encoding = "console"
)

type Logger struct {
	z      *zap.Logger
	synced *atomic.Bool
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(NewNop())
}

// ParseLevel accepts debug, info, warn/warning and error. Anything else is info.
func ParseLevel(v string) Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// NewJSON logs JSON lines to stdout.
func NewJSON(level Level) *Logger {
	return New(os.Stdout, level, EncodingJSON)
}

// New logs to w. Unknown encodings fall back to JSON.
func New(w io.Writer, level Level, encoding Encoding) *Logger {
	cfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		MessageKey:     "msg",
		CallerKey:      "caller",
		StacktraceKey:  "stacktrace",
		FunctionKey:    zapcore.OmitKey,
		NameKey:        zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var enc zapcore.Encoder
	opts := []zap.Option{zap.AddCaller(), zap.AddCallerSkip(2)}
	switch encoding {
	case EncodingConsole:
		cfg.TimeKey = zapcore.OmitKey
		cfg.CallerKey = zapcore.OmitKey
		enc = zapcore.NewConsoleEncoder(cfg)
	default:
		enc = zapcore.NewJSONEncoder(cfg)
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), level)
	return &Logger{z: zap.New(core, opts...), synced: &atomic.Bool{}}
}

func NewNop() *Logger {
	return &Logger{z: zap.NewNop(), synced: &atomic.Bool{}}
}

func Default() *Logger {
	if l := std.Load(); l != nil {
		return l
	}
	return NewNop()
}

func SetDefault(l *Logger) {
	if l == nil {
		l = NewNop()
	}
	std.Store(l)
}

// Sync flushes once per logger family; later calls are no-ops.
func (l *Logger) Sync() error {
	if l == nil || l.z == nil {
		return nil
	}
	if l.synced.CompareAndSwap(false, true) {
		return l.z.Sync()
	}
	return nil
}

// With returns a child logger that adds the key/value pairs to every line.
func (l *Logger) With(kv ...any) *Logger {
	if l == nil {
		return Default().With(kv...)
	}
	return &Logger{z: l.z.With(fields(kv)...), synced: l.synced}
}

func (l *Logger) Debug(msg string, kv ...any) { l.write(nil, LevelDebug, msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.write(nil, LevelInfo, msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.write(nil, LevelWarn, msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.write(nil, LevelError, msg, kv) }

func (l *Logger) DebugContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelDebug, msg, kv)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelInfo, msg, kv)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelWarn, msg, kv)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, kv ...any) {
	l.write(ctx, LevelError, msg, kv)
}

func (l *Logger) write(ctx context.Context, level Level, msg string, kv []any) {
	if l == nil {
		l = Default()
	}
	ce := l.z.Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(append(fields(kv), spanFields(ctx)...)...)
}

// spanFields correlates a line with the active span, if any.
func spanFields(ctx context.Context) []zap.Field {
	if ctx == nil {
		return nil
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return nil
	}
	return []zap.Field{
		zap.Stringer("trace_id", sc.TraceID()),
		zap.Stringer("span_id", sc.SpanID()),
	}
}

// fields pairs up kv. A non-string key becomes "arg" and a dangling key
// logs a nil value.
func fields(kv []any) []zap.Field {
	if len(kv) == 0 {
		return nil
	}

	out := make([]zap.Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok || key == "" {
			key = "arg"
		}
		if i+1 == len(kv) {
			out = append(out, zap.Any(key, nil))
			break
		}
		if err, ok := kv[i+1].(error); ok {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, kv[i+1]))
	}
	return out
}
