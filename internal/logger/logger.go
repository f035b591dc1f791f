package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Field is a structured log field.
type Field = zap.Field

// LoggerI is what the rest of the code logs through.
type LoggerI interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)
	Sync() error
}

type loggerImpl struct {
	zap *zap.Logger
}

// NewLogger builds a JSON logger on stderr named namespace. Unknown levels
// fall back to info.
func NewLogger(namespace, level string) LoggerI {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(parseLevel(level)),
	)
	return &loggerImpl{zap: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Named(namespace)}
}

// Nop discards everything. Tests use it.
func Nop() LoggerI {
	return &loggerImpl{zap: zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
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

func (l *loggerImpl) Debug(msg string, fields ...Field) { l.zap.Debug(msg, fields...) }
func (l *loggerImpl) Info(msg string, fields ...Field)  { l.zap.Info(msg, fields...) }
func (l *loggerImpl) Warn(msg string, fields ...Field)  { l.zap.Warn(msg, fields...) }
func (l *loggerImpl) Error(msg string, fields ...Field) { l.zap.Error(msg, fields...) }
func (l *loggerImpl) Fatal(msg string, fields ...Field) { l.zap.Fatal(msg, fields...) }
func (l *loggerImpl) Sync() error                       { return l.zap.Sync() }

// Cleanup flushes buffered entries.
func Cleanup(l LoggerI) {
	_ = l.Sync()
}

func Any(key string, v interface{}) Field { return zap.Any(key, v) }

func String(key, v string) Field { return zap.String(key, v) }

func Int(key string, v int) Field { return zap.Int(key, v) }

func Error(err error) Field { return zap.Error(err) }
