package utils

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	z *zap.SugaredLogger
}

// NewLoggerWithLevel creates a console Logger on stdout. Unknown levels fall back to info.
func NewLoggerWithLevel(level string) *Logger {
	return NewLoggerTo(os.Stdout, level)
}

// NewLoggerTo creates a console Logger writing to ws.
func NewLoggerTo(ws zapcore.WriteSyncer, level string) *Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.Lock(ws), zap.NewAtomicLevelAt(parseLevel(level)))
	return &Logger{z: zap.New(core).Sugar()}
}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// With returns a child Logger that adds the given key/value pairs to every entry.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{z: l.z.With(keysAndValues...)}
}

func (l *Logger) Info(format string, args ...any) {
	l.z.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.z.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.z.Errorf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.z.Debugf(format, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}
