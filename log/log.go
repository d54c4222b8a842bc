// Package log builds the zap loggers used by series engines and tools.
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level names a log severity accepted on the command line.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zap.DebugLevel
	case LevelWarn:
		return zap.WarnLevel
	case LevelError:
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// NewConsole writes human readable logs at level and above to stderr.
func NewConsole(level Level) *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level.zap(),
	)
	return zap.New(consoleCore)
}

// NewTest logs everything to stdout, for use in tests and examples.
func NewTest() *zap.Logger {
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stdout),
		zap.DebugLevel,
	)
	return zap.New(consoleCore)
}

// Sync flushes logger, reporting a failed flush through the logger itself.
func Sync(logger *zap.Logger) {
	if err := logger.Sync(); err != nil {
		logger.Warn("failed to sync logger", zap.Error(err))
	}
}
