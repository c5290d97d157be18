// Package logger is the process-wide logging facade. Components log with a
// module tag, e.g. logger.Info("Pipeline", "processed frame %d", n), or grab
// a structured *zap.Logger via L() when they carry fields.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu   sync.RWMutex
	base *zap.Logger
)

// Init builds the global logger. Level is a zap level string
// ("debug", "info", "warn", "error"); "debug" switches to the
// colored console encoding for development.
func Init(level string) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	if zapLevel == zapcore.DebugLevel {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build()
	if err != nil {
		return err
	}

	mu.Lock()
	base = log
	mu.Unlock()
	return nil
}

// L returns the global structured logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if base == nil {
		return zap.NewNop()
	}
	return base
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

func logf(level zapcore.Level, module, format string, args ...any) {
	log := L().Named(module)
	if ce := log.Check(level, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// Debug logs a debug message for the given module.
func Debug(module, format string, args ...any) {
	logf(zapcore.DebugLevel, module, format, args...)
}

// Info logs an info message for the given module.
func Info(module, format string, args ...any) {
	logf(zapcore.InfoLevel, module, format, args...)
}

// Warn logs a warning for the given module.
func Warn(module, format string, args ...any) {
	logf(zapcore.WarnLevel, module, format, args...)
}

// Error logs an error for the given module.
func Error(module, format string, args ...any) {
	logf(zapcore.ErrorLevel, module, format, args...)
}
