// Package logger provides the process-wide leveled logger.
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.RWMutex
	std = mustProduction(zapcore.InfoLevel)
)

func mustProduction(level zapcore.Level) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return l.Sugar()
}

// Init replaces the global logger with one writing at the given level
// ("debug", "info", "warn", "error").
func Init(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	l := mustProduction(lvl)

	mu.Lock()
	old := std
	std = l
	mu.Unlock()

	_ = old.Sync()
	return nil
}

// Use installs l as the global logger. Tests pass zap.NewNop().
func Use(l *zap.Logger) {
	mu.Lock()
	std = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mu.Unlock()
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return std
}

func Debugf(format string, args ...interface{}) { current().Debugf(format, args...) }

func Infof(format string, args ...interface{}) { current().Infof(format, args...) }

func Warnf(format string, args ...interface{}) { current().Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { current().Errorf(format, args...) }

// Fatalf logs and exits the process.
func Fatalf(format string, args ...interface{}) { current().Fatalf(format, args...) }

// Infow logs a message with structured key/value pairs.
func Infow(msg string, keysAndValues ...interface{}) { current().Infow(msg, keysAndValues...) }

// Sync flushes buffered entries; call before exit.
func Sync() {
	_ = current().Sync()
}
