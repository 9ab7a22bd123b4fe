package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

var (
	globalLogger *ZapLogger
	mu           sync.RWMutex
)

// SetGlobalLogger sets the process-wide logger. Call once during startup.
func SetGlobalLogger(logger *ZapLogger) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
}

// GetGlobalLogger returns the process-wide logger, falling back to a
// production zap logger when none was set
func GetGlobalLogger() *ZapLogger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		fallback, err := zap.NewProduction()
		if err != nil {
			fallback = zap.NewNop()
		}
		globalLogger = &ZapLogger{Logger: fallback}
	}
	return globalLogger
}

func Info(msg string, fields ...Field) { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...Field) { GetGlobalLogger().Warn(msg, fields...) }
func Debug(msg string, fields ...Field) { GetGlobalLogger().Debug(msg, fields...) }
func Error(msg string, fields ...Field) { GetGlobalLogger().Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { GetGlobalLogger().Fatal(msg, fields...) }

// FromContext returns the global logger enriched with the trace ids and
// request correlation found in ctx
func FromContext(ctx context.Context) *zap.Logger {
	return GetGlobalLogger().Ctx(ctx)
}

// InfoCtx logs an info message correlated with the request in ctx
func InfoCtx(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Info(msg, fields...)
}

// WarnCtx logs a warning correlated with the request in ctx
func WarnCtx(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Warn(msg, fields...)
}

// ErrorCtx logs an error correlated with the request in ctx
func ErrorCtx(ctx context.Context, msg string, fields ...Field) {
	FromContext(ctx).Error(msg, fields...)
}
