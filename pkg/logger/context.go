package logger

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrInitGlobalLogger возвращается, если глобальный logger не удалось создать.
var ErrInitGlobalLogger = fmt.Errorf("failed to initialize global logger")

// До InitGlobalLogger или SetGlobalLogger записи уходят в резервный logger уровня warn.
var (
	globalMu     sync.RWMutex
	globalLogger *Logger

	fallbackLogger = sync.OnceValue(func() *Logger {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		zl, err := cfg.Build()
		if err != nil {
			zl = zap.NewNop()
		}
		return &Logger{l: zl.With(zap.String("logger", "fallback"))}
	})
)

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// NewContext кладет logger в контекст.
func NewContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Log возвращает logger из контекста, иначе глобальный, иначе резервный.
func Log(ctx context.Context) *Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*Logger); ok {
			return logger
		}
	}

	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger != nil {
		return globalLogger
	}
	return fallbackLogger()
}

// InitGlobalLogger создает глобальный logger, если он еще не задан.
func InitGlobalLogger(env Environment, level string) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalLogger != nil {
		return nil
	}

	logger, err := NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInitGlobalLogger, err)
	}
	globalLogger = logger
	return nil
}

// SetGlobalLogger заменяет глобальный logger и возвращает предыдущий.
func SetGlobalLogger(logger *Logger) *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()

	previous := globalLogger
	globalLogger = logger
	return previous
}
