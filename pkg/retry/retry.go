// Package retry повторяет операцию с экспоненциальной задержкой.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tgminiapp/pkg/logger"
)

// Константы для логирования.
const (
	LogRetryAttempt     = "retry attempt"
	LogRetrySuccess     = "retry succeeded"
	LogRetryMaxAttempts = "retry max attempts reached"
)

// ErrContextCanceled возвращается, если ctx отменен во время ожидания.
var ErrContextCanceled = errors.New("context was canceled during retry")

// Config содержит настройки повторов.
type Config struct {
	// MaxAttempts включает первую попытку.
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffFactor  float64
	// ShouldRetry решает, повторять ли операцию после ошибки.
	ShouldRetry func(error) bool
}

// DefaultConfig подходит для подключения к зависимостям при старте.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    5,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		BackoffFactor:  2.0,
		ShouldRetry:    defaultShouldRetry,
	}
}

func defaultShouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Do выполняет op до успеха, неповторяемой ошибки или исчерпания попыток.
func Do(ctx context.Context, name string, cfg Config, op func(ctx context.Context) error) error {
	log := logger.Log(ctx).With(zap.String("retry", name))

	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.ShouldRetry == nil {
		cfg.ShouldRetry = defaultShouldRetry
	}

	backoff := cfg.InitialBackoff
	var err error
	for attempt := 1; ; attempt++ {
		err = op(ctx)
		if err == nil {
			if attempt > 1 {
				log.Info(ctx, LogRetrySuccess, zap.Int("attempts", attempt))
			}
			return nil
		}
		if !cfg.ShouldRetry(err) {
			return err
		}
		if attempt >= cfg.MaxAttempts {
			log.Warn(ctx, LogRetryMaxAttempts, zap.Int("attempts", attempt), zap.Error(err))
			return err
		}

		log.Info(ctx, LogRetryAttempt,
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
}
