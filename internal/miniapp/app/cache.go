// Package app implements application business logic of the Mini App backend.
package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogCacheReadFailed       = "failed to read list cache, falling back to database"
	LogCacheWriteFailed      = "failed to write list cache"
	LogCacheInvalidateFailed = "failed to invalidate list cache"
)

// cachedList читает список из кэша, при промахе загружает его через load
// и сохраняет с поколением, прочитанным до загрузки. Ошибки кэша только логируются.
func cachedList[T any](
	ctx context.Context,
	lists cache.ListCache,
	owner, kind string,
	load func(ctx context.Context) ([]T, error),
) ([]T, error) {
	log := logger.Log(ctx).With(zap.String("kind", kind))

	var cached []T
	found, version, readErr := lists.GetList(ctx, owner, kind, &cached)
	switch {
	case readErr == nil && found:
		return cached, nil
	case errors.Is(readErr, cache.ErrUnavailable):
		log.Debug(ctx, LogCacheReadFailed, zap.Error(readErr))
	case readErr != nil:
		log.Warn(ctx, LogCacheReadFailed, zap.Error(readErr))
	}

	fresh, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if readErr != nil {
		return fresh, nil
	}
	if err := lists.SetList(ctx, owner, kind, version, fresh); err != nil {
		log.Warn(ctx, LogCacheWriteFailed, zap.Error(err))
	}
	return fresh, nil
}

func invalidate(ctx context.Context, lists cache.ListCache, owner string, kinds ...string) {
	if err := lists.Invalidate(ctx, owner, kinds...); err != nil {
		logger.Log(ctx).Warn(ctx, LogCacheInvalidateFailed, zap.String("owner", owner), zap.Error(err))
	}
}
