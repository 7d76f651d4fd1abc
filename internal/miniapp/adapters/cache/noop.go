package cache

import (
	"context"

	"tgminiapp/internal/miniapp/ports/cache"
)

// NoopListCache используется, когда Redis выключен: всегда промах.
type NoopListCache struct{}

// NewNoopListCache создает пустой кэш.
func NewNoopListCache() cache.ListCache {
	return NoopListCache{}
}

func (NoopListCache) GetList(context.Context, string, string, any) (bool, cache.Version, error) {
	return false, 0, nil
}

func (NoopListCache) SetList(context.Context, string, string, cache.Version, any) error { return nil }
func (NoopListCache) Invalidate(context.Context, string, ...string) error               { return nil }
func (NoopListCache) Close() error                                                      { return nil }
