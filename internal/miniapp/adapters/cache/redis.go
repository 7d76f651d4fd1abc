// Package cache содержит реализации порта ListCache.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/pkg/db/redis"
	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogCacheHit         = "list cache hit"
	LogCacheMiss        = "list cache miss"
	LogCacheInvalidated = "list cache invalidated"

	LogCacheStaleSkipped = "list changed while loading, cache write skipped"
)

// RedisListCache хранит списки владельца в Redis в виде JSON.
type RedisListCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisListCache создает кэш поверх клиента Redis.
func NewRedisListCache(client *redis.Client, prefix string, ttl time.Duration) cache.ListCache {
	return &RedisListCache{client: client, prefix: prefix, ttl: ttl}
}

// Key возвращает ключ вида prefix:owner:kind.
func (c *RedisListCache) Key(owner, kind string) string {
	return c.prefix + ":" + owner + ":" + kind
}

// GenerationKey возвращает ключ счетчика поколений списка.
func (c *RedisListCache) GenerationKey(owner, kind string) string {
	return c.Key(owner, kind) + ":gen"
}

// GetList читает список в dst и текущее поколение.
func (c *RedisListCache) GetList(ctx context.Context, owner, kind string, dst any) (bool, cache.Version, error) {
	log := logger.Log(ctx).With(zap.String("method", "RedisListCache.GetList"), zap.String("kind", kind))

	listKey, genKey := c.Key(owner, kind), c.GenerationKey(owner, kind)
	values, err := c.client.MGet(ctx, listKey, genKey)
	if err != nil {
		return false, 0, err
	}

	var version cache.Version
	if raw, ok := values[genKey]; ok {
		gen, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return false, 0, fmt.Errorf("decode %s generation: %w", kind, err)
		}
		version = cache.Version(gen)
	}

	raw, found := values[listKey]
	if !found {
		log.Debug(ctx, LogCacheMiss)
		return false, version, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, version, fmt.Errorf("decode cached %s: %w", kind, err)
	}

	log.Debug(ctx, LogCacheHit)
	return true, version, nil
}

// SetList сохраняет список с TTL кэша, если поколение не изменилось с момента чтения.
func (c *RedisListCache) SetList(ctx context.Context, owner, kind string, version cache.Version, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s for cache: %w", kind, err)
	}

	written, err := c.client.SetIfMatch(ctx,
		c.GenerationKey(owner, kind), strconv.FormatInt(int64(version), 10),
		c.Key(owner, kind), string(raw), c.ttl)
	if err != nil {
		return err
	}
	if !written {
		logger.Log(ctx).Debug(ctx, LogCacheStaleSkipped, zap.String("owner", owner), zap.String("kind", kind))
	}
	return nil
}

// Invalidate удаляет списки владельца указанных видов и сдвигает их поколения.
func (c *RedisListCache) Invalidate(ctx context.Context, owner string, kinds ...string) error {
	keys := make([]string, 0, len(kinds))
	gens := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		keys = append(keys, c.Key(owner, kind))
		gens = append(gens, c.GenerationKey(owner, kind))
	}
	if err := c.client.IncrAndDelete(ctx, gens, keys); err != nil {
		return err
	}

	logger.Log(ctx).Debug(ctx, LogCacheInvalidated, zap.String("owner", owner), zap.Strings("kinds", kinds))
	return nil
}

// Close закрывает клиент Redis.
func (c *RedisListCache) Close() error {
	return c.client.Close()
}
