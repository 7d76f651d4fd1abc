package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger и ошибок.
const (
	LogConnecting = "connecting to Redis"
	LogConnected  = "successfully connected to Redis"

	ErrConnect = "failed to connect to Redis"
	ErrClose   = "failed to close Redis connection"
)

// Client обертывает клиент Redis и предоставляет базовые операции.
type Client struct {
	client *redis.Client
}

// NewClient создает клиент и проверяет соединение командой PING.
func NewClient(ctx context.Context, cfg *Config) (*Client, error) {
	log := logger.Log(ctx).With(zap.String("address", cfg.Address()))
	log.Info(ctx, LogConnecting)

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdle,
		DialTimeout:  cfg.ConnectTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		log.Error(ctx, ErrConnect, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrConnect, err)
	}

	log.Info(ctx, LogConnected)
	return &Client{client: rdb}, nil
}

// Get получает значение по ключу. Отсутствующий ключ возвращает ("", false, nil).
func (c *Client) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, true, nil
}

// Set устанавливает значение с указанным TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// MGet получает значения нескольких ключей. Отсутствующие ключи в результат не попадают.
func (c *Client) MGet(ctx context.Context, keys ...string) (map[string]string, error) {
	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	found := make(map[string]string, len(keys))
	for i, value := range values {
		if s, ok := value.(string); ok {
			found[keys[i]] = s
		}
	}
	return found, nil
}

// setIfMatch записывает KEYS[2], только если KEYS[1] равен ARGV[1].
// Отсутствующий KEYS[1] считается равным "0".
var setIfMatch = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[2], ARGV[2])
end
return 1
`)

// SetIfMatch атомарно записывает key, если счетчик guardKey все еще равен expected.
// Возвращает false, если счетчик успел измениться.
func (c *Client) SetIfMatch(ctx context.Context, guardKey, expected, key, value string, ttl time.Duration) (bool, error) {
	written, err := setIfMatch.Run(ctx, c.client, []string{guardKey, key}, expected, value, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis set %q if %q matches: %w", key, guardKey, err)
	}
	return written == 1, nil
}

// IncrAndDelete в одной транзакции увеличивает счетчики и удаляет ключи.
func (c *Client) IncrAndDelete(ctx context.Context, counters []string, keys []string) error {
	if len(counters) == 0 && len(keys) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, counter := range counters {
			pipe.Incr(ctx, counter)
		}
		if len(keys) > 0 {
			pipe.Del(ctx, keys...)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis incr and del: %w", err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *Client) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrClose, err)
	}
	return nil
}
