package config

import (
	"time"

	"tgminiapp/pkg/db/redis"
)

// RedisConfig представляет конфигурацию кэша списков.
type RedisConfig struct {
	Enabled        bool          `yaml:"enabled" env:"MINIAPP_REDIS_ENABLED" env-default:"false"`
	Host           string        `yaml:"host" env:"MINIAPP_REDIS_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"MINIAPP_REDIS_PORT" env-default:"6379"`
	Password       string        `yaml:"password" env:"MINIAPP_REDIS_PASSWORD" env-default:""`
	DB             int           `yaml:"db" env:"MINIAPP_REDIS_DB" env-default:"0"`
	PoolSize       int           `yaml:"pool_size" env:"MINIAPP_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle        int           `yaml:"min_idle" env:"MINIAPP_REDIS_MIN_IDLE" env-default:"2"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"MINIAPP_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"MINIAPP_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"MINIAPP_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	DefaultTTL     time.Duration `yaml:"default_ttl" env:"MINIAPP_REDIS_DEFAULT_TTL" env-default:"5m"`
	KeyPrefix      string        `yaml:"key_prefix" env:"MINIAPP_REDIS_KEY_PREFIX" env-default:"miniapp"`
	BreakerErrors  int           `yaml:"breaker_errors" env:"MINIAPP_REDIS_BREAKER_ERRORS" env-default:"5"`
	BreakerTimeout time.Duration `yaml:"breaker_timeout" env:"MINIAPP_REDIS_BREAKER_TIMEOUT" env-default:"10s"`
}

// ClientConfig преобразует настройки в конфигурацию общего Redis клиента.
func (c *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:           c.Host,
		Port:           c.Port,
		Password:       c.Password,
		DB:             c.DB,
		PoolSize:       c.PoolSize,
		MinIdle:        c.MinIdle,
		ConnectTimeout: c.ConnectTimeout,
		ReadTimeout:    c.ReadTimeout,
		WriteTimeout:   c.WriteTimeout,
	}
}
