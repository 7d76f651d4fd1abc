// Package redis предоставляет общую реализацию клиента Redis.
package redis

import (
	"fmt"
	"time"
)

// Значения по умолчанию, синхронизированные с тегами env-default в конфигурации сервиса.
const (
	DefaultHost           = "localhost"
	DefaultPort           = 6379
	DefaultDB             = 0
	DefaultPoolSize       = 10
	DefaultConnectTimeout = 5 * time.Second
	DefaultIOTimeout      = 3 * time.Second
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host           string
	Port           int
	Password       string
	DB             int
	PoolSize       int
	MinIdle        int
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultConfig возвращает конфигурацию Redis по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		DB:             DefaultDB,
		PoolSize:       DefaultPoolSize,
		ConnectTimeout: DefaultConnectTimeout,
		ReadTimeout:    DefaultIOTimeout,
		WriteTimeout:   DefaultIOTimeout,
	}
}

// Address возвращает адрес host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
