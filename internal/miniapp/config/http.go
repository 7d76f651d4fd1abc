package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"MINIAPP_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"MINIAPP_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"MINIAPP_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"MINIAPP_HTTP_WRITE_TIMEOUT" env-default:"30s"`
	BodyLimit    int           `yaml:"body_limit" env:"MINIAPP_HTTP_BODY_LIMIT" env-default:"26214400"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"MINIAPP_HTTP_CORS_ORIGINS" env-separator:"," env-default:"*"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
