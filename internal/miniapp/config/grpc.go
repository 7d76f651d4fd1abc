package config

import (
	"fmt"
	"time"
)

// GRPCConfig конфигурация gRPC сервера проверки здоровья.
type GRPCConfig struct {
	Host string `yaml:"host" env:"MINIAPP_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"MINIAPP_GRPC_PORT" env-default:"50051"`

	// ReadinessInterval - период проверки базы данных для статуса health.
	ReadinessInterval time.Duration `yaml:"readiness_interval" env:"MINIAPP_GRPC_READINESS_INTERVAL" env-default:"15s"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
