// Package config содержит конфигурацию сервиса Mini App.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "tgminiapp/pkg/config"
	"tgminiapp/pkg/logger"
)

// ServiceName используется в логах и при загрузке конфигурации.
const ServiceName = "miniapp"

// Константы ошибок и сообщений для конфигурации.
const (
	LogConfigLoaded     = "miniapp configuration loaded"
	ErrFailedLoadConfig = "failed to load miniapp configuration"
)

// Config представляет полную конфигурацию приложения.
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	HTTP     HTTPConfig     `yaml:"http"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Redis    RedisConfig    `yaml:"redis"`
	Auth     AuthConfig     `yaml:"auth"`
	Limits   LimitsConfig   `yaml:"limits"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из переменных окружения и необязательных env-файлов.
func Load(ctx context.Context, envFiles ...string) (*Config, error) {
	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, envFiles...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	logger.Log(ctx).Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.Int64("max_upload_bytes", cfg.Limits.MaxUploadBytes),
		zap.Int("max_tree_depth", cfg.Limits.MaxTreeDepth),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return cfg, nil
}
