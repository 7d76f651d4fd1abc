package config

import (
	"fmt"
	"time"
)

// PostgresConfig содержит настройки подключения к базе данных.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"MINIAPP_POSTGRES_HOST" env-default:"0.0.0.0"`
	Port     int    `yaml:"port" env:"MINIAPP_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"MINIAPP_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"MINIAPP_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"MINIAPP_POSTGRES_DB" env-default:"miniapp"`
	SSLMode  string `yaml:"ssl_mode" env:"MINIAPP_POSTGRES_SSLMODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"MINIAPP_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"MINIAPP_POSTGRES_MAX_CONN" env-default:"10"`

	MaxConnLifetime   time.Duration `yaml:"max_conn_lifetime" env:"MINIAPP_POSTGRES_MAX_CONN_LIFETIME" env-default:"1h"`
	MaxConnIdleTime   time.Duration `yaml:"max_conn_idle_time" env:"MINIAPP_POSTGRES_MAX_CONN_IDLE_TIME" env-default:"30m"`
	HealthCheckPeriod time.Duration `yaml:"health_check_period" env:"MINIAPP_POSTGRES_HEALTH_CHECK_PERIOD" env-default:"1m"`
}

// GetDSN возвращает строку подключения к Postgres.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetConnectionURL возвращает URL-строку подключения для миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.Database, p.SSLMode)
}
