// Package db поднимает схему и пул соединений сервиса Mini App.
package db

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/config"
	"tgminiapp/pkg/db/postgres"
	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing miniapp database"
	LogDBInitialized     = "miniapp database initialized successfully"
	LogMigrationStarting = "starting database migrations for miniapp"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply miniapp database migrations"
	ErrDBConnection      = "failed to connect to miniapp database"
	ErrGetPath           = "failed to get path"
	ErrDBCheckConnection = "error checking the database connection"
)

const filePrefix = "file://"

// DB представляет соединение с базой данных сервиса.
type DB struct {
	database *postgres.Database
}

// MigrationsURL превращает каталог миграций в source URL для golang-migrate.
func MigrationsURL(migrationsDir string) (string, error) {
	if strings.HasPrefix(migrationsDir, filePrefix) {
		return migrationsDir, nil
	}
	if filepath.IsAbs(migrationsDir) {
		return filePrefix + migrationsDir, nil
	}
	absPath, err := filepath.Abs(migrationsDir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + absPath, nil
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := MigrationsURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	version, err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), PoolOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized, zap.Uint("schema_version", version))

	return &DB{database: database}, nil
}

// PoolOptions переводит настройки сервиса в параметры пула соединений.
func PoolOptions(cfg *config.PostgresConfig) postgres.PoolOptions {
	return postgres.PoolOptions{
		MinConns:          cfg.MinConn,
		MaxConns:          cfg.MaxConn,
		MaxConnLifetime:   cfg.MaxConnLifetime,
		MaxConnIdleTime:   cfg.MaxConnIdleTime,
		HealthCheckPeriod: cfg.HealthCheckPeriod,
	}
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных; используется проверкой готовности.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
