package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogConnecting = "connecting to Postgres database"
	LogConnected  = "successfully connected to Postgres"
	LogClosing    = "closing Postgres connection pool"
)

// Константы для сообщений об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// ErrInvalidPoolOptions возвращается, если размеры пула не помещаются в int32
// или минимальный размер больше максимального.
var ErrInvalidPoolOptions = errors.New("invalid connection pool options")

// PoolOptions задает размер пула и время жизни соединений.
// Нулевые длительности оставляют значения pgxpool по умолчанию.
type PoolOptions struct {
	MinConns          int
	MaxConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
}

func (o PoolOptions) apply(cfg *pgxpool.Config) error {
	if o.MinConns < 0 || o.MaxConns < 1 || o.MaxConns > math.MaxInt32 {
		return fmt.Errorf("%w: min_conns=%d max_conns=%d", ErrInvalidPoolOptions, o.MinConns, o.MaxConns)
	}
	if o.MinConns > o.MaxConns {
		return fmt.Errorf("%w: min_conns=%d exceeds max_conns=%d", ErrInvalidPoolOptions, o.MinConns, o.MaxConns)
	}

	cfg.MinConns = int32(o.MinConns)
	cfg.MaxConns = int32(o.MaxConns)
	if o.MaxConnLifetime > 0 {
		cfg.MaxConnLifetime = o.MaxConnLifetime
	}
	if o.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = o.MaxConnIdleTime
	}
	if o.HealthCheckPeriod > 0 {
		cfg.HealthCheckPeriod = o.HealthCheckPeriod
	}
	return nil
}

// Database представляет пул соединений с Postgres.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул соединений и проверяет его командой ping.
func New(ctx context.Context, dsn string, opts PoolOptions) (*Database, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	if err := opts.apply(poolCfg); err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected,
		zap.Int32("min_conns", poolCfg.MinConns),
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Duration("max_conn_lifetime", poolCfg.MaxConnLifetime),
		zap.Duration("health_check_period", poolCfg.HealthCheckPeriod))
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул, дождавшись возврата соединений.
func (db *Database) Close(ctx context.Context) {
	stat := db.pool.Stat()
	logger.Log(ctx).Info(ctx, LogClosing,
		zap.Int32("acquired_conns", stat.AcquiredConns()),
		zap.Int32("total_conns", stat.TotalConns()))
	db.pool.Close()
}

// Ping проверяет, что пул может выдать живое соединение.
func (db *Database) Ping(ctx context.Context) error {
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}
	return nil
}
