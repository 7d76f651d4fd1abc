package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger о миграциях.
const (
	LogMigrationsApplied  = "database migrations applied"
	LogMigrationsUpToDate = "database schema is up to date"
	LogCloseMigrate       = "failed to release migration resources"
)

// Константы для сообщений об ошибках миграций.
const (
	ErrCreateMigrationInstance = "failed to create migration instance"
	ErrApplyMigrations         = "failed to apply migrations"
	ErrReadSchemaVersion       = "failed to read schema version"
)

// ErrDirtySchema возвращается, если предыдущая миграция оборвалась на середине.
// Такую базу нужно чинить вручную (migrate force), автоматически она не поднимается.
var ErrDirtySchema = errors.New("database schema is dirty")

// MigrateDSN применяет миграции из migrationsPath и возвращает версию схемы.
func MigrateDSN(ctx context.Context, dsn string, migrationsPath string) (uint, error) {
	log := logger.Log(ctx).With(zap.String("path", migrationsPath))

	m, err := migrate.New(migrationsPath, dsn)
	if err != nil {
		log.Error(ctx, ErrCreateMigrationInstance, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCreateMigrationInstance, err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			log.Warn(ctx, LogCloseMigrate, zap.Error(err))
		}
	}()

	before, err := schemaVersion(m)
	if err != nil {
		log.Error(ctx, ErrReadSchemaVersion, zap.Error(err))
		return 0, err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info(ctx, LogMigrationsUpToDate, zap.Uint("version", before))
			return before, nil
		}
		log.Error(ctx, ErrApplyMigrations, zap.Error(err), zap.Uint("from_version", before))
		return 0, fmt.Errorf("%s: %w", ErrApplyMigrations, err)
	}

	after, err := schemaVersion(m)
	if err != nil {
		log.Error(ctx, ErrReadSchemaVersion, zap.Error(err))
		return 0, err
	}

	log.Info(ctx, LogMigrationsApplied, zap.Uint("from_version", before), zap.Uint("to_version", after))
	return after, nil
}

// schemaVersion возвращает текущую версию; пустая база имеет версию 0.
func schemaVersion(m *migrate.Migrate) (uint, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrReadSchemaVersion, err)
	}
	if dirty {
		return version, fmt.Errorf("%w: version %d", ErrDirtySchema, version)
	}
	return version, nil
}
