// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier - общий набор методов пула и транзакции.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgxPoolInterface описывает пул; реализуется *pgxpool.Pool и pgxmock.PgxPoolIface.
type PgxPoolInterface interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// executor возвращает транзакцию из контекста, если она есть, иначе пул.
func executor(ctx context.Context, pool PgxPoolInterface) Querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return pool
}
