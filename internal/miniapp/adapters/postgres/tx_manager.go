package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogTxBegin          = "transaction started"
	LogTxCommitted      = "transaction committed"
	LogTxRolledBack     = "transaction rolled back"
	LogTxRollbackFailed = "failed to roll back transaction"
)

// TransactionManager реализует repositories.TxManager поверх пула pgx.
type TransactionManager struct {
	pool PgxPoolInterface
}

// NewTransactionManager создает менеджер транзакций.
func NewTransactionManager(pool PgxPoolInterface) repositories.TxManager {
	return &TransactionManager{pool: pool}
}

// ExecTx выполняет fn в транзакции. Вложенный вызов переиспользует
// внешнюю транзакцию. Любая ошибка fn или commit откатывает все изменения.
func (m *TransactionManager) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	log := logger.Log(ctx).With(zap.String("method", "TransactionManager.ExecTx"))

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		log.Error(ctx, "failed to begin transaction", zap.Error(err))
		return entities.NewStorage("begin transaction", err)
	}
	log.Debug(ctx, LogTxBegin)

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			log.Error(ctx, LogTxRollbackFailed, zap.Error(rbErr))
			return
		}
		log.Debug(ctx, LogTxRolledBack)
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error(ctx, "failed to commit transaction", zap.Error(err))
		return entities.NewStorage("commit transaction", err)
	}
	committed = true
	log.Debug(ctx, LogTxCommitted)
	return nil
}
