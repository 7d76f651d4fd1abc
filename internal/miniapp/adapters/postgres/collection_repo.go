package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

// CollectionRepository реализует интерфейс repositories.CollectionRepository.
// Все элементы хранятся в одной таблице vector_collections с колонкой owner.
type CollectionRepository struct {
	pool PgxPoolInterface
}

// NewCollectionRepository создает новый репозиторий коллекций.
func NewCollectionRepository(pool PgxPoolInterface) repositories.CollectionRepository {
	return &CollectionRepository{pool: pool}
}

// ListByOwner возвращает элементы владельца по возрастанию имени.
func (r *CollectionRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.CollectionItem, error) {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.ListByOwner"))

	rows, err := executor(ctx, r.pool).Query(ctx,
		`SELECT name, active, folder_id, uuid::text FROM vector_collections WHERE owner = $1 ORDER BY name ASC`,
		owner,
	)
	if isUndefinedTable(err) {
		log.Warn(ctx, "vector_collections table is missing, returning empty list")
		return []*entities.CollectionItem{}, nil
	}
	if err != nil {
		log.Error(ctx, "failed to list collection items", zap.Error(err))
		return nil, entities.NewStorage("failed to list collection items", err)
	}
	defer rows.Close()

	items := make([]*entities.CollectionItem, 0)
	for rows.Next() {
		item := entities.CollectionItem{Owner: owner}
		if err := rows.Scan(&item.Name, &item.Active, &item.FolderID, &item.UUID); err != nil {
			log.Error(ctx, "failed to scan collection item", zap.Error(err))
			return nil, entities.NewStorage("failed to scan collection item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, entities.NewStorage("error iterating rows", err)
	}
	return items, nil
}

// SetActive меняет флаг active и возвращает число затронутых строк.
func (r *CollectionRepository) SetActive(ctx context.Context, owner, name string, active bool) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.SetActive"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE vector_collections SET active = $1 WHERE owner = $2 AND name = $3`,
		active, owner, name,
	)
	if err != nil {
		log.Error(ctx, "failed to toggle collection item", zap.Error(err))
		return 0, entities.NewStorage("failed to toggle collection item", err)
	}
	return result.RowsAffected(), nil
}

// SetFolder переносит элемент в папку (nil - без папки).
func (r *CollectionRepository) SetFolder(ctx context.Context, owner, name string, folderID *int64) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.SetFolder"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE vector_collections SET folder_id = $1 WHERE owner = $2 AND name = $3`,
		folderID, owner, name,
	)
	if err != nil {
		log.Error(ctx, "failed to move collection item", zap.Error(err))
		return 0, entities.NewStorage("failed to move collection item", err)
	}
	return result.RowsAffected(), nil
}

// GetUUID возвращает uuid элемента, связывающий его с эмбеддингами.
func (r *CollectionRepository) GetUUID(ctx context.Context, owner, name string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.GetUUID"))

	var id string
	err := executor(ctx, r.pool).QueryRow(ctx,
		`SELECT uuid::text FROM vector_collections WHERE owner = $1 AND name = $2`,
		owner, name,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "collection item not found", zap.String("name", name))
			return "", entities.NewNotFound("collection item", name)
		}
		log.Error(ctx, "failed to get collection item", zap.Error(err))
		return "", entities.NewStorage("failed to get collection item", err)
	}
	return id, nil
}

// Delete удаляет элемент коллекции.
func (r *CollectionRepository) Delete(ctx context.Context, owner, name string) error {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.Delete"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`DELETE FROM vector_collections WHERE owner = $1 AND name = $2`,
		owner, name,
	)
	if err != nil {
		log.Error(ctx, "failed to delete collection item", zap.Error(err))
		return entities.NewStorage("failed to delete collection item", err)
	}
	if result.RowsAffected() == 0 {
		return entities.NewNotFound("collection item", name)
	}
	return nil
}

// DeleteEmbeddings удаляет строки vector_embeddings, относящиеся к элементу.
func (r *CollectionRepository) DeleteEmbeddings(ctx context.Context, collectionUUID string) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.DeleteEmbeddings"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`DELETE FROM vector_embeddings WHERE collection_uuid = $1`,
		collectionUUID,
	)
	if err != nil {
		log.Error(ctx, "failed to delete embeddings", zap.Error(err))
		return 0, entities.NewStorage("failed to delete embeddings", err)
	}
	log.Debug(ctx, "embeddings deleted", zap.Int64("rows", result.RowsAffected()))
	return result.RowsAffected(), nil
}

// DetachFolders сбрасывает folder_id у элементов, лежащих в указанных папках.
func (r *CollectionRepository) DetachFolders(ctx context.Context, owner string, folderIDs []int64) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "CollectionRepository.DetachFolders"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE vector_collections SET folder_id = NULL WHERE owner = $1 AND folder_id = ANY($2)`,
		owner, folderIDs,
	)
	if err != nil {
		log.Error(ctx, "failed to detach collection items", zap.Error(err))
		return 0, entities.NewStorage("failed to detach collection items", err)
	}
	return result.RowsAffected(), nil
}

// isUndefinedTable распознает SQLSTATE 42P01.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
