package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

const folderColumns = `id, owner, name, parent_id, created_at`

// FolderRepository реализует интерфейс repositories.FolderRepository.
type FolderRepository struct {
	pool PgxPoolInterface
}

// NewFolderRepository создает новый репозиторий папок.
func NewFolderRepository(pool PgxPoolInterface) repositories.FolderRepository {
	return &FolderRepository{pool: pool}
}

func scanFolder(row pgx.Row) (*entities.Folder, error) {
	var f entities.Folder
	if err := row.Scan(&f.ID, &f.Owner, &f.Name, &f.ParentID, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFolders(rows pgx.Rows) ([]*entities.Folder, error) {
	defer rows.Close()

	folders := make([]*entities.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return folders, nil
}

// Create сохраняет новую папку и возвращает ее с присвоенным id.
func (r *FolderRepository) Create(ctx context.Context, folder *entities.Folder) (*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.Create"))
	log.Debug(ctx, "creating folder", zap.String("owner", folder.Owner), zap.String("name", folder.Name))

	created := *folder
	err := executor(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO folders (owner, name, parent_id) VALUES ($1, $2, $3) RETURNING id, created_at`,
		folder.Owner, folder.Name, folder.ParentID,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		log.Error(ctx, "failed to create folder", zap.Error(err))
		return nil, entities.NewStorage("failed to create folder", err)
	}

	log.Debug(ctx, "folder created", zap.Int64("folderID", created.ID))
	return &created, nil
}

// GetByID возвращает папку владельца.
func (r *FolderRepository) GetByID(ctx context.Context, owner string, id int64) (*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.GetByID"))

	folder, err := scanFolder(executor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE id = $1 AND owner = $2`,
		id, owner,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "folder not found", zap.Int64("folderID", id))
			return nil, entities.NewNotFound("folder", strconv.FormatInt(id, 10))
		}
		log.Error(ctx, "failed to get folder", zap.Error(err))
		return nil, entities.NewStorage("failed to get folder", err)
	}
	return folder, nil
}

// ListByOwner возвращает все папки владельца.
func (r *FolderRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.ListByOwner"))

	rows, err := executor(ctx, r.pool).Query(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE owner = $1 ORDER BY id`,
		owner,
	)
	if err != nil {
		log.Error(ctx, "failed to list folders", zap.Error(err))
		return nil, entities.NewStorage("failed to list folders", err)
	}

	folders, err := collectFolders(rows)
	if err != nil {
		log.Error(ctx, "failed to scan folders", zap.Error(err))
		return nil, entities.NewStorage("failed to scan folders", err)
	}
	return folders, nil
}

// ListSiblings возвращает папки владельца с тем же родителем (nil - корень).
func (r *FolderRepository) ListSiblings(ctx context.Context, owner string, parentID *int64) ([]*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.ListSiblings"))

	rows, err := executor(ctx, r.pool).Query(ctx,
		`SELECT `+folderColumns+` FROM folders WHERE owner = $1 AND parent_id IS NOT DISTINCT FROM $2`,
		owner, parentID,
	)
	if err != nil {
		log.Error(ctx, "failed to list sibling folders", zap.Error(err))
		return nil, entities.NewStorage("failed to list sibling folders", err)
	}

	folders, err := collectFolders(rows)
	if err != nil {
		log.Error(ctx, "failed to scan folders", zap.Error(err))
		return nil, entities.NewStorage("failed to scan folders", err)
	}
	return folders, nil
}

// Update сохраняет имя и родителя папки.
func (r *FolderRepository) Update(ctx context.Context, folder *entities.Folder) error {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.Update"))
	log.Debug(ctx, "updating folder", zap.Int64("folderID", folder.ID))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE folders SET name = $1, parent_id = $2 WHERE id = $3 AND owner = $4`,
		folder.Name, folder.ParentID, folder.ID, folder.Owner,
	)
	if err != nil {
		log.Error(ctx, "failed to update folder", zap.Error(err))
		return entities.NewStorage("failed to update folder", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "folder not found or not owned by user")
		return entities.NewNotFound("folder", strconv.FormatInt(folder.ID, 10))
	}
	return nil
}

// ChildIDs возвращает id прямых потомков указанных папок.
func (r *FolderRepository) ChildIDs(ctx context.Context, owner string, parentIDs []int64) ([]int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.ChildIDs"))

	rows, err := executor(ctx, r.pool).Query(ctx,
		`SELECT id FROM folders WHERE owner = $1 AND parent_id = ANY($2)`,
		owner, parentIDs,
	)
	if err != nil {
		log.Error(ctx, "failed to query child folders", zap.Error(err))
		return nil, entities.NewStorage("failed to query child folders", err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error(ctx, "failed to scan folder id", zap.Error(err))
			return nil, entities.NewStorage("failed to scan folder id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, entities.NewStorage("error iterating rows", err)
	}
	return ids, nil
}

// DeleteMany удаляет папки владельца по списку id.
func (r *FolderRepository) DeleteMany(ctx context.Context, owner string, ids []int64) (int64, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderRepository.DeleteMany"))
	log.Debug(ctx, "deleting folders", zap.Int("count", len(ids)))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`DELETE FROM folders WHERE owner = $1 AND id = ANY($2)`,
		owner, ids,
	)
	if err != nil {
		log.Error(ctx, "failed to delete folders", zap.Error(err))
		return 0, entities.NewStorage("failed to delete folders", err)
	}
	return result.RowsAffected(), nil
}
