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

const attachmentMetaColumns = `b.id::text, b.note_id::text, b.mime, b.size, b.filename, b.created_at`

// AttachmentRepository реализует интерфейс repositories.AttachmentRepository.
type AttachmentRepository struct {
	pool PgxPoolInterface
}

// NewAttachmentRepository создает новый репозиторий вложений.
func NewAttachmentRepository(pool PgxPoolInterface) repositories.AttachmentRepository {
	return &AttachmentRepository{pool: pool}
}

// Create сохраняет вложение. Владение заметкой проверяется вызывающей стороной.
func (r *AttachmentRepository) Create(ctx context.Context, att *entities.Attachment) error {
	log := logger.Log(ctx).With(zap.String("method", "AttachmentRepository.Create"))
	log.Debug(ctx, "storing attachment",
		zap.String("noteID", att.NoteID),
		zap.String("filename", att.Filename),
		zap.Int64("size", att.Size))

	err := executor(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO note_blobs (id, note_id, data, mime, size, filename) VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING created_at`,
		att.ID, att.NoteID, att.Data, att.MIME, att.Size, att.Filename,
	).Scan(&att.CreatedAt)
	if err != nil {
		log.Error(ctx, "failed to store attachment", zap.Error(err))
		return entities.NewStorage("failed to store attachment", err)
	}
	return nil
}

// GetByID возвращает вложение вместе с данными, если заметка принадлежит владельцу и не удалена.
func (r *AttachmentRepository) GetByID(ctx context.Context, owner, id string) (*entities.Attachment, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttachmentRepository.GetByID"))

	var att entities.Attachment
	err := executor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+attachmentMetaColumns+`, b.data FROM note_blobs b JOIN notes n ON n.note_id = b.note_id
         WHERE b.id = $1 AND n.owner = $2 AND n.is_deleted = FALSE`,
		id, owner,
	).Scan(&att.ID, &att.NoteID, &att.MIME, &att.Size, &att.Filename, &att.CreatedAt, &att.Data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "attachment not found or not owned", zap.String("attachmentID", id))
			return nil, entities.NewNotFound("attachment", id)
		}
		log.Error(ctx, "failed to get attachment", zap.Error(err))
		return nil, entities.NewStorage("failed to get attachment", err)
	}
	return &att, nil
}

// Delete физически удаляет вложение владельца.
func (r *AttachmentRepository) Delete(ctx context.Context, owner, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "AttachmentRepository.Delete"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`DELETE FROM note_blobs b USING notes n
         WHERE b.id = $1 AND n.note_id = b.note_id AND n.owner = $2 AND n.is_deleted = FALSE`,
		id, owner,
	)
	if err != nil {
		log.Error(ctx, "failed to delete attachment", zap.Error(err))
		return entities.NewStorage("failed to delete attachment", err)
	}
	if result.RowsAffected() == 0 {
		return entities.NewNotFound("attachment", id)
	}
	return nil
}

func (r *AttachmentRepository) listMeta(ctx context.Context, log *logger.Logger, sql string, args ...any) ([]*entities.Attachment, error) {
	rows, err := executor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		log.Error(ctx, "failed to list attachments", zap.Error(err))
		return nil, entities.NewStorage("failed to list attachments", err)
	}
	defer rows.Close()

	out := make([]*entities.Attachment, 0)
	for rows.Next() {
		var att entities.Attachment
		if err := rows.Scan(&att.ID, &att.NoteID, &att.MIME, &att.Size, &att.Filename, &att.CreatedAt); err != nil {
			log.Error(ctx, "failed to scan attachment", zap.Error(err))
			return nil, entities.NewStorage("failed to scan attachment", err)
		}
		out = append(out, &att)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, entities.NewStorage("error iterating rows", err)
	}
	return out, nil
}

// ListByNote возвращает метаданные вложений заметки по возрастанию created_at.
func (r *AttachmentRepository) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attachment, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttachmentRepository.ListByNote"))
	return r.listMeta(ctx, log,
		`SELECT `+attachmentMetaColumns+` FROM note_blobs b JOIN notes n ON n.note_id = b.note_id
         WHERE b.note_id = $1 AND n.owner = $2 ORDER BY b.created_at ASC`,
		noteID, owner)
}

// ListByOwner возвращает метаданные вложений всех видимых заметок владельца.
func (r *AttachmentRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Attachment, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttachmentRepository.ListByOwner"))
	return r.listMeta(ctx, log,
		`SELECT `+attachmentMetaColumns+` FROM note_blobs b JOIN notes n ON n.note_id = b.note_id
         WHERE n.owner = $1 AND n.is_deleted = FALSE ORDER BY b.created_at ASC`,
		owner)
}
