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

const attributeColumns = `a.id, a.note_id::text, a.type, a.name, a.value, a.position, a.is_inheritable`

// AttributeRepository реализует интерфейс repositories.AttributeRepository.
type AttributeRepository struct {
	pool PgxPoolInterface
}

// NewAttributeRepository создает новый репозиторий атрибутов.
func NewAttributeRepository(pool PgxPoolInterface) repositories.AttributeRepository {
	return &AttributeRepository{pool: pool}
}

func scanAttribute(row pgx.Row) (*entities.Attribute, error) {
	var a entities.Attribute
	if err := row.Scan(&a.ID, &a.NoteID, &a.Type, &a.Name, &a.Value, &a.Position, &a.IsInheritable); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttributeRepository) list(ctx context.Context, log *logger.Logger, sql string, args ...any) ([]*entities.Attribute, error) {
	rows, err := executor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		log.Error(ctx, "failed to list attributes", zap.Error(err))
		return nil, entities.NewStorage("failed to list attributes", err)
	}
	defer rows.Close()

	attrs := make([]*entities.Attribute, 0)
	for rows.Next() {
		a, err := scanAttribute(rows)
		if err != nil {
			log.Error(ctx, "failed to scan attribute", zap.Error(err))
			return nil, entities.NewStorage("failed to scan attribute", err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, entities.NewStorage("error iterating rows", err)
	}
	return attrs, nil
}

// Create добавляет атрибут к видимой заметке владельца.
func (r *AttributeRepository) Create(ctx context.Context, owner string, attr *entities.Attribute) (*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttributeRepository.Create"))
	log.Debug(ctx, "creating attribute", zap.String("noteID", attr.NoteID), zap.String("name", attr.Name))

	created := *attr
	err := executor(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO note_attributes (note_id, type, name, value, position, is_inheritable)
         SELECT n.note_id, $3, $4, $5, $6, $7 FROM notes n
         WHERE n.note_id = $1 AND n.owner = $2 AND n.is_deleted = FALSE
         RETURNING id`,
		attr.NoteID, owner, attr.Type, attr.Name, attr.Value, attr.Position, attr.IsInheritable,
	).Scan(&created.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFound("note", attr.NoteID)
		}
		log.Error(ctx, "failed to create attribute", zap.Error(err))
		return nil, entities.NewStorage("failed to create attribute", err)
	}
	return &created, nil
}

// GetByID возвращает атрибут, если его заметка принадлежит владельцу и не удалена.
func (r *AttributeRepository) GetByID(ctx context.Context, owner string, id int64) (*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttributeRepository.GetByID"))

	attr, err := scanAttribute(executor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+attributeColumns+` FROM note_attributes a JOIN notes n ON n.note_id = a.note_id
         WHERE a.id = $1 AND n.owner = $2 AND n.is_deleted = FALSE`,
		id, owner,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.NewNotFound("attribute", strconv.FormatInt(id, 10))
		}
		log.Error(ctx, "failed to get attribute", zap.Error(err))
		return nil, entities.NewStorage("failed to get attribute", err)
	}
	return attr, nil
}

// Update сохраняет все изменяемые поля атрибута.
func (r *AttributeRepository) Update(ctx context.Context, owner string, attr *entities.Attribute) error {
	log := logger.Log(ctx).With(zap.String("method", "AttributeRepository.Update"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE note_attributes a SET type = $1, name = $2, value = $3, position = $4, is_inheritable = $5
         FROM notes n WHERE a.id = $6 AND n.note_id = a.note_id AND n.owner = $7 AND n.is_deleted = FALSE`,
		attr.Type, attr.Name, attr.Value, attr.Position, attr.IsInheritable, attr.ID, owner,
	)
	if err != nil {
		log.Error(ctx, "failed to update attribute", zap.Error(err))
		return entities.NewStorage("failed to update attribute", err)
	}
	if result.RowsAffected() == 0 {
		return entities.NewNotFound("attribute", strconv.FormatInt(attr.ID, 10))
	}
	return nil
}

// Delete удаляет атрибут владельца.
func (r *AttributeRepository) Delete(ctx context.Context, owner string, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "AttributeRepository.Delete"))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`DELETE FROM note_attributes a USING notes n
         WHERE a.id = $1 AND n.note_id = a.note_id AND n.owner = $2 AND n.is_deleted = FALSE`,
		id, owner,
	)
	if err != nil {
		log.Error(ctx, "failed to delete attribute", zap.Error(err))
		return entities.NewStorage("failed to delete attribute", err)
	}
	if result.RowsAffected() == 0 {
		return entities.NewNotFound("attribute", strconv.FormatInt(id, 10))
	}
	return nil
}

// ListByNote возвращает атрибуты заметки в порядке position.
func (r *AttributeRepository) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttributeRepository.ListByNote"))
	return r.list(ctx, log,
		`SELECT `+attributeColumns+` FROM note_attributes a JOIN notes n ON n.note_id = a.note_id
         WHERE a.note_id = $1 AND n.owner = $2 ORDER BY a.position, a.id`,
		noteID, owner)
}

// ListByOwner возвращает атрибуты всех видимых заметок владельца.
func (r *AttributeRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttributeRepository.ListByOwner"))
	return r.list(ctx, log,
		`SELECT `+attributeColumns+` FROM note_attributes a JOIN notes n ON n.note_id = a.note_id
         WHERE n.owner = $1 AND n.is_deleted = FALSE ORDER BY a.note_id, a.position, a.id`,
		owner)
}
