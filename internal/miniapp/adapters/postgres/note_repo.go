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

const noteColumns = `note_id::text, owner, parent_note_id::text, title, content, type, created_at, updated_at, is_deleted`

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	pool PgxPoolInterface
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(pool PgxPoolInterface) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var n entities.Note
	err := row.Scan(&n.ID, &n.Owner, &n.ParentNoteID, &n.Title, &n.Content, &n.Type,
		&n.CreatedAt, &n.UpdatedAt, &n.IsDeleted)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create сохраняет новую заметку в БД.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Create"))
	log.Debug(ctx, "creating new note", zap.String("owner", note.Owner))

	created := *note
	err := executor(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO notes (owner, parent_note_id, title, content, type) VALUES ($1, $2, $3, $4, $5)
         RETURNING note_id::text, created_at, updated_at`,
		note.Owner, note.ParentNoteID, note.Title, note.Content, note.Type,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		log.Error(ctx, "failed to create note", zap.Error(err))
		return nil, entities.NewStorage("failed to create note", err)
	}

	log.Debug(ctx, "note created", zap.String("noteID", created.ID))
	return &created, nil
}

// GetByID получает видимую заметку владельца.
func (r *NoteRepository) GetByID(ctx context.Context, owner, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.GetByID"))
	log.Debug(ctx, "getting note", zap.String("noteID", id), zap.String("owner", owner))

	note, err := scanNote(executor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE note_id = $1 AND owner = $2 AND is_deleted = FALSE`,
		id, owner,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("noteID", id))
			return nil, entities.NewNotFound("note", id)
		}
		log.Error(ctx, "failed to get note", zap.Error(err))
		return nil, entities.NewStorage("failed to get note", err)
	}
	return note, nil
}

// ListByOwner возвращает все видимые заметки владельца.
func (r *NoteRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.ListByOwner"))

	rows, err := executor(ctx, r.pool).Query(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE owner = $1 AND is_deleted = FALSE ORDER BY created_at, note_id`,
		owner,
	)
	if err != nil {
		log.Error(ctx, "failed to list notes", zap.Error(err))
		return nil, entities.NewStorage("failed to list notes", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, "failed to scan note", zap.Error(err))
			return nil, entities.NewStorage("failed to scan note", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating rows", zap.Error(err))
		return nil, entities.NewStorage("error iterating rows", err)
	}
	return notes, nil
}

// Update сохраняет изменяемые поля заметки и обновляет updated_at.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.Update"))
	log.Debug(ctx, "updating note", zap.String("noteID", note.ID))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE notes SET title = $1, content = $2, type = $3, parent_note_id = $4, updated_at = now()
         WHERE note_id = $5 AND owner = $6 AND is_deleted = FALSE`,
		note.Title, note.Content, note.Type, note.ParentNoteID, note.ID, note.Owner,
	)
	if err != nil {
		log.Error(ctx, "failed to update note", zap.Error(err))
		return entities.NewStorage("failed to update note", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.NewNotFound("note", note.ID)
	}
	return nil
}

// SoftDelete помечает заметку удаленной. Дочерние заметки не затрагиваются.
func (r *NoteRepository) SoftDelete(ctx context.Context, owner, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.SoftDelete"))
	log.Debug(ctx, "soft deleting note", zap.String("noteID", id))

	result, err := executor(ctx, r.pool).Exec(ctx,
		`UPDATE notes SET is_deleted = TRUE, updated_at = now() WHERE note_id = $1 AND owner = $2 AND is_deleted = FALSE`,
		id, owner,
	)
	if err != nil {
		log.Error(ctx, "failed to delete note", zap.Error(err))
		return entities.NewStorage("failed to delete note", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found or not owned by user")
		return entities.NewNotFound("note", id)
	}
	return nil
}
