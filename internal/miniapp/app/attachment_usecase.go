package app

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

// DefaultAttachmentName используется, когда клиент не передал имя файла.
const DefaultAttachmentName = "attachment"

// AttachmentUseCase представляет бизнес-логику вложений заметок.
type AttachmentUseCase struct {
	attachments repositories.AttachmentRepository
	notes       repositories.NoteRepository
	maxBytes    int64
}

// NewAttachmentUseCase создает новый экземпляр AttachmentUseCase.
// maxBytes <= 0 отключает ограничение размера.
func NewAttachmentUseCase(
	attachments repositories.AttachmentRepository,
	notes repositories.NoteRepository,
	maxBytes int64,
) *AttachmentUseCase {
	return &AttachmentUseCase{attachments: attachments, notes: notes, maxBytes: maxBytes}
}

// Put сохраняет вложение видимой заметки владельца и возвращает его id.
func (uc *AttachmentUseCase) Put(ctx context.Context, owner, noteID string, upload *entities.Upload) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttachmentUseCase.Put"))

	if upload == nil || len(upload.Data) == 0 {
		return "", entities.NewPartialInput("file is required")
	}
	if uc.maxBytes > 0 && int64(len(upload.Data)) > uc.maxBytes {
		return "", entities.NewPartialInput(fmt.Sprintf("file is larger than %d bytes", uc.maxBytes))
	}

	id, err := parseNoteID(noteID)
	if err != nil {
		return "", err
	}
	if _, err := uc.notes.GetByID(ctx, owner, id); err != nil {
		return "", err
	}

	att := &entities.Attachment{
		ID:       uuid.NewString(),
		NoteID:   id,
		Data:     upload.Data,
		MIME:     strings.TrimSpace(upload.MIME),
		Size:     int64(len(upload.Data)),
		Filename: filepath.Base(strings.TrimSpace(upload.Filename)),
	}
	if att.MIME == "" {
		att.MIME = http.DetectContentType(upload.Data)
	}
	if att.Filename == "." || att.Filename == string(filepath.Separator) {
		att.Filename = DefaultAttachmentName
	}

	if err := uc.attachments.Create(ctx, att); err != nil {
		return "", err
	}

	log.Info(ctx, "attachment stored",
		zap.String("attachmentID", att.ID),
		zap.String("noteID", id),
		zap.Int64("size", att.Size))
	return att.ID, nil
}

// Get возвращает вложение с данными, если заметка принадлежит владельцу.
func (uc *AttachmentUseCase) Get(ctx context.Context, owner, id string) (*entities.Attachment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.NewNotFound("attachment", id)
	}
	return uc.attachments.GetByID(ctx, owner, id)
}

// Delete удаляет вложение владельца.
func (uc *AttachmentUseCase) Delete(ctx context.Context, owner, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return entities.NewNotFound("attachment", id)
	}
	return uc.attachments.Delete(ctx, owner, id)
}

// ListByNote возвращает метаданные вложений заметки.
func (uc *AttachmentUseCase) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attachment, error) {
	id, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.notes.GetByID(ctx, owner, id); err != nil {
		return nil, err
	}
	return uc.attachments.ListByNote(ctx, owner, id)
}
