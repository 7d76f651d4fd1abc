package app

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

// Типы атрибутов.
const (
	AttributeTypeLabel    = "label"
	AttributeTypeRelation = "relation"
)

// AttributeUseCase представляет бизнес-логику атрибутов заметок.
type AttributeUseCase struct {
	attributes repositories.AttributeRepository
	notes      repositories.NoteRepository
}

// NewAttributeUseCase создает новый экземпляр AttributeUseCase.
func NewAttributeUseCase(attributes repositories.AttributeRepository, notes repositories.NoteRepository) *AttributeUseCase {
	return &AttributeUseCase{attributes: attributes, notes: notes}
}

func validateAttribute(attr *entities.Attribute) error {
	if attr.Name == "" {
		return entities.NewMissingField("name")
	}
	err := validation.ValidateStruct(attr,
		validation.Field(&attr.Type, validation.Required, validation.In(AttributeTypeLabel, AttributeTypeRelation)),
		validation.Field(&attr.Name, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&attr.Position, validation.Min(0)),
	)
	if err != nil {
		return entities.NewInvalidInput(err)
	}
	return nil
}

// Create прикрепляет атрибут к видимой заметке владельца.
func (uc *AttributeUseCase) Create(ctx context.Context, owner string, attr entities.Attribute) (*entities.Attribute, error) {
	log := logger.Log(ctx).With(zap.String("method", "AttributeUseCase.Create"))

	noteID, err := parseNoteID(attr.NoteID)
	if err != nil {
		return nil, err
	}
	attr.NoteID = noteID
	attr.Name = strings.TrimSpace(attr.Name)
	if attr.Type == "" {
		attr.Type = AttributeTypeLabel
	}
	if err := validateAttribute(&attr); err != nil {
		return nil, err
	}

	created, err := uc.attributes.Create(ctx, owner, &attr)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "attribute created", zap.Int64("attributeID", created.ID), zap.String("noteID", noteID))
	return created, nil
}

// Update применяет частичное обновление атрибута.
func (uc *AttributeUseCase) Update(ctx context.Context, owner string, id int64, patch entities.AttributePatch) (*entities.Attribute, error) {
	if patch.Empty() {
		return nil, entities.NewNoFieldsSupplied()
	}

	attr, err := uc.attributes.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if patch.Type != nil {
		attr.Type = *patch.Type
	}
	if patch.Name != nil {
		attr.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Value != nil {
		attr.Value = *patch.Value
	}
	if patch.Position != nil {
		attr.Position = *patch.Position
	}
	if patch.IsInheritable != nil {
		attr.IsInheritable = *patch.IsInheritable
	}
	if err := validateAttribute(attr); err != nil {
		return nil, err
	}

	if err := uc.attributes.Update(ctx, owner, attr); err != nil {
		return nil, err
	}
	return attr, nil
}

// Delete удаляет атрибут владельца.
func (uc *AttributeUseCase) Delete(ctx context.Context, owner string, id int64) error {
	return uc.attributes.Delete(ctx, owner, id)
}

// ListByNote возвращает атрибуты видимой заметки владельца.
func (uc *AttributeUseCase) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attribute, error) {
	id, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.notes.GetByID(ctx, owner, id); err != nil {
		return nil, err
	}
	return uc.attributes.ListByNote(ctx, owner, id)
}
