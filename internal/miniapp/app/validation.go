package app

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"tgminiapp/internal/miniapp/domain/entities"
)

// Ограничения на пользовательские имена.
const (
	MaxNameLength  = 255
	MaxTitleLength = 500
)

var errSlashInName = errors.New("must not contain '/'")

func noSlash(value interface{}) error {
	s, _ := value.(string)
	if strings.Contains(s, "/") {
		return errSlashInName
	}
	return nil
}

// validateName проверяет уже нормализованное имя папки или элемента.
func validateName(name string) error {
	if name == "" {
		return entities.NewMissingField("name")
	}
	if err := validation.Validate(name,
		validation.RuneLength(1, MaxNameLength),
		validation.By(noSlash),
	); err != nil {
		return entities.NewInvalidInput(validation.Errors{"name": err})
	}
	return nil
}

// parseNoteID отбрасывает заведомо несуществующие id до обращения к БД.
func parseNoteID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", entities.NewNotFound("note", id)
	}
	return parsed.String(), nil
}
