package logger

import (
	"context"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Имена полей, которые logger берет из контекста запроса.
const (
	RequestID = "request_id"
	Owner     = "owner"
)

// MaxRequestIDLength - предельная длина принимаемого от клиента id запроса.
const MaxRequestIDLength = 64

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

type (
	requestIDKeyType struct{}
	ownerKeyType     struct{}
)

var (
	requestIDKey = requestIDKeyType{}
	ownerKey     = ownerKeyType{}
)

// NewRequestIDContext кладет id запроса в контекст. Пустой или недопустимый
// id заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if !ValidRequestID(requestID) {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// ValidRequestID проверяет id запроса из заголовка: непустой, не длиннее
// MaxRequestIDLength, только латиница, цифры и символы "-", "_", ".".
func ValidRequestID(id string) bool {
	return validation.Validate(id,
		validation.Required,
		validation.Length(1, MaxRequestIDLength),
		validation.Match(requestIDPattern),
	) == nil
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.New().String()
}

// NewOwnerContext кладет владельца запроса в контекст, чтобы каждая запись
// журнала в рамках запроса была помечена им.
func NewOwnerContext(ctx context.Context, owner string) context.Context {
	if owner == "" {
		return ctx
	}
	return context.WithValue(ctx, ownerKey, owner)
}

// GetOwner извлекает владельца запроса из контекста.
func GetOwner(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(ownerKey).(string)
	return owner, ok
}

func contextFields(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if id, ok := GetRequestID(ctx); ok {
		fields = append(fields, zap.String(RequestID, id))
	}
	if owner, ok := GetOwner(ctx); ok {
		fields = append(fields, zap.String(Owner, owner))
	}
	return fields
}
