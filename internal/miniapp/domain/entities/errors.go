package entities

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError - ошибка, которая знает свой HTTP статус.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel-ошибки для errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConsistency  = errors.New("stored data is inconsistent")
	ErrStorage      = errors.New("storage failure")
	ErrUnauthorized = errors.New("unauthorized")
)

// Коды ошибок валидации.
const (
	CodeDuplicateName    = "duplicate_name"
	CodeNoFieldsSupplied = "no_fields_supplied"
	CodeMissingField     = "missing_field"
	CodeInvalidParent    = "invalid_parent"
	CodePartialInput     = "partial_input"
	CodeInvalidInput     = "invalid_input"
)

// ValidationError - некорректный ввод (400).
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string   { return e.Message }
func (e *ValidationError) Unwrap() error   { return ErrValidation }
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// NotFoundError - запись отсутствует или принадлежит другому владельцу (404).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}
func (e *NotFoundError) Unwrap() error   { return ErrNotFound }
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// ConsistencyError - хранимый лес содержит цикл или превышает лимит глубины (500).
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string   { return e.Message }
func (e *ConsistencyError) Unwrap() error   { return ErrConsistency }
func (e *ConsistencyError) StatusCode() int { return http.StatusInternalServerError }

// StorageError - сбой драйвера БД (500). Сообщение драйвера уходит клиенту в details.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}
func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
func (e *StorageError) StatusCode() int { return http.StatusInternalServerError }

// UnauthorizedError - владелец запроса не определен (401).
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string   { return e.Message }
func (e *UnauthorizedError) Unwrap() error   { return ErrUnauthorized }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }

// NewDuplicateName сообщает о совпадении имени среди соседей.
func NewDuplicateName(name string) error {
	return &ValidationError{
		Code:    CodeDuplicateName,
		Field:   "name",
		Message: fmt.Sprintf("an item named %q already exists here", name),
	}
}

// NewNoFieldsSupplied возвращается, когда частичное обновление пустое.
func NewNoFieldsSupplied() error {
	return &ValidationError{Code: CodeNoFieldsSupplied, Message: "no fields to update"}
}

// NewMissingField сообщает об отсутствии обязательного поля.
func NewMissingField(field string) error {
	return &ValidationError{Code: CodeMissingField, Field: field, Message: field + " is required"}
}

// NewInvalidParent сообщает о недопустимом родителе.
func NewInvalidParent(message string) error {
	return &ValidationError{Code: CodeInvalidParent, Field: "parent_id", Message: message}
}

// NewPartialInput сообщает о неполных входных данных (например, пустой файл).
func NewPartialInput(message string) error {
	return &ValidationError{Code: CodePartialInput, Message: message}
}

// NewInvalidInput оборачивает ошибку проверки полей.
func NewInvalidInput(err error) error {
	return &ValidationError{Code: CodeInvalidInput, Message: err.Error()}
}

// NewConsistency сообщает о цикле или превышении глубины в хранимом лесу.
func NewConsistency(message string) error {
	return &ConsistencyError{Message: message}
}

// NewNotFound создает ошибку отсутствия записи.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// NewStorage оборачивает ошибку драйвера.
func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// StatusCode извлекает HTTP статус из цепочки ошибок, по умолчанию 500.
func StatusCode(err error) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode()
	}
	return http.StatusInternalServerError
}
