// Package dto содержит структуры запросов и ответов REST API.
package dto

import (
	"bytes"
	"encoding/json"
)

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SuccessResponse подтверждает мутацию.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// RowsResponse оборачивает список.
type RowsResponse[T any] struct {
	Rows []T `json:"rows"`
}

// IDResponse возвращает идентификатор созданной записи.
type IDResponse struct {
	ID string `json:"id"`
}

// TestResponse - ответ проверки живости.
type TestResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ToggleRequest - запрос включения элемента коллекции.
type ToggleRequest struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// MoveRequest - перенос элемента коллекции в папку.
type MoveRequest struct {
	FolderID *int64 `json:"folder_id"`
}

// CreateFolderRequest - создание папки.
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// UpdateFolderRequest - переименование и/или перенос папки.
type UpdateFolderRequest struct {
	Name     *string       `json:"name"`
	ParentID OptionalInt64 `json:"parent_id"`
}

// CreateNoteRequest - создание заметки.
type CreateNoteRequest struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Type         string  `json:"type"`
	ParentNoteID *string `json:"parent_note_id"`
}

// UpdateNoteRequest - частичное обновление заметки.
type UpdateNoteRequest struct {
	Title        *string        `json:"title"`
	Content      *string        `json:"content"`
	Type         *string        `json:"type"`
	ParentNoteID OptionalString `json:"parent_note_id"`
}

// NoteResponse оборачивает созданную заметку.
type NoteResponse[T any] struct {
	Note T `json:"note"`
}

// CreateAttributeRequest - новый атрибут заметки.
type CreateAttributeRequest struct {
	NoteID        string `json:"note_id"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	Position      int    `json:"position"`
	IsInheritable bool   `json:"is_inheritable"`
}

// UpdateAttributeRequest - частичное обновление атрибута.
type UpdateAttributeRequest struct {
	Type          *string `json:"type"`
	Name          *string `json:"name"`
	Value         *string `json:"value"`
	Position      *int    `json:"position"`
	IsInheritable *bool   `json:"is_inheritable"`
}

var jsonNull = []byte("null")

// OptionalInt64 различает отсутствующее поле, null и значение.
type OptionalInt64 struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON вызывается только для присутствующего поля, в том числе null.
func (o *OptionalInt64) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, jsonNull) {
		o.Value = nil
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// OptionalString различает отсутствующее поле, null и значение.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON вызывается только для присутствующего поля, в том числе null.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, jsonNull) {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
