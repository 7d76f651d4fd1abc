package entities

import "time"

// Значения по умолчанию для новой заметки.
const (
	DefaultNoteTitle = "Новая заметка"
	DefaultNoteType  = "note"
)

// Note - заметка вики. Удаляется мягко.
type Note struct {
	ID           string    `json:"note_id"`
	Owner        string    `json:"owner"`
	ParentNoteID *string   `json:"parent_note_id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	IsDeleted    bool      `json:"is_deleted"`
}

// Key возвращает идентификатор узла для построения дерева.
func (n Note) Key() string { return n.ID }

// ParentKey возвращает идентификатор родителя или "".
func (n Note) ParentKey() string {
	if n.ParentNoteID == nil {
		return ""
	}
	return *n.ParentNoteID
}

// NotePatch - частичное обновление заметки.
type NotePatch struct {
	Title     *string
	Content   *string
	Type      *string
	SetParent bool
	ParentID  *string
}

// Empty сообщает, что обновлять нечего.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Type == nil && !p.SetParent
}
