package entities

// Attribute - типизированная пара имя/значение, прикрепленная к заметке.
type Attribute struct {
	ID            int64  `json:"id"`
	NoteID        string `json:"note_id"`
	Type          string `json:"type"`
	Name          string `json:"name"`
	Value         string `json:"value"`
	Position      int    `json:"position"`
	IsInheritable bool   `json:"is_inheritable"`
}

// AttributePatch - частичное обновление атрибута.
type AttributePatch struct {
	Type          *string
	Name          *string
	Value         *string
	Position      *int
	IsInheritable *bool
}

// Empty сообщает, что обновлять нечего.
func (p AttributePatch) Empty() bool {
	return p.Type == nil && p.Name == nil && p.Value == nil && p.Position == nil && p.IsInheritable == nil
}
