package entities

import "time"

// Attachment - бинарное вложение заметки. Data не заполняется в списках.
type Attachment struct {
	ID        string    `json:"id"`
	NoteID    string    `json:"note_id"`
	Data      []byte    `json:"-"`
	MIME      string    `json:"mime"`
	Size      int64     `json:"size"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}

// Upload - входные данные загрузки.
type Upload struct {
	Filename string
	MIME     string
	Data     []byte
}
