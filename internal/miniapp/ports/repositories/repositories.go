// Package repositories defines persistence ports of the Mini App backend.
//
// Every method is scoped by owner. A missing or foreign row is reported as
// entities.NotFoundError; driver failures as entities.StorageError.
package repositories

import (
	"context"

	"tgminiapp/internal/miniapp/domain/entities"
)

// TxManager выполняет fn в одной транзакции. Репозитории, вызванные с
// переданным контекстом, участвуют в этой транзакции.
type TxManager interface {
	ExecTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// FolderRepository хранит дерево папок.
type FolderRepository interface {
	Create(ctx context.Context, folder *entities.Folder) (*entities.Folder, error)
	GetByID(ctx context.Context, owner string, id int64) (*entities.Folder, error)
	ListByOwner(ctx context.Context, owner string) ([]*entities.Folder, error)
	ListSiblings(ctx context.Context, owner string, parentID *int64) ([]*entities.Folder, error)
	Update(ctx context.Context, folder *entities.Folder) error
	ChildIDs(ctx context.Context, owner string, parentIDs []int64) ([]int64, error)
	DeleteMany(ctx context.Context, owner string, ids []int64) (int64, error)
}

// CollectionRepository хранит элементы коллекций и связанные с ними эмбеддинги.
type CollectionRepository interface {
	ListByOwner(ctx context.Context, owner string) ([]*entities.CollectionItem, error)
	SetActive(ctx context.Context, owner, name string, active bool) (int64, error)
	SetFolder(ctx context.Context, owner, name string, folderID *int64) (int64, error)
	GetUUID(ctx context.Context, owner, name string) (string, error)
	Delete(ctx context.Context, owner, name string) error
	DeleteEmbeddings(ctx context.Context, collectionUUID string) (int64, error)
	DetachFolders(ctx context.Context, owner string, folderIDs []int64) (int64, error)
}

// NoteRepository хранит заметки. Мягко удаленные заметки не видны при чтении.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, owner, id string) (*entities.Note, error)
	ListByOwner(ctx context.Context, owner string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	SoftDelete(ctx context.Context, owner, id string) error
}

// AttributeRepository хранит атрибуты заметок; владение проверяется через заметку.
type AttributeRepository interface {
	Create(ctx context.Context, owner string, attr *entities.Attribute) (*entities.Attribute, error)
	GetByID(ctx context.Context, owner string, id int64) (*entities.Attribute, error)
	Update(ctx context.Context, owner string, attr *entities.Attribute) error
	Delete(ctx context.Context, owner string, id int64) error
	ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attribute, error)
	ListByOwner(ctx context.Context, owner string) ([]*entities.Attribute, error)
}

// AttachmentRepository хранит вложения; владение проверяется через заметку.
type AttachmentRepository interface {
	Create(ctx context.Context, att *entities.Attachment) error
	GetByID(ctx context.Context, owner, id string) (*entities.Attachment, error)
	Delete(ctx context.Context, owner, id string) error
	ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attachment, error)
	ListByOwner(ctx context.Context, owner string) ([]*entities.Attachment, error)
}
