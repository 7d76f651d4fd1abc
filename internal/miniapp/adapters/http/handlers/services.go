// Package handlers содержит HTTP-обработчики REST API Mini App.
package handlers

import (
	"context"

	"tgminiapp/internal/miniapp/app"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/domain/tree"
)

// FolderService - сценарии работы с папками.
type FolderService interface {
	List(ctx context.Context, owner string) ([]*entities.Folder, error)
	Create(ctx context.Context, owner, name string, parentID *int64) (*entities.Folder, error)
	Update(ctx context.Context, owner string, id int64, patch entities.FolderPatch) (*entities.Folder, error)
	Delete(ctx context.Context, owner string, id int64) (*entities.FolderDeleteResult, error)
}

// CollectionService - сценарии реестра коллекций.
type CollectionService interface {
	List(ctx context.Context, owner string) ([]*entities.CollectionItem, error)
	ToggleActive(ctx context.Context, owner, name string, active bool) error
	Move(ctx context.Context, owner, name string, folderID *int64) error
	Delete(ctx context.Context, owner, name string) error
	Tree(ctx context.Context, owner string) (*app.Library, error)
}

// NoteService - сценарии работы с заметками.
type NoteService interface {
	Create(ctx context.Context, owner string, input app.NoteInput) (*entities.Note, error)
	Get(ctx context.Context, owner, id string) (*entities.Note, error)
	List(ctx context.Context, owner string) ([]*entities.Note, error)
	Update(ctx context.Context, owner, id string, patch entities.NotePatch) (*entities.Note, error)
	SoftDelete(ctx context.Context, owner, id string) error
	Tree(ctx context.Context, owner string) ([]*tree.Node[app.NoteNode], error)
	Search(ctx context.Context, owner, term string) ([]app.NoteNode, error)
}

// AttributeService - сценарии работы с атрибутами заметок.
type AttributeService interface {
	Create(ctx context.Context, owner string, attr entities.Attribute) (*entities.Attribute, error)
	Update(ctx context.Context, owner string, id int64, patch entities.AttributePatch) (*entities.Attribute, error)
	Delete(ctx context.Context, owner string, id int64) error
	ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attribute, error)
}

// AttachmentService - сценарии работы с вложениями.
type AttachmentService interface {
	Put(ctx context.Context, owner, noteID string, upload *entities.Upload) (string, error)
	Get(ctx context.Context, owner, id string) (*entities.Attachment, error)
	Delete(ctx context.Context, owner, id string) error
	ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attachment, error)
}
