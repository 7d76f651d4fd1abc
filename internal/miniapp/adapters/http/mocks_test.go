package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tgminiapp/internal/miniapp/app"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/domain/tree"
)

type mockFolderService struct {
	mock.Mock
}

func (m *mockFolderService) List(ctx context.Context, owner string) ([]*entities.Folder, error) {
	args := m.Called(ctx, owner)
	folders, _ := args.Get(0).([]*entities.Folder)
	return folders, args.Error(1)
}

func (m *mockFolderService) Create(ctx context.Context, owner, name string, parentID *int64) (*entities.Folder, error) {
	args := m.Called(ctx, owner, name, parentID)
	folder, _ := args.Get(0).(*entities.Folder)
	return folder, args.Error(1)
}

func (m *mockFolderService) Update(ctx context.Context, owner string, id int64, patch entities.FolderPatch) (*entities.Folder, error) {
	args := m.Called(ctx, owner, id, patch)
	folder, _ := args.Get(0).(*entities.Folder)
	return folder, args.Error(1)
}

func (m *mockFolderService) Delete(ctx context.Context, owner string, id int64) (*entities.FolderDeleteResult, error) {
	args := m.Called(ctx, owner, id)
	result, _ := args.Get(0).(*entities.FolderDeleteResult)
	return result, args.Error(1)
}

type mockCollectionService struct {
	mock.Mock
}

func (m *mockCollectionService) List(ctx context.Context, owner string) ([]*entities.CollectionItem, error) {
	args := m.Called(ctx, owner)
	items, _ := args.Get(0).([]*entities.CollectionItem)
	return items, args.Error(1)
}

func (m *mockCollectionService) ToggleActive(ctx context.Context, owner, name string, active bool) error {
	return m.Called(ctx, owner, name, active).Error(0)
}

func (m *mockCollectionService) Move(ctx context.Context, owner, name string, folderID *int64) error {
	return m.Called(ctx, owner, name, folderID).Error(0)
}

func (m *mockCollectionService) Delete(ctx context.Context, owner, name string) error {
	return m.Called(ctx, owner, name).Error(0)
}

func (m *mockCollectionService) Tree(ctx context.Context, owner string) (*app.Library, error) {
	args := m.Called(ctx, owner)
	library, _ := args.Get(0).(*app.Library)
	return library, args.Error(1)
}

type mockNoteService struct {
	mock.Mock
}

func (m *mockNoteService) Create(ctx context.Context, owner string, input app.NoteInput) (*entities.Note, error) {
	args := m.Called(ctx, owner, input)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteService) Get(ctx context.Context, owner, id string) (*entities.Note, error) {
	args := m.Called(ctx, owner, id)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteService) List(ctx context.Context, owner string) ([]*entities.Note, error) {
	args := m.Called(ctx, owner)
	notes, _ := args.Get(0).([]*entities.Note)
	return notes, args.Error(1)
}

func (m *mockNoteService) Update(ctx context.Context, owner, id string, patch entities.NotePatch) (*entities.Note, error) {
	args := m.Called(ctx, owner, id, patch)
	note, _ := args.Get(0).(*entities.Note)
	return note, args.Error(1)
}

func (m *mockNoteService) SoftDelete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockNoteService) Tree(ctx context.Context, owner string) ([]*tree.Node[app.NoteNode], error) {
	args := m.Called(ctx, owner)
	roots, _ := args.Get(0).([]*tree.Node[app.NoteNode])
	return roots, args.Error(1)
}

func (m *mockNoteService) Search(ctx context.Context, owner, term string) ([]app.NoteNode, error) {
	args := m.Called(ctx, owner, term)
	found, _ := args.Get(0).([]app.NoteNode)
	return found, args.Error(1)
}

type mockAttributeService struct {
	mock.Mock
}

func (m *mockAttributeService) Create(ctx context.Context, owner string, attr entities.Attribute) (*entities.Attribute, error) {
	args := m.Called(ctx, owner, attr)
	created, _ := args.Get(0).(*entities.Attribute)
	return created, args.Error(1)
}

func (m *mockAttributeService) Update(ctx context.Context, owner string, id int64, patch entities.AttributePatch) (*entities.Attribute, error) {
	args := m.Called(ctx, owner, id, patch)
	updated, _ := args.Get(0).(*entities.Attribute)
	return updated, args.Error(1)
}

func (m *mockAttributeService) Delete(ctx context.Context, owner string, id int64) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockAttributeService) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attribute, error) {
	args := m.Called(ctx, owner, noteID)
	attrs, _ := args.Get(0).([]*entities.Attribute)
	return attrs, args.Error(1)
}

type mockAttachmentService struct {
	mock.Mock
}

func (m *mockAttachmentService) Put(ctx context.Context, owner, noteID string, upload *entities.Upload) (string, error) {
	args := m.Called(ctx, owner, noteID, upload)
	return args.String(0), args.Error(1)
}

func (m *mockAttachmentService) Get(ctx context.Context, owner, id string) (*entities.Attachment, error) {
	args := m.Called(ctx, owner, id)
	att, _ := args.Get(0).(*entities.Attachment)
	return att, args.Error(1)
}

func (m *mockAttachmentService) Delete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockAttachmentService) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attachment, error) {
	args := m.Called(ctx, owner, noteID)
	atts, _ := args.Get(0).([]*entities.Attachment)
	return atts, args.Error(1)
}
