package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

// txManager выполняет fn без транзакции и запоминает число вызовов.
type txManager struct {
	calls int
}

func (m *txManager) ExecTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockFolderRepository struct {
	mock.Mock
}

func (m *mockFolderRepository) Create(ctx context.Context, folder *entities.Folder) (*entities.Folder, error) {
	args := m.Called(ctx, folder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) GetByID(ctx context.Context, owner string, id int64) (*entities.Folder, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	copied := *args.Get(0).(*entities.Folder)
	return &copied, args.Error(1)
}

func (m *mockFolderRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Folder, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) ListSiblings(ctx context.Context, owner string, parentID *int64) ([]*entities.Folder, error) {
	args := m.Called(ctx, owner, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Folder), args.Error(1)
}

func (m *mockFolderRepository) Update(ctx context.Context, folder *entities.Folder) error {
	return m.Called(ctx, folder).Error(0)
}

func (m *mockFolderRepository) ChildIDs(ctx context.Context, owner string, parentIDs []int64) ([]int64, error) {
	args := m.Called(ctx, owner, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockFolderRepository) DeleteMany(ctx context.Context, owner string, ids []int64) (int64, error) {
	args := m.Called(ctx, owner, ids)
	return args.Get(0).(int64), args.Error(1)
}

type mockCollectionRepository struct {
	mock.Mock
}

func (m *mockCollectionRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.CollectionItem, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.CollectionItem), args.Error(1)
}

func (m *mockCollectionRepository) SetActive(ctx context.Context, owner, name string, active bool) (int64, error) {
	args := m.Called(ctx, owner, name, active)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollectionRepository) SetFolder(ctx context.Context, owner, name string, folderID *int64) (int64, error) {
	args := m.Called(ctx, owner, name, folderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollectionRepository) GetUUID(ctx context.Context, owner, name string) (string, error) {
	args := m.Called(ctx, owner, name)
	return args.String(0), args.Error(1)
}

func (m *mockCollectionRepository) Delete(ctx context.Context, owner, name string) error {
	return m.Called(ctx, owner, name).Error(0)
}

func (m *mockCollectionRepository) DeleteEmbeddings(ctx context.Context, collectionUUID string) (int64, error) {
	args := m.Called(ctx, collectionUUID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCollectionRepository) DetachFolders(ctx context.Context, owner string, folderIDs []int64) (int64, error) {
	args := m.Called(ctx, owner, folderIDs)
	return args.Get(0).(int64), args.Error(1)
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, owner, id string) (*entities.Note, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	copied := *args.Get(0).(*entities.Note)
	return &copied, args.Error(1)
}

func (m *mockNoteRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Note, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) SoftDelete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

type mockAttributeRepository struct {
	mock.Mock
}

func (m *mockAttributeRepository) Create(ctx context.Context, owner string, attr *entities.Attribute) (*entities.Attribute, error) {
	args := m.Called(ctx, owner, attr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Attribute), args.Error(1)
}

func (m *mockAttributeRepository) GetByID(ctx context.Context, owner string, id int64) (*entities.Attribute, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	copied := *args.Get(0).(*entities.Attribute)
	return &copied, args.Error(1)
}

func (m *mockAttributeRepository) Update(ctx context.Context, owner string, attr *entities.Attribute) error {
	return m.Called(ctx, owner, attr).Error(0)
}

func (m *mockAttributeRepository) Delete(ctx context.Context, owner string, id int64) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockAttributeRepository) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attribute, error) {
	args := m.Called(ctx, owner, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attribute), args.Error(1)
}

func (m *mockAttributeRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Attribute, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attribute), args.Error(1)
}

type mockAttachmentRepository struct {
	mock.Mock
}

func (m *mockAttachmentRepository) Create(ctx context.Context, att *entities.Attachment) error {
	return m.Called(ctx, att).Error(0)
}

func (m *mockAttachmentRepository) GetByID(ctx context.Context, owner, id string) (*entities.Attachment, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Attachment), args.Error(1)
}

func (m *mockAttachmentRepository) Delete(ctx context.Context, owner, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockAttachmentRepository) ListByNote(ctx context.Context, owner, noteID string) ([]*entities.Attachment, error) {
	args := m.Called(ctx, owner, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attachment), args.Error(1)
}

func (m *mockAttachmentRepository) ListByOwner(ctx context.Context, owner string) ([]*entities.Attachment, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Attachment), args.Error(1)
}

type mockListCache struct {
	mock.Mock
}

func (m *mockListCache) GetList(ctx context.Context, owner, kind string, dst any) (bool, cache.Version, error) {
	args := m.Called(ctx, owner, kind, dst)
	return args.Bool(0), args.Get(1).(cache.Version), args.Error(2)
}

func (m *mockListCache) SetList(ctx context.Context, owner, kind string, version cache.Version, value any) error {
	return m.Called(ctx, owner, kind, version, value).Error(0)
}

func (m *mockListCache) Invalidate(ctx context.Context, owner string, kinds ...string) error {
	return m.Called(ctx, owner, kinds).Error(0)
}

func (m *mockListCache) Close() error {
	return m.Called().Error(0)
}
