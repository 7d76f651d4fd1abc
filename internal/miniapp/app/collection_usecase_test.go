package app_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cacheadapter "tgminiapp/internal/miniapp/adapters/cache"
	"tgminiapp/internal/miniapp/app"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/pkg/db/redis"
)

func newCollectionUseCase() (*app.CollectionUseCase, *mockCollectionRepository, *mockFolderRepository, *txManager) {
	items := &mockCollectionRepository{}
	folders := &mockFolderRepository{}
	tx := &txManager{}
	noop := cacheadapter.NewNoopListCache()
	folderUC := app.NewFolderUseCase(folders, items, tx, noop, 0)
	return app.NewCollectionUseCase(items, folderUC, tx, noop), items, folders, tx
}

func TestCollectionUseCase_ToggleActive(t *testing.T) {
	ctx := testContext(t)

	t.Run("toggle is idempotent", func(t *testing.T) {
		uc, items, _, _ := newCollectionUseCase()
		items.On("SetActive", mock.Anything, "alice", "doc-a", true).Return(int64(1), nil).Twice()

		require.NoError(t, uc.ToggleActive(ctx, "alice", "doc-a", true))
		require.NoError(t, uc.ToggleActive(ctx, "alice", "doc-a", true))
		items.AssertExpectations(t)
	})

	t.Run("unknown name is silent", func(t *testing.T) {
		uc, items, _, _ := newCollectionUseCase()
		items.On("SetActive", mock.Anything, "alice", "ghost", false).Return(int64(0), nil)

		require.NoError(t, uc.ToggleActive(ctx, "alice", "ghost", false))
	})

	t.Run("name is required", func(t *testing.T) {
		uc, _, _, _ := newCollectionUseCase()
		require.ErrorIs(t, uc.ToggleActive(ctx, "alice", "", true), entities.ErrValidation)
	})
}

func TestCollectionUseCase_Move(t *testing.T) {
	ctx := testContext(t)

	t.Run("dangling folder reference is stored", func(t *testing.T) {
		uc, items, folders, _ := newCollectionUseCase()
		items.On("SetFolder", mock.Anything, "alice", "doc-a", int64Ptr(999)).Return(int64(1), nil)

		require.NoError(t, uc.Move(ctx, "alice", "doc-a", int64Ptr(999)))
		folders.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing item", func(t *testing.T) {
		uc, items, _, _ := newCollectionUseCase()
		items.On("SetFolder", mock.Anything, "alice", "ghost", (*int64)(nil)).Return(int64(0), nil)

		require.ErrorIs(t, uc.Move(ctx, "alice", "ghost", nil), entities.ErrNotFound)
	})
}

func TestCollectionUseCase_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("embeddings removed with the item", func(t *testing.T) {
		uc, items, _, tx := newCollectionUseCase()
		items.On("GetUUID", mock.Anything, "alice", "doc-a").Return("u-a", nil)
		items.On("DeleteEmbeddings", mock.Anything, "u-a").Return(int64(12), nil)
		items.On("Delete", mock.Anything, "alice", "doc-a").Return(nil)

		require.NoError(t, uc.Delete(ctx, "alice", "doc-a"))
		assert.Equal(t, 1, tx.calls)
		items.AssertExpectations(t)
	})

	t.Run("missing item", func(t *testing.T) {
		uc, items, _, _ := newCollectionUseCase()
		items.On("GetUUID", mock.Anything, "alice", "ghost").Return("", entities.NewNotFound("collection item", "ghost"))

		require.ErrorIs(t, uc.Delete(ctx, "alice", "ghost"), entities.ErrNotFound)
		items.AssertNotCalled(t, "DeleteEmbeddings", mock.Anything, mock.Anything)
	})
}

func TestCollectionUseCase_ListAndTree(t *testing.T) {
	ctx := testContext(t)
	uc, items, folders, _ := newCollectionUseCase()

	folders.On("ListByOwner", mock.Anything, "alice").Return([]*entities.Folder{
		{ID: 1, Owner: "alice", Name: "Work"},
		{ID: 2, Owner: "alice", Name: "Archive"},
	}, nil)
	items.On("ListByOwner", mock.Anything, "alice").Return([]*entities.CollectionItem{
		{Name: "b.pdf", Active: false, FolderID: int64Ptr(1)},
		{Name: "a.pdf", Active: false, FolderID: int64Ptr(1)},
		{Name: "z.pdf", Active: true, FolderID: int64Ptr(1)},
		{Name: "lost.pdf", FolderID: int64Ptr(999)},
		{Name: "loose.pdf"},
	}, nil)

	list, err := uc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "alice", list[0].Owner)

	lib, err := uc.Tree(ctx, "alice")
	require.NoError(t, err)

	require.Len(t, lib.Folders, 2)
	assert.Equal(t, "Archive", lib.Folders[0].Item.Folder.Name)
	work := lib.Folders[1].Item
	require.Len(t, work.Items, 3)
	assert.Equal(t, []string{"z.pdf", "a.pdf", "b.pdf"},
		[]string{work.Items[0].Name, work.Items[1].Name, work.Items[2].Name})
	assert.Empty(t, lib.Folders[0].Item.Items)
	assert.NotNil(t, lib.Folders[0].Item.Items)

	require.Len(t, lib.Unfiled, 2)
	assert.Equal(t, "loose.pdf", lib.Unfiled[0].Name)
	assert.Equal(t, "lost.pdf", lib.Unfiled[1].Name)
}

func newRedisListCache(t *testing.T) cache.ListCache {
	t.Helper()

	s := miniredis.RunT(t)
	host, portStr, _ := strings.Cut(s.Addr(), ":")
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := redis.DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	client, err := redis.NewClient(context.Background(), cfg)
	require.NoError(t, err)

	lists := cacheadapter.NewRedisListCache(client, "miniapp", 5*time.Minute)
	t.Cleanup(func() { _ = lists.Close() })
	return lists
}

func newCachedCollectionUseCase(t *testing.T) (*app.CollectionUseCase, *mockCollectionRepository) {
	t.Helper()

	items := &mockCollectionRepository{}
	lists := newRedisListCache(t)
	folderUC := app.NewFolderUseCase(&mockFolderRepository{}, items, &txManager{}, lists, 0)
	return app.NewCollectionUseCase(items, folderUC, &txManager{}, lists), items
}

// collectionRows возвращает новый срез при каждом вызове, как это делает репозиторий.
func collectionRows(docAActive bool) []*entities.CollectionItem {
	return []*entities.CollectionItem{
		{Name: "doc-a", Active: docAActive, UUID: "u-a"},
		{Name: "doc-b", Active: true, FolderID: int64Ptr(1), UUID: "u-b"},
		{Name: "doc-c", Active: false, UUID: "u-c"},
	}
}

func byName(items []*entities.CollectionItem) map[string]entities.CollectionItem {
	out := make(map[string]entities.CollectionItem, len(items))
	for _, item := range items {
		out[item.Name] = *item
	}
	return out
}

func TestCollectionUseCase_ToggleThenListWithRedisCache(t *testing.T) {
	ctx := testContext(t)
	uc, items := newCachedCollectionUseCase(t)

	items.On("ListByOwner", mock.Anything, "alice").Return(collectionRows(false), nil).Once()
	items.On("ListByOwner", mock.Anything, "alice").Return(collectionRows(true), nil).Once()
	items.On("SetActive", mock.Anything, "alice", "doc-a", true).Return(int64(1), nil).Once()

	before, err := uc.List(ctx, "alice")
	require.NoError(t, err)
	cachedBefore, err := uc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, byName(before), byName(cachedBefore))
	items.AssertNumberOfCalls(t, "ListByOwner", 1)

	require.NoError(t, uc.ToggleActive(ctx, "alice", "doc-a", true))

	after, err := uc.List(ctx, "alice")
	require.NoError(t, err)
	items.AssertNumberOfCalls(t, "ListByOwner", 2)

	was, now := byName(before), byName(after)
	require.Len(t, now, len(was))
	assert.False(t, was["doc-a"].Active)
	assert.True(t, now["doc-a"].Active)
	for name, item := range was {
		if name == "doc-a" {
			continue
		}
		assert.Equal(t, item, now[name], "item %s must stay unchanged", name)
	}
}

func TestCollectionUseCase_ListDoesNotCacheSnapshotOlderThanToggle(t *testing.T) {
	ctx := testContext(t)
	uc, items := newCachedCollectionUseCase(t)

	loaded := make(chan struct{})
	release := make(chan struct{})
	items.On("ListByOwner", mock.Anything, "alice").Return(collectionRows(false), nil).Run(func(mock.Arguments) {
		close(loaded)
		<-release
	}).Once()
	items.On("ListByOwner", mock.Anything, "alice").Return(collectionRows(true), nil).Once()
	items.On("SetActive", mock.Anything, "alice", "doc-a", true).Return(int64(1), nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := uc.List(ctx, "alice")
		done <- err
	}()

	<-loaded
	require.NoError(t, uc.ToggleActive(ctx, "alice", "doc-a", true))
	close(release)
	require.NoError(t, <-done)

	for range 2 {
		got, err := uc.List(ctx, "alice")
		require.NoError(t, err)
		assert.True(t, byName(got)["doc-a"].Active)
	}
	items.AssertNumberOfCalls(t, "ListByOwner", 2)
	items.AssertExpectations(t)
}
