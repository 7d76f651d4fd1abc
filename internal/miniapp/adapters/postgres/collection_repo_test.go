package postgres_test

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgminiapp/internal/miniapp/adapters/postgres"
	"tgminiapp/internal/miniapp/domain/entities"
)

func TestCollectionRepository_ListByOwner(t *testing.T) {
	ctx := testContext(t)

	t.Run("rows ordered by name", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT name, active, folder_id, uuid::text FROM vector_collections").
			WithArgs("alice").
			WillReturnRows(pgxmock.NewRows([]string{"name", "active", "folder_id", "uuid"}).
				AddRow("doc-a", true, int64Ptr(4), "u-a").
				AddRow("doc-b", false, nil, "u-b"))

		repo := postgres.NewCollectionRepository(mock)
		items, err := repo.ListByOwner(ctx, "alice")

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "alice", items[0].Owner)
		assert.True(t, items[0].Active)
		assert.Equal(t, int64(4), *items[0].FolderID)
		assert.Nil(t, items[1].FolderID)
	})

	t.Run("missing table yields empty list", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM vector_collections").
			WithArgs("alice").
			WillReturnError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"})

		repo := postgres.NewCollectionRepository(mock)
		items, err := repo.ListByOwner(ctx, "alice")

		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("other errors surface", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("FROM vector_collections").
			WithArgs("alice").
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewCollectionRepository(mock)
		_, err := repo.ListByOwner(ctx, "alice")
		require.ErrorIs(t, err, entities.ErrStorage)
	})
}

func TestCollectionRepository_SetActiveAndSetFolder(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectExec("UPDATE vector_collections SET active").
		WithArgs(true, "alice", "doc-a").
		WillReturnResult(pgconn.NewCommandTag("UPDATE 1"))
	mock.ExpectExec("UPDATE vector_collections SET folder_id = \\$1").
		WithArgs(int64Ptr(999), "alice", "doc-a").
		WillReturnResult(pgconn.NewCommandTag("UPDATE 1"))
	mock.ExpectExec("UPDATE vector_collections SET active").
		WithArgs(false, "alice", "ghost").
		WillReturnResult(pgconn.NewCommandTag("UPDATE 0"))

	repo := postgres.NewCollectionRepository(mock)

	n, err := repo.SetActive(ctx, "alice", "doc-a", true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.SetFolder(ctx, "alice", "doc-a", int64Ptr(999))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.SetActive(ctx, "alice", "ghost", false)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionRepository_GetUUIDAndDelete(t *testing.T) {
	ctx := testContext(t)

	t.Run("found and deleted", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT uuid::text FROM vector_collections").
			WithArgs("alice", "doc-a").
			WillReturnRows(pgxmock.NewRows([]string{"uuid"}).AddRow("u-a"))
		mock.ExpectExec("DELETE FROM vector_collections").
			WithArgs("alice", "doc-a").
			WillReturnResult(pgconn.NewCommandTag("DELETE 1"))

		repo := postgres.NewCollectionRepository(mock)

		id, err := repo.GetUUID(ctx, "alice", "doc-a")
		require.NoError(t, err)
		assert.Equal(t, "u-a", id)
		require.NoError(t, repo.Delete(ctx, "alice", "doc-a"))
	})

	t.Run("missing item", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT uuid::text FROM vector_collections").
			WithArgs("alice", "ghost").
			WillReturnError(pgx.ErrNoRows)
		mock.ExpectExec("DELETE FROM vector_collections").
			WithArgs("alice", "ghost").
			WillReturnResult(pgconn.NewCommandTag("DELETE 0"))

		repo := postgres.NewCollectionRepository(mock)

		_, err := repo.GetUUID(ctx, "alice", "ghost")
		require.ErrorIs(t, err, entities.ErrNotFound)
		require.ErrorIs(t, repo.Delete(ctx, "alice", "ghost"), entities.ErrNotFound)
	})
}

func TestCollectionRepository_DetachFolders(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectExec("UPDATE vector_collections SET folder_id = NULL").
		WithArgs("alice", []int64{1, 2}).
		WillReturnResult(pgconn.NewCommandTag("UPDATE 2"))

	repo := postgres.NewCollectionRepository(mock)
	n, err := repo.DetachFolders(ctx, "alice", []int64{1, 2})

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
