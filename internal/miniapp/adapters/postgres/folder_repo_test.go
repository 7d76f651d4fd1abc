package postgres_test

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tgminiapp/internal/miniapp/adapters/postgres"
	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/repositories"
)

var folderCols = []string{"id", "owner", "name", "parent_id", "created_at"}

func TestFolderRepositoryImplementsInterface(_ *testing.T) {
	var _ repositories.FolderRepository = (*postgres.FolderRepository)(nil)
}

func TestFolderRepository_Create(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("returns folder with assigned id", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO folders").
			WithArgs("alice", "Work", (*int64)(nil)).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

		repo := postgres.NewFolderRepository(mock)
		folder, err := repo.Create(ctx, &entities.Folder{Owner: "alice", Name: "Work"})

		require.NoError(t, err)
		assert.Equal(t, int64(7), folder.ID)
		assert.Equal(t, now, folder.CreatedAt)
		assert.Nil(t, folder.ParentID)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO folders").
			WithArgs("alice", "Work", int64Ptr(1)).
			WillReturnError(errDatabaseConnection)

		repo := postgres.NewFolderRepository(mock)
		folder, err := repo.Create(ctx, &entities.Folder{Owner: "alice", Name: "Work", ParentID: int64Ptr(1)})

		assert.Nil(t, folder)
		require.ErrorIs(t, err, entities.ErrStorage)
		assert.Contains(t, err.Error(), "failed to create folder")
	})
}

func TestFolderRepository_GetByID(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, owner, name, parent_id, created_at FROM folders WHERE id").
			WithArgs(int64(2), "alice").
			WillReturnRows(pgxmock.NewRows(folderCols).AddRow(int64(2), "alice", "Sub", int64Ptr(1), now))

		repo := postgres.NewFolderRepository(mock)
		folder, err := repo.GetByID(ctx, "alice", 2)

		require.NoError(t, err)
		assert.Equal(t, "Sub", folder.Name)
		require.NotNil(t, folder.ParentID)
		assert.Equal(t, int64(1), *folder.ParentID)
	})

	t.Run("not found or foreign", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("SELECT id, owner, name, parent_id, created_at FROM folders WHERE id").
			WithArgs(int64(2), "bob").
			WillReturnError(pgx.ErrNoRows)

		repo := postgres.NewFolderRepository(mock)
		folder, err := repo.GetByID(ctx, "bob", 2)

		assert.Nil(t, folder)
		require.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestFolderRepository_ListByOwner(t *testing.T) {
	ctx := testContext(t)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock := newMock(t)
	mock.ExpectQuery("FROM folders WHERE owner = \\$1 ORDER BY id").
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows(folderCols).
			AddRow(int64(1), "alice", "Work", nil, now).
			AddRow(int64(2), "alice", "Sub", int64Ptr(1), now))

	repo := postgres.NewFolderRepository(mock)
	folders, err := repo.ListByOwner(ctx, "alice")

	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Nil(t, folders[0].ParentID)
	assert.Equal(t, int64(1), *folders[1].ParentID)
}

func TestFolderRepository_ListSiblings(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectQuery("parent_id IS NOT DISTINCT FROM").
		WithArgs("alice", (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows(folderCols))

	repo := postgres.NewFolderRepository(mock)
	folders, err := repo.ListSiblings(ctx, "alice", nil)

	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestFolderRepository_Update(t *testing.T) {
	ctx := testContext(t)

	t.Run("updated", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE folders SET name").
			WithArgs("Renamed", (*int64)(nil), int64(3), "alice").
			WillReturnResult(pgconn.NewCommandTag("UPDATE 1"))

		repo := postgres.NewFolderRepository(mock)
		require.NoError(t, repo.Update(ctx, &entities.Folder{ID: 3, Owner: "alice", Name: "Renamed"}))
	})

	t.Run("no rows is not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec("UPDATE folders SET name").
			WithArgs("Renamed", (*int64)(nil), int64(3), "bob").
			WillReturnResult(pgconn.NewCommandTag("UPDATE 0"))

		repo := postgres.NewFolderRepository(mock)
		err := repo.Update(ctx, &entities.Folder{ID: 3, Owner: "bob", Name: "Renamed"})
		require.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestFolderRepository_ChildIDsAndDeleteMany(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectQuery("SELECT id FROM folders WHERE owner = \\$1 AND parent_id = ANY").
		WithArgs("alice", []int64{1}).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)).AddRow(int64(3)))
	mock.ExpectExec("DELETE FROM folders WHERE owner = \\$1 AND id = ANY").
		WithArgs("alice", []int64{1, 2, 3}).
		WillReturnResult(pgconn.NewCommandTag("DELETE 3"))

	repo := postgres.NewFolderRepository(mock)

	ids, err := repo.ChildIDs(ctx, "alice", []int64{1})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids)

	n, err := repo.DeleteMany(ctx, "alice", []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
