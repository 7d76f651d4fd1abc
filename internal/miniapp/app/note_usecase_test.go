package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tgminiapp/internal/miniapp/adapters/services"
	"tgminiapp/internal/miniapp/app"
	"tgminiapp/internal/miniapp/domain/entities"
)

const (
	noteR  = "11111111-1111-1111-1111-111111111111"
	noteC1 = "22222222-2222-2222-2222-222222222222"
	noteC2 = "33333333-3333-3333-3333-333333333333"
)

type noteFixture struct {
	uc          *app.NoteUseCase
	notes       *mockNoteRepository
	attributes  *mockAttributeRepository
	attachments *mockAttachmentRepository
}

func newNoteFixture() *noteFixture {
	f := &noteFixture{
		notes:       &mockNoteRepository{},
		attributes:  &mockAttributeRepository{},
		attachments: &mockAttachmentRepository{},
	}
	f.uc = app.NewNoteUseCase(f.notes, f.attributes, f.attachments, &txManager{}, services.NewHTMLSanitizer())
	return f
}

func TestNoteUseCase_Create(t *testing.T) {
	ctx := testContext(t)

	t.Run("defaults and sanitising", func(t *testing.T) {
		f := newNoteFixture()
		f.notes.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == entities.DefaultNoteTitle &&
				n.Type == entities.DefaultNoteType &&
				n.Content == "<p>hi</p>" &&
				n.ParentNoteID == nil
		})).Return(&entities.Note{ID: noteR, Owner: "alice", Title: entities.DefaultNoteTitle}, nil)

		note, err := f.uc.Create(ctx, "alice", app.NoteInput{Title: "  ", Content: `<p>hi</p><script>x()</script>`})

		require.NoError(t, err)
		assert.Equal(t, noteR, note.ID)
		f.notes.AssertExpectations(t)
	})

	t.Run("parent must be a visible note of the owner", func(t *testing.T) {
		f := newNoteFixture()
		f.notes.On("GetByID", mock.Anything, "bob", noteR).Return(nil, entities.NewNotFound("note", noteR))

		_, err := f.uc.Create(ctx, "bob", app.NoteInput{Title: "x", ParentNoteID: stringPtr(noteR)})

		var vErr *entities.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, entities.CodeInvalidParent, vErr.Code)
	})

	t.Run("malformed parent id", func(t *testing.T) {
		f := newNoteFixture()

		_, err := f.uc.Create(ctx, "alice", app.NoteInput{ParentNoteID: stringPtr("not-a-uuid")})
		require.ErrorIs(t, err, entities.ErrValidation)
	})
}

func TestNoteUseCase_Get(t *testing.T) {
	ctx := testContext(t)
	f := newNoteFixture()

	_, err := f.uc.Get(ctx, "alice", "nope")
	require.ErrorIs(t, err, entities.ErrNotFound)
	f.notes.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestNoteUseCase_Update(t *testing.T) {
	ctx := testContext(t)
	rows := []*entities.Note{
		{ID: noteR, Owner: "alice", Title: "R"},
		{ID: noteC1, Owner: "alice", Title: "C1", ParentNoteID: stringPtr(noteR)},
		{ID: noteC2, Owner: "alice", Title: "C2", ParentNoteID: stringPtr(noteC1)},
	}

	t.Run("no fields", func(t *testing.T) {
		f := newNoteFixture()
		_, err := f.uc.Update(ctx, "alice", noteR, entities.NotePatch{})
		require.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("title and content", func(t *testing.T) {
		f := newNoteFixture()
		f.notes.On("GetByID", mock.Anything, "alice", noteC1).Return(rows[1], nil)
		f.notes.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.Title == "New" && n.Content == "<b>x</b>" && *n.ParentNoteID == noteR
		})).Return(nil)

		note, err := f.uc.Update(ctx, "alice", noteC1, entities.NotePatch{
			Title:   stringPtr("New"),
			Content: stringPtr(`<b onclick="y()">x</b>`),
		})

		require.NoError(t, err)
		assert.Equal(t, "New", note.Title)
		assert.False(t, note.UpdatedAt.IsZero())
	})

	t.Run("detach to root", func(t *testing.T) {
		f := newNoteFixture()
		f.notes.On("GetByID", mock.Anything, "alice", noteC2).Return(rows[2], nil)
		f.notes.On("Update", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.ParentNoteID == nil
		})).Return(nil)

		note, err := f.uc.Update(ctx, "alice", noteC2, entities.NotePatch{SetParent: true})

		require.NoError(t, err)
		assert.Nil(t, note.ParentNoteID)
	})

	t.Run("cycle guard", func(t *testing.T) {
		f := newNoteFixture()
		f.notes.On("GetByID", mock.Anything, "alice", noteR).Return(rows[0], nil)
		f.notes.On("GetByID", mock.Anything, "alice", noteC2).Return(rows[2], nil)
		f.notes.On("ListByOwner", mock.Anything, "alice").Return(rows, nil)

		_, err := f.uc.Update(ctx, "alice", noteR, entities.NotePatch{SetParent: true, ParentID: stringPtr(noteC2)})

		var vErr *entities.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, entities.CodeInvalidParent, vErr.Code)
		f.notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestNoteUseCase_SoftDeleteSurfacesOrphansAsRoots(t *testing.T) {
	ctx := testContext(t)
	f := newNoteFixture()

	f.notes.On("SoftDelete", mock.Anything, "alice", noteC1).Return(nil)
	require.NoError(t, f.uc.SoftDelete(ctx, "alice", noteC1))

	f.notes.On("ListByOwner", mock.Anything, "alice").Return([]*entities.Note{
		{ID: noteR, Owner: "alice", Title: "R"},
		{ID: noteC2, Owner: "alice", Title: "C2", ParentNoteID: stringPtr(noteC1)},
	}, nil)
	f.attributes.On("ListByOwner", mock.Anything, "alice").Return([]*entities.Attribute{
		{ID: 1, NoteID: noteC2, Name: "tag", Value: "orphan"},
	}, nil)

	forest, err := f.uc.Tree(ctx, "alice")

	require.NoError(t, err)
	require.Len(t, forest, 2)
	assert.Equal(t, "R", forest[0].Item.Note.Title)
	assert.Empty(t, forest[0].Item.Attributes)
	assert.Equal(t, "C2", forest[1].Item.Note.Title)
	require.Len(t, forest[1].Item.Attributes, 1)
}

func TestNoteUseCase_SoftDeleteMissing(t *testing.T) {
	ctx := testContext(t)
	f := newNoteFixture()
	f.notes.On("SoftDelete", mock.Anything, "alice", noteR).Return(entities.NewNotFound("note", noteR))

	require.ErrorIs(t, f.uc.SoftDelete(ctx, "alice", noteR), entities.ErrNotFound)
}

func TestNoteUseCase_Search(t *testing.T) {
	ctx := testContext(t)
	f := newNoteFixture()

	f.notes.On("ListByOwner", mock.Anything, "alice").Return([]*entities.Note{
		{ID: noteR, Title: "Квартальный отчет"},
		{ID: noteC1, Title: "Draft", ParentNoteID: stringPtr(noteR)},
		{ID: noteC2, Title: "Misc", Content: "<p>nothing</p>"},
	}, nil)
	f.attributes.On("ListByOwner", mock.Anything, "alice").Return([]*entities.Attribute{
		{NoteID: noteC2, Name: "status", Value: "ОТЧЕТ готов"},
	}, nil)
	f.attachments.On("ListByOwner", mock.Anything, "alice").Return([]*entities.Attachment{
		{NoteID: noteC1, Filename: "otchet-report.pdf"},
	}, nil)

	found, err := f.uc.Search(ctx, "alice", "отчет")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, noteR, found[0].Note.ID)
	assert.Equal(t, noteC2, found[1].Note.ID)

	found, err = f.uc.Search(ctx, "alice", "REPORT")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, noteC1, found[0].Note.ID)

	found, err = f.uc.Search(ctx, "alice", " ")
	require.NoError(t, err)
	assert.Len(t, found, 3)
}
