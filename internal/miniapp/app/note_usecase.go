package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/domain/names"
	"tgminiapp/internal/miniapp/domain/tree"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/internal/miniapp/ports/services"
	"tgminiapp/pkg/logger"
)

// NoteInput - данные новой заметки.
type NoteInput struct {
	Title        string
	Content      string
	Type         string
	ParentNoteID *string
}

// NoteNode - заметка с ее атрибутами в дереве вики.
type NoteNode struct {
	Note       *entities.Note        `json:"note"`
	Attributes []*entities.Attribute `json:"attributes"`
}

// NoteUseCase представляет собой бизнес-логику работы с заметками.
type NoteUseCase struct {
	notes       repositories.NoteRepository
	attributes  repositories.AttributeRepository
	attachments repositories.AttachmentRepository
	tx          repositories.TxManager
	sanitizer   services.Sanitizer
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(
	notes repositories.NoteRepository,
	attributes repositories.AttributeRepository,
	attachments repositories.AttachmentRepository,
	tx repositories.TxManager,
	sanitizer services.Sanitizer,
) *NoteUseCase {
	return &NoteUseCase{
		notes:       notes,
		attributes:  attributes,
		attachments: attachments,
		tx:          tx,
		sanitizer:   sanitizer,
	}
}

func normalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return entities.DefaultNoteTitle
	}
	if len([]rune(title)) > MaxTitleLength {
		title = string([]rune(title)[:MaxTitleLength])
	}
	return title
}

func normalizeType(noteType string) string {
	noteType = strings.TrimSpace(noteType)
	if noteType == "" {
		return entities.DefaultNoteType
	}
	return noteType
}

// Create создает заметку владельца.
func (uc *NoteUseCase) Create(ctx context.Context, owner string, input NoteInput) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Create"))

	note := &entities.Note{
		Owner:   owner,
		Title:   normalizeTitle(input.Title),
		Content: uc.sanitizer.Sanitize(input.Content),
		Type:    normalizeType(input.Type),
	}

	if input.ParentNoteID != nil {
		parentID, err := uc.requireParent(ctx, owner, *input.ParentNoteID)
		if err != nil {
			return nil, err
		}
		note.ParentNoteID = &parentID
	}

	created, err := uc.notes.Create(ctx, note)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "note created", zap.String("noteID", created.ID))
	return created, nil
}

// Get возвращает видимую заметку владельца.
func (uc *NoteUseCase) Get(ctx context.Context, owner, id string) (*entities.Note, error) {
	noteID, err := parseNoteID(id)
	if err != nil {
		return nil, err
	}
	return uc.notes.GetByID(ctx, owner, noteID)
}

// List возвращает все видимые заметки владельца.
func (uc *NoteUseCase) List(ctx context.Context, owner string) ([]*entities.Note, error) {
	return uc.notes.ListByOwner(ctx, owner)
}

// Update применяет частичное обновление заметки.
func (uc *NoteUseCase) Update(ctx context.Context, owner, id string, patch entities.NotePatch) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Update"))

	if patch.Empty() {
		return nil, entities.NewNoFieldsSupplied()
	}
	noteID, err := parseNoteID(id)
	if err != nil {
		return nil, err
	}

	var updated *entities.Note
	err = uc.tx.ExecTx(ctx, func(ctx context.Context) error {
		note, err := uc.notes.GetByID(ctx, owner, noteID)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			note.Title = normalizeTitle(*patch.Title)
		}
		if patch.Content != nil {
			note.Content = uc.sanitizer.Sanitize(*patch.Content)
		}
		if patch.Type != nil {
			note.Type = normalizeType(*patch.Type)
		}
		if patch.SetParent {
			note.ParentNoteID = nil
			if patch.ParentID != nil {
				parentID, err := uc.checkNoCycle(ctx, owner, noteID, *patch.ParentID)
				if err != nil {
					return err
				}
				note.ParentNoteID = &parentID
			}
		}

		if err := uc.notes.Update(ctx, note); err != nil {
			return err
		}
		note.UpdatedAt = time.Now().UTC()
		updated = note
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "note updated", zap.String("noteID", noteID))
	return updated, nil
}

// SoftDelete помечает заметку удаленной. Дочерние заметки не затрагиваются.
func (uc *NoteUseCase) SoftDelete(ctx context.Context, owner, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.SoftDelete"))

	noteID, err := parseNoteID(id)
	if err != nil {
		return err
	}
	if err := uc.notes.SoftDelete(ctx, owner, noteID); err != nil {
		return err
	}

	log.Info(ctx, "note soft-deleted", zap.String("noteID", noteID))
	return nil
}

// Tree возвращает лес видимых заметок. Заметка, чей родитель удален,
// становится корнем.
func (uc *NoteUseCase) Tree(ctx context.Context, owner string) ([]*tree.Node[NoteNode], error) {
	notes, err := uc.notes.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	attrs, err := uc.attributes.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	byNote := make(map[string][]*entities.Attribute, len(notes))
	for _, a := range attrs {
		byNote[a.NoteID] = append(byNote[a.NoteID], a)
	}

	return tree.Map(tree.Build(notes), func(n *entities.Note) NoteNode {
		attached := byNote[n.ID]
		if attached == nil {
			attached = make([]*entities.Attribute, 0)
		}
		return NoteNode{Note: n, Attributes: attached}
	}), nil
}

// Search возвращает заметки в прямом порядке дерева, у которых term
// встречается в заголовке, тексте, атрибутах или именах вложений.
func (uc *NoteUseCase) Search(ctx context.Context, owner, term string) ([]NoteNode, error) {
	forest, err := uc.Tree(ctx, owner)
	if err != nil {
		return nil, err
	}
	all := tree.Flatten(forest)

	term = strings.TrimSpace(term)
	if term == "" {
		return all, nil
	}

	blobs, err := uc.attachments.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	filenames := make(map[string][]string)
	for _, b := range blobs {
		filenames[b.NoteID] = append(filenames[b.NoteID], b.Filename)
	}

	found := make([]NoteNode, 0)
	for _, node := range all {
		if matchesNote(node, filenames[node.Note.ID], term) {
			found = append(found, node)
		}
	}
	return found, nil
}

func matchesNote(node NoteNode, filenames []string, term string) bool {
	if names.Contains(node.Note.Title, term) || names.Contains(node.Note.Content, term) {
		return true
	}
	for _, a := range node.Attributes {
		if names.Contains(a.Name, term) || names.Contains(a.Value, term) {
			return true
		}
	}
	for _, f := range filenames {
		if names.Contains(f, term) {
			return true
		}
	}
	return false
}

func (uc *NoteUseCase) requireParent(ctx context.Context, owner, parentID string) (string, error) {
	parsed, err := parseNoteID(parentID)
	if err == nil {
		_, err = uc.notes.GetByID(ctx, owner, parsed)
	}
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return "", entities.NewInvalidParent("parent note does not exist")
		}
		return "", err
	}
	return parsed, nil
}

func (uc *NoteUseCase) checkNoCycle(ctx context.Context, owner, id, newParentID string) (string, error) {
	parentID, err := uc.requireParent(ctx, owner, newParentID)
	if err != nil {
		return "", err
	}
	if parentID == id {
		return "", entities.NewInvalidParent("cannot move note under itself")
	}

	all, err := uc.notes.ListByOwner(ctx, owner)
	if err != nil {
		return "", err
	}
	if _, ok := tree.Descendants(all, id)[parentID]; ok {
		return "", entities.NewInvalidParent("cannot move note under its own descendant")
	}
	return parentID, nil
}
