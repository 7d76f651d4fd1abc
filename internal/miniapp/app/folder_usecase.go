package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/domain/names"
	"tgminiapp/internal/miniapp/domain/tree"
	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

// DefaultMaxTreeDepth ограничивает число уровней при каскадном удалении.
const DefaultMaxTreeDepth = 1024

// FolderUseCase представляет бизнес-логику работы с деревом папок.
type FolderUseCase struct {
	folders  repositories.FolderRepository
	items    repositories.CollectionRepository
	tx       repositories.TxManager
	lists    cache.ListCache
	maxDepth int
}

// NewFolderUseCase создает новый экземпляр FolderUseCase.
func NewFolderUseCase(
	folders repositories.FolderRepository,
	items repositories.CollectionRepository,
	tx repositories.TxManager,
	lists cache.ListCache,
	maxDepth int,
) *FolderUseCase {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxTreeDepth
	}
	return &FolderUseCase{
		folders:  folders,
		items:    items,
		tx:       tx,
		lists:    lists,
		maxDepth: maxDepth,
	}
}

// List возвращает все папки владельца.
func (uc *FolderUseCase) List(ctx context.Context, owner string) ([]*entities.Folder, error) {
	return cachedList(ctx, uc.lists, owner, cache.KindFolders, func(ctx context.Context) ([]*entities.Folder, error) {
		return uc.folders.ListByOwner(ctx, owner)
	})
}

// Create создает папку. Имя должно быть уникальным среди соседей.
func (uc *FolderUseCase) Create(ctx context.Context, owner, name string, parentID *int64) (*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderUseCase.Create"))

	name = names.Normalize(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	var created *entities.Folder
	err := uc.tx.ExecTx(ctx, func(ctx context.Context) error {
		if parentID != nil {
			if err := uc.requireParent(ctx, owner, *parentID); err != nil {
				return err
			}
		}
		if err := uc.checkSiblingName(ctx, owner, parentID, name, 0); err != nil {
			return err
		}

		var err error
		created, err = uc.folders.Create(ctx, &entities.Folder{Owner: owner, Name: name, ParentID: parentID})
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.lists, owner, cache.KindFolders)
	log.Info(ctx, "folder created", zap.Int64("folderID", created.ID))
	return created, nil
}

// Update переименовывает и/или переносит папку.
func (uc *FolderUseCase) Update(ctx context.Context, owner string, id int64, patch entities.FolderPatch) (*entities.Folder, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderUseCase.Update"))

	if patch.Empty() {
		return nil, entities.NewNoFieldsSupplied()
	}

	var updated *entities.Folder
	err := uc.tx.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := uc.folders.GetByID(ctx, owner, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := names.Normalize(*patch.Name)
			if err := validateName(name); err != nil {
				return err
			}
			folder.Name = name
		}

		if patch.SetParent {
			if patch.ParentID != nil {
				if err := uc.checkNoCycle(ctx, owner, id, *patch.ParentID); err != nil {
					return err
				}
			}
			folder.ParentID = patch.ParentID
		}

		if err := uc.checkSiblingName(ctx, owner, folder.ParentID, folder.Name, id); err != nil {
			return err
		}
		if err := uc.folders.Update(ctx, folder); err != nil {
			return err
		}
		updated = folder
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.lists, owner, cache.KindFolders)
	log.Info(ctx, "folder updated", zap.Int64("folderID", id))
	return updated, nil
}

// Delete удаляет папку вместе со всем поддеревом в одной транзакции.
// Элементы коллекций из удаленных папок открепляются, а не удаляются.
func (uc *FolderUseCase) Delete(ctx context.Context, owner string, id int64) (*entities.FolderDeleteResult, error) {
	log := logger.Log(ctx).With(zap.String("method", "FolderUseCase.Delete"))

	result := &entities.FolderDeleteResult{}
	err := uc.tx.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := uc.folders.GetByID(ctx, owner, id); err != nil {
			return err
		}

		subtree, err := uc.collectSubtree(ctx, owner, id)
		if err != nil {
			return err
		}

		detached, err := uc.items.DetachFolders(ctx, owner, subtree)
		if err != nil {
			return err
		}
		deleted, err := uc.folders.DeleteMany(ctx, owner, subtree)
		if err != nil {
			return err
		}

		result.DeletedFolders = int(deleted)
		result.DetachedItems = detached
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidate(ctx, uc.lists, owner, cache.KindFolders, cache.KindCollections)
	log.Info(ctx, "folder subtree deleted",
		zap.Int64("folderID", id),
		zap.Int("deletedFolders", result.DeletedFolders),
		zap.Int64("detachedItems", result.DetachedItems))
	return result, nil
}

// collectSubtree обходит потомков по уровням: один запрос на уровень.
// Допускается не больше maxDepth уровней потомков под корнем.
func (uc *FolderUseCase) collectSubtree(ctx context.Context, owner string, rootID int64) ([]int64, error) {
	visited := map[int64]struct{}{rootID: {}}
	all := []int64{rootID}
	frontier := []int64{rootID}

	for depth := 1; len(frontier) > 0; depth++ {
		children, err := uc.folders.ChildIDs(ctx, owner, frontier)
		if err != nil {
			return nil, err
		}
		if len(children) > 0 && depth > uc.maxDepth {
			return nil, entities.NewConsistency(fmt.Sprintf("folder tree is deeper than %d levels", uc.maxDepth))
		}

		next := make([]int64, 0, len(children))
		for _, child := range children {
			if _, seen := visited[child]; seen {
				return nil, entities.NewConsistency(fmt.Sprintf("folder %d is reachable twice: cycle in folder tree", child))
			}
			visited[child] = struct{}{}
			next = append(next, child)
		}
		all = append(all, next...)
		frontier = next
	}
	return all, nil
}

func (uc *FolderUseCase) requireParent(ctx context.Context, owner string, parentID int64) error {
	if _, err := uc.folders.GetByID(ctx, owner, parentID); err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return entities.NewInvalidParent(fmt.Sprintf("parent folder %d does not exist", parentID))
		}
		return err
	}
	return nil
}

func (uc *FolderUseCase) checkNoCycle(ctx context.Context, owner string, id, newParentID int64) error {
	if id == newParentID {
		return entities.NewInvalidParent("cannot move folder into itself")
	}
	if err := uc.requireParent(ctx, owner, newParentID); err != nil {
		return err
	}

	all, err := uc.folders.ListByOwner(ctx, owner)
	if err != nil {
		return err
	}
	descendants := tree.Descendants(all, strconv.FormatInt(id, 10))
	if _, ok := descendants[strconv.FormatInt(newParentID, 10)]; ok {
		return entities.NewInvalidParent("cannot move folder into its own descendant")
	}
	return nil
}

// checkSiblingName ищет соседа с тем же именем; selfID исключается (0 - новая папка).
func (uc *FolderUseCase) checkSiblingName(ctx context.Context, owner string, parentID *int64, name string, selfID int64) error {
	siblings, err := uc.folders.ListSiblings(ctx, owner, parentID)
	if err != nil {
		return err
	}
	for _, s := range siblings {
		if s.ID != selfID && names.Equal(s.Name, name) {
			return entities.NewDuplicateName(name)
		}
	}
	return nil
}
