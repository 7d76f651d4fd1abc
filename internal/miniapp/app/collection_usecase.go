package app

import (
	"context"

	"go.uber.org/zap"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/ports/cache"
	"tgminiapp/internal/miniapp/ports/repositories"
	"tgminiapp/pkg/logger"
)

// CollectionUseCase представляет бизнес-логику реестра коллекций.
type CollectionUseCase struct {
	items   repositories.CollectionRepository
	folders *FolderUseCase
	tx      repositories.TxManager
	lists   cache.ListCache
}

// NewCollectionUseCase создает новый экземпляр CollectionUseCase.
func NewCollectionUseCase(
	items repositories.CollectionRepository,
	folders *FolderUseCase,
	tx repositories.TxManager,
	lists cache.ListCache,
) *CollectionUseCase {
	return &CollectionUseCase{
		items:   items,
		folders: folders,
		tx:      tx,
		lists:   lists,
	}
}

// List возвращает элементы владельца по возрастанию имени.
func (uc *CollectionUseCase) List(ctx context.Context, owner string) ([]*entities.CollectionItem, error) {
	items, err := cachedList(ctx, uc.lists, owner, cache.KindCollections, func(ctx context.Context) ([]*entities.CollectionItem, error) {
		return uc.items.ListByOwner(ctx, owner)
	})
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.Owner = owner
	}
	return items, nil
}

// ToggleActive включает или выключает элемент. Неизвестное имя не является ошибкой.
func (uc *CollectionUseCase) ToggleActive(ctx context.Context, owner, name string, active bool) error {
	log := logger.Log(ctx).With(zap.String("method", "CollectionUseCase.ToggleActive"))

	if name == "" {
		return entities.NewMissingField("name")
	}

	affected, err := uc.items.SetActive(ctx, owner, name, active)
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug(ctx, "toggle matched no collection item", zap.String("name", name))
	}

	invalidate(ctx, uc.lists, owner, cache.KindCollections)
	return nil
}

// Move помещает элемент в папку (nil - вне папок). Существование папки не проверяется.
func (uc *CollectionUseCase) Move(ctx context.Context, owner, name string, folderID *int64) error {
	log := logger.Log(ctx).With(zap.String("method", "CollectionUseCase.Move"))

	affected, err := uc.items.SetFolder(ctx, owner, name, folderID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return entities.NewNotFound("collection item", name)
	}

	invalidate(ctx, uc.lists, owner, cache.KindCollections)
	log.Info(ctx, "collection item moved", zap.String("name", name), zap.Any("folderID", folderID))
	return nil
}

// Delete удаляет элемент вместе с его эмбеддингами в одной транзакции.
func (uc *CollectionUseCase) Delete(ctx context.Context, owner, name string) error {
	log := logger.Log(ctx).With(zap.String("method", "CollectionUseCase.Delete"))

	var embeddings int64
	err := uc.tx.ExecTx(ctx, func(ctx context.Context) error {
		collectionUUID, err := uc.items.GetUUID(ctx, owner, name)
		if err != nil {
			return err
		}
		if embeddings, err = uc.items.DeleteEmbeddings(ctx, collectionUUID); err != nil {
			return err
		}
		return uc.items.Delete(ctx, owner, name)
	})
	if err != nil {
		return err
	}

	invalidate(ctx, uc.lists, owner, cache.KindCollections)
	log.Info(ctx, "collection item deleted", zap.String("name", name), zap.Int64("embeddings", embeddings))
	return nil
}

// Tree возвращает дерево папок с элементами.
func (uc *CollectionUseCase) Tree(ctx context.Context, owner string) (*Library, error) {
	folders, err := uc.folders.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	items, err := uc.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return BuildLibrary(folders, items), nil
}
