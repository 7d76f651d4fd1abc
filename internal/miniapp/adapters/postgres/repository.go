package postgres

import (
	"tgminiapp/internal/miniapp/ports/repositories"
)

// RepositoryFactory создает репозитории для работы с базой данных.
type RepositoryFactory struct {
	pool PgxPoolInterface
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{pool: pool}
}

// TxManager возвращает менеджер транзакций, общий для всех репозиториев фабрики.
func (f *RepositoryFactory) TxManager() repositories.TxManager {
	return NewTransactionManager(f.pool)
}

// FolderRepository возвращает репозиторий папок.
func (f *RepositoryFactory) FolderRepository() repositories.FolderRepository {
	return NewFolderRepository(f.pool)
}

// CollectionRepository возвращает репозиторий коллекций.
func (f *RepositoryFactory) CollectionRepository() repositories.CollectionRepository {
	return NewCollectionRepository(f.pool)
}

// NoteRepository возвращает репозиторий заметок.
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository {
	return NewNoteRepository(f.pool)
}

// AttributeRepository возвращает репозиторий атрибутов.
func (f *RepositoryFactory) AttributeRepository() repositories.AttributeRepository {
	return NewAttributeRepository(f.pool)
}

// AttachmentRepository возвращает репозиторий вложений.
func (f *RepositoryFactory) AttachmentRepository() repositories.AttachmentRepository {
	return NewAttachmentRepository(f.pool)
}
