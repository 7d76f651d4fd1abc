// Package cache определяет порт кэша списков владельца.
package cache

import (
	"context"
	"errors"
)

// ErrUnavailable возвращается, когда кэш временно отключен и обращение к нему пропущено.
var ErrUnavailable = errors.New("list cache is temporarily disabled")

// Version - поколение списка. Invalidate увеличивает поколение,
// и SetList со старым поколением ничего не записывает.
type Version int64

// ListCache кэширует сериализованные списки по владельцу и виду списка.
// Промах возвращает found=false без ошибки и текущее поколение, которое
// нужно передать в SetList после загрузки списка из базы.
type ListCache interface {
	GetList(ctx context.Context, owner, kind string, dst any) (found bool, version Version, err error)
	SetList(ctx context.Context, owner, kind string, version Version, value any) error
	Invalidate(ctx context.Context, owner string, kinds ...string) error
	Close() error
}

// Виды кэшируемых списков.
const (
	KindFolders     = "folders"
	KindCollections = "collections"
)
