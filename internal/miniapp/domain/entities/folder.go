// Package entities defines the domain entities of the Mini App backend.
package entities

import (
	"strconv"
	"time"
)

// Folder - узел дерева папок владельца.
type Folder struct {
	ID        int64     `json:"id"`
	Owner     string    `json:"owner"`
	Name      string    `json:"name"`
	ParentID  *int64    `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Key возвращает идентификатор узла для построения дерева.
func (f Folder) Key() string {
	return strconv.FormatInt(f.ID, 10)
}

// ParentKey возвращает идентификатор родителя или "" для корня.
func (f Folder) ParentKey() string {
	if f.ParentID == nil {
		return ""
	}
	return strconv.FormatInt(*f.ParentID, 10)
}

// FolderPatch - частичное обновление папки.
// SetParent=true с ParentID=nil переносит папку в корень.
type FolderPatch struct {
	Name      *string
	SetParent bool
	ParentID  *int64
}

// Empty сообщает, что обновлять нечего.
func (p FolderPatch) Empty() bool {
	return p.Name == nil && !p.SetParent
}

// FolderDeleteResult описывает последствия каскадного удаления.
type FolderDeleteResult struct {
	DeletedFolders int   `json:"deleted_folders"`
	DetachedItems  int64 `json:"detached_items"`
}
