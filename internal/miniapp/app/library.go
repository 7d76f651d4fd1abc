package app

import (
	"slices"
	"strconv"

	"tgminiapp/internal/miniapp/domain/entities"
	"tgminiapp/internal/miniapp/domain/names"
	"tgminiapp/internal/miniapp/domain/tree"
)

// FolderNode - папка с прикрепленными к ней элементами коллекции.
type FolderNode struct {
	Folder *entities.Folder           `json:"folder"`
	Items  []*entities.CollectionItem `json:"items"`
}

// Library - дерево папок и элементы вне папок.
// Элемент со ссылкой на несуществующую папку попадает в Unfiled.
type Library struct {
	Folders []*tree.Node[FolderNode]   `json:"folders"`
	Unfiled []*entities.CollectionItem `json:"unfiled"`
}

func compareFolders(a, b *entities.Folder) int {
	return names.Compare(a.Name, b.Name)
}

// compareItems ставит активные элементы первыми, затем сортирует по имени.
func compareItems(a, b *entities.CollectionItem) int {
	if a.Active != b.Active {
		if a.Active {
			return -1
		}
		return 1
	}
	return names.Compare(a.Name, b.Name)
}

// BuildLibrary собирает дерево папок и раскладывает по ним элементы.
func BuildLibrary(folders []*entities.Folder, items []*entities.CollectionItem) *Library {
	byFolder := make(map[string][]*entities.CollectionItem)
	known := make(map[string]struct{}, len(folders))
	for _, f := range folders {
		known[f.Key()] = struct{}{}
	}

	unfiled := make([]*entities.CollectionItem, 0)
	for _, item := range items {
		if item.FolderID != nil {
			key := strconv.FormatInt(*item.FolderID, 10)
			if _, ok := known[key]; ok {
				byFolder[key] = append(byFolder[key], item)
				continue
			}
		}
		unfiled = append(unfiled, item)
	}
	slices.SortStableFunc(unfiled, compareItems)

	roots := tree.Build(folders)
	tree.Sort(roots, compareFolders)

	return &Library{
		Folders: tree.Map(roots, func(f *entities.Folder) FolderNode {
			attached := byFolder[f.Key()]
			if attached == nil {
				attached = make([]*entities.CollectionItem, 0)
			}
			slices.SortStableFunc(attached, compareItems)
			return FolderNode{Folder: f, Items: attached}
		}),
		Unfiled: unfiled,
	}
}
