package entities

// CollectionItem - загруженный файл, проиндексированный для поиска.
type CollectionItem struct {
	Owner    string `json:"-"`
	Name     string `json:"name"`
	Active   bool   `json:"active"`
	FolderID *int64 `json:"folder_id"`
	UUID     string `json:"uuid"`
}
