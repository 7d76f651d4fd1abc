package tree

// Descendants возвращает ключи всех потомков rootKey (без самого rootKey)
// по плоскому набору строк. Обход идет по рабочему списку с множеством
// посещенных, поэтому цикл в данных не приводит к зацикливанию.
func Descendants[T Keyed](rows []T, rootKey string) map[string]struct{} {
	children := make(map[string][]string, len(rows))
	for _, row := range rows {
		if p := row.ParentKey(); p != "" {
			children[p] = append(children[p], row.Key())
		}
	}

	seen := map[string]struct{}{rootKey: {}}
	out := make(map[string]struct{})
	work := []string{rootKey}
	for len(work) > 0 {
		key := work[len(work)-1]
		work = work[:len(work)-1]
		for _, child := range children[key] {
			if _, ok := seen[child]; ok {
				continue
			}
			seen[child] = struct{}{}
			out[child] = struct{}{}
			work = append(work, child)
		}
	}
	return out
}
