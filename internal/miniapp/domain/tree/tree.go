// Package tree rebuilds nested trees from flat parent-pointer rows.
//
// Nodes live in a single arena slice indexed by key; child lists are built in
// one pass and roots are assembled last, so no parent back-pointers exist.
package tree

import (
	"slices"
)

// Keyed - строка с собственным ключом и ключом родителя ("" для корня).
type Keyed interface {
	Key() string
	ParentKey() string
}

// Node - узел собранного дерева.
type Node[T any] struct {
	Item     T          `json:"item"`
	Children []*Node[T] `json:"children"`
}

// Build собирает лес из плоского списка строк.
//
// Строка, чей родитель отсутствует в наборе, становится корнем. Повторный
// ключ игнорируется (побеждает первое вхождение). Узлы, недостижимые от
// корней из-за цикла, поднимаются в корни в порядке входа, поэтому ни одна
// строка не теряется.
func Build[T Keyed](rows []T) []*Node[T] {
	arena := make([]Node[T], 0, len(rows))
	index := make(map[string]int, len(rows))
	for _, row := range rows {
		if _, dup := index[row.Key()]; dup {
			continue
		}
		index[row.Key()] = len(arena)
		arena = append(arena, Node[T]{Item: row})
	}

	childSlots := make([][]int, len(arena))
	rootSlots := make([]int, 0)
	for slot := range arena {
		parent, ok := index[arena[slot].Item.ParentKey()]
		if ok && parent != slot && arena[slot].Item.ParentKey() != "" {
			childSlots[parent] = append(childSlots[parent], slot)
			continue
		}
		rootSlots = append(rootSlots, slot)
	}

	attached := make([]bool, len(arena))
	attach := func(root int) {
		attached[root] = true
		stack := []int{root}
		for len(stack) > 0 {
			slot := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, child := range childSlots[slot] {
				if attached[child] {
					continue
				}
				attached[child] = true
				arena[slot].Children = append(arena[slot].Children, &arena[child])
				stack = append(stack, child)
			}
		}
	}

	for _, slot := range rootSlots {
		attach(slot)
	}
	for slot := range arena {
		if !attached[slot] {
			rootSlots = append(rootSlots, slot)
			attach(slot)
		}
	}

	roots := make([]*Node[T], 0, len(rootSlots))
	for _, slot := range rootSlots {
		roots = append(roots, &arena[slot])
	}
	return roots
}

// Flatten возвращает все узлы леса в прямом (pre-order) порядке.
func Flatten[T any](roots []*Node[T]) []T {
	out := make([]T, 0, len(roots))
	stack := make([]*Node[T], 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n.Item)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return out
}

// Sort упорядочивает соседей на каждом уровне; порядок равных сохраняется.
func Sort[T any](roots []*Node[T], cmp func(a, b T) int) {
	byItem := func(a, b *Node[T]) int { return cmp(a.Item, b.Item) }
	slices.SortStableFunc(roots, byItem)
	for _, n := range roots {
		Sort(n.Children, cmp)
	}
}

// Map переносит лес в другой тип узла, сохраняя структуру.
func Map[T, U any](roots []*Node[T], fn func(T) U) []*Node[U] {
	out := make([]*Node[U], 0, len(roots))
	for _, n := range roots {
		out = append(out, &Node[U]{Item: fn(n.Item), Children: Map(n.Children, fn)})
	}
	return out
}
