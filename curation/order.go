package curation

import (
	"sort"

	"loyalty-admin-system/models"
)

// MovePosition is the target of a bulk move-to-position operation.
type MovePosition int

const (
	MoveTop MovePosition = iota
	MoveBottom
)

// OrderChange is one row whose display order differs from the baseline.
type OrderChange struct {
	ID       string `json:"id"`
	NewOrder int    `json:"new_order"`
}

// sortByDisplayOrder returns a copy of items stably sorted by DisplayOrder.
func sortByDisplayOrder(items []models.CatalogItem) []models.CatalogItem {
	out := make([]models.CatalogItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out
}

// densify rewrites DisplayOrder in sequence position, restoring the dense
// 1..N invariant.
func densify(items []models.CatalogItem) {
	for i := range items {
		items[i].DisplayOrder = i + 1
	}
}

// Reorder applies a drag of draggedID onto targetID: the dragged item is
// removed and reinserted immediately before the target's position, then the
// whole sequence is re-densified. Dragging an item onto itself, or naming an
// unknown id, is a no-op — the input is returned untouched.
func Reorder(items []models.CatalogItem, draggedID, targetID string) []models.CatalogItem {
	if draggedID == targetID {
		return items
	}
	ordered := sortByDisplayOrder(items)

	draggedIdx, targetIdx := -1, -1
	for i := range ordered {
		switch ordered[i].ID {
		case draggedID:
			draggedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if draggedIdx < 0 || targetIdx < 0 {
		return items
	}

	dragged := ordered[draggedIdx]
	rest := append(ordered[:draggedIdx:draggedIdx], ordered[draggedIdx+1:]...)

	// Recompute the target position in the reduced sequence.
	insertAt := -1
	for i := range rest {
		if rest[i].ID == targetID {
			insertAt = i
			break
		}
	}

	out := make([]models.CatalogItem, 0, len(ordered))
	out = append(out, rest[:insertAt]...)
	out = append(out, dragged)
	out = append(out, rest[insertAt:]...)
	densify(out)
	return out
}

// MoveSelected stably partitions the ordered sequence into selected and
// unselected items, each keeping its relative order, and concatenates them
// with the selected block at the top or bottom. An empty selection is a
// no-op.
func MoveSelected(items []models.CatalogItem, selection *SelectionSet, pos MovePosition) []models.CatalogItem {
	if selection == nil || selection.Len() == 0 {
		return items
	}
	ordered := sortByDisplayOrder(items)

	selected := make([]models.CatalogItem, 0, selection.Len())
	unselected := make([]models.CatalogItem, 0, len(ordered))
	for _, it := range ordered {
		if selection.Has(it.ID) {
			selected = append(selected, it)
		} else {
			unselected = append(unselected, it)
		}
	}
	if len(selected) == 0 {
		return items
	}

	var out []models.CatalogItem
	if pos == MoveTop {
		out = append(selected, unselected...)
	} else {
		out = append(unselected, selected...)
	}
	densify(out)
	return out
}

// OrderDiff returns the minimal set of order writes: only rows whose
// DisplayOrder differs from the baseline value for the same id. Rows absent
// from the baseline are included as new. The result is sorted by NewOrder so
// writes land in presentation order.
func OrderDiff(current, baseline []models.CatalogItem) []OrderChange {
	base := make(map[string]int, len(baseline))
	for _, it := range baseline {
		base[it.ID] = it.DisplayOrder
	}

	var changes []OrderChange
	for _, it := range current {
		if old, ok := base[it.ID]; ok && old == it.DisplayOrder {
			continue
		}
		changes = append(changes, OrderChange{ID: it.ID, NewOrder: it.DisplayOrder})
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].NewOrder < changes[j].NewOrder
	})
	return changes
}
