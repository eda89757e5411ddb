package curation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-admin-system/models"
)

func ids(items []models.CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func assertDense(t *testing.T, items []models.CatalogItem) {
	t.Helper()
	seen := map[int]bool{}
	for _, it := range items {
		assert.False(t, seen[it.DisplayOrder], "duplicate display order %d", it.DisplayOrder)
		seen[it.DisplayOrder] = true
	}
	for i := 1; i <= len(items); i++ {
		assert.True(t, seen[i], "missing display order %d", i)
	}
}

func fiveItems() []models.CatalogItem {
	return []models.CatalogItem{
		item("a", 1), item("b", 2), item("c", 3), item("d", 4), item("e", 5),
	}
}

func TestReorderInsertsBeforeTarget(t *testing.T) {
	out := Reorder(fiveItems(), "e", "b")
	assert.Equal(t, []string{"a", "e", "b", "c", "d"}, ids(out))
	assertDense(t, out)
}

func TestReorderDragDown(t *testing.T) {
	out := Reorder(fiveItems(), "a", "d")
	assert.Equal(t, []string{"b", "c", "a", "d", "e"}, ids(out))
	assertDense(t, out)
}

func TestReorderOntoSelfIsNoOp(t *testing.T) {
	in := fiveItems()
	out := Reorder(in, "c", "c")
	assert.Equal(t, in, out)
}

func TestReorderUnknownIDIsNoOp(t *testing.T) {
	in := fiveItems()
	assert.Equal(t, in, Reorder(in, "zz", "b"))
	assert.Equal(t, in, Reorder(in, "b", "zz"))
}

func TestReorderNormalizesSparseInput(t *testing.T) {
	in := []models.CatalogItem{item("a", 10), item("b", 20), item("c", 35)}
	out := Reorder(in, "c", "a")
	assert.Equal(t, []string{"c", "a", "b"}, ids(out))
	assertDense(t, out)
}

func TestMoveSelectedTop(t *testing.T) {
	// 5 items ordered 1..5, items 3 and 5 selected, moved to top:
	// resulting order is c,e,a,b,d re-densified to 1..5.
	sel := NewSelectionSet()
	sel.Add("c")
	sel.Add("e")

	out := MoveSelected(fiveItems(), sel, MoveTop)
	assert.Equal(t, []string{"c", "e", "a", "b", "d"}, ids(out))
	assertDense(t, out)
}

func TestMoveSelectedBottom(t *testing.T) {
	sel := NewSelectionSet()
	sel.Add("a")
	sel.Add("c")

	out := MoveSelected(fiveItems(), sel, MoveBottom)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids(out))
	assertDense(t, out)
}

func TestMoveSelectedEmptySelectionIsNoOp(t *testing.T) {
	in := fiveItems()
	out := MoveSelected(in, NewSelectionSet(), MoveTop)
	assert.Equal(t, in, out)
}

func TestOrderDiffEmptyWhenUnchanged(t *testing.T) {
	items := fiveItems()
	assert.Empty(t, OrderDiff(items, fiveItems()))
}

func TestOrderDiffMinimal(t *testing.T) {
	baseline := fiveItems()
	current := Reorder(fiveItems(), "e", "b")
	// a keeps order 1; b, c, d, e all moved.
	diff := OrderDiff(current, baseline)
	require.Len(t, diff, 4)
	got := map[string]int{}
	for _, ch := range diff {
		got[ch.ID] = ch.NewOrder
	}
	assert.Equal(t, map[string]int{"e": 2, "b": 3, "c": 4, "d": 5}, got)
}

func TestOrderDiffIdempotentAfterBaselineAdvance(t *testing.T) {
	current := Reorder(fiveItems(), "e", "b")
	diff := OrderDiff(current, fiveItems())
	require.NotEmpty(t, diff)

	// Once the baseline catches up, a second diff is empty.
	assert.Empty(t, OrderDiff(current, current))
}

func TestOrderDiffIncludesRowsMissingFromBaseline(t *testing.T) {
	baseline := []models.CatalogItem{item("a", 1)}
	current := []models.CatalogItem{item("a", 1), item("b", 2)}
	diff := OrderDiff(current, baseline)
	require.Len(t, diff, 1)
	assert.Equal(t, "b", diff[0].ID)
	assert.Equal(t, 2, diff[0].NewOrder)
}
