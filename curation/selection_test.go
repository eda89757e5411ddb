package curation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionSetBasics(t *testing.T) {
	sel := NewSelectionSet()
	assert.Equal(t, 0, sel.Len())

	sel.Add("a")
	sel.Add("b")
	sel.Add("a") // idempotent
	assert.Equal(t, 2, sel.Len())
	assert.True(t, sel.Has("a"))
	assert.False(t, sel.Has("z"))
	assert.Equal(t, []string{"a", "b"}, sel.IDs())

	sel.Remove("a")
	assert.False(t, sel.Has("a"))

	assert.True(t, sel.Toggle("c"))
	assert.False(t, sel.Toggle("c"))
	assert.False(t, sel.Has("c"))

	sel.Clear()
	assert.Equal(t, 0, sel.Len())
}

func TestSelectionSetRetain(t *testing.T) {
	sel := NewSelectionSet()
	sel.Add("a")
	sel.Add("b")
	sel.Add("c")

	sel.Retain(map[string]struct{}{"a": {}, "c": {}})
	assert.Equal(t, []string{"a", "c"}, sel.IDs())
}

func TestSelectionSurvivesFilterChanges(t *testing.T) {
	store := newFakeStore(fiveItems()...)
	s := NewSession(store, WithClock(func() time.Time { return statusNow }))
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Select("b"))
	require.NoError(t, s.Select("d"))

	// A filter that hides every selected row must not deselect anything.
	s.SetFilters(Filters{Search: "no match at all"})
	assert.Empty(t, s.View())
	assert.Equal(t, []string{"b", "d"}, s.SelectedIDs())

	s.SetFilters(Filters{})
	assert.Equal(t, []string{"b", "d"}, s.SelectedIDs())
}
