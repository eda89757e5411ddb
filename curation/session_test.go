package curation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-admin-system/models"
)

func newTestSession(t *testing.T, store *fakeStore) *Session {
	t.Helper()
	s := NewSession(store, WithClock(func() time.Time { return statusNow }))
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestSessionLoadNormalizesSparseOrders(t *testing.T) {
	store := newFakeStore(item("a", 7), item("b", 2), item("c", 99))
	s := newTestSession(t, store)

	s.SetOrderMode(true)
	view := s.View()
	assert.Equal(t, []string{"b", "a", "c"}, ids(view))
	assertDense(t, view)
	assert.False(t, s.Dirty(), "normalization happens before the baseline is taken")
}

func TestSessionReorderRequiresOrderMode(t *testing.T) {
	s := newTestSession(t, newFakeStore(fiveItems()...))

	err := s.Reorder("e", "b")
	assert.ErrorIs(t, err, ErrNotInOrderMode)

	err = s.MoveSelectedTo(MoveTop)
	assert.ErrorIs(t, err, ErrNotInOrderMode)

	s.SetOrderMode(true)
	require.NoError(t, s.Reorder("e", "b"))
	assert.True(t, s.Dirty())
}

func TestSessionSaveOrderWritesMinimalDiff(t *testing.T) {
	store := newFakeStore(fiveItems()...)
	s := newTestSession(t, store)
	s.SetOrderMode(true)
	require.NoError(t, s.Reorder("e", "b"))

	result, err := s.SaveOrder(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Succeeded, 4, "a kept its position and must not be written")
	assert.Empty(t, result.Failed)
	assert.NotContains(t, store.updatedIDs(), "a")

	// Post-save refresh made the new order the baseline.
	assert.False(t, s.Dirty())
	assert.Empty(t, s.PendingOrderChanges())
}

func TestSessionSaveOrderEmptyDiffWritesNothing(t *testing.T) {
	store := newFakeStore(fiveItems()...)
	s := newTestSession(t, store)
	s.SetOrderMode(true)

	result, err := s.SaveOrder(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Requested)
	assert.Empty(t, store.updates)
}

func TestSessionDiscardResetsOrderAndSelection(t *testing.T) {
	store := newFakeStore(fiveItems()...)
	s := newTestSession(t, store)
	s.SetOrderMode(true)
	require.NoError(t, s.Reorder("e", "a"))
	require.NoError(t, s.Select("c"))
	require.True(t, s.Dirty())

	s.Discard()
	assert.False(t, s.Dirty())
	assert.Empty(t, s.SelectedIDs())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(s.View()))
	assert.Empty(t, store.updates, "discard is local only")
}

func TestSessionPurgeDeletedRemovesEverywhere(t *testing.T) {
	store := newFakeStore(fiveItems()...)
	s := newTestSession(t, store)
	require.NoError(t, s.Select("c"))

	s.PurgeDeleted("c")
	assert.NotContains(t, s.SelectedIDs(), "c")
	s.SetOrderMode(true)
	view := s.View()
	assert.Equal(t, []string{"a", "b", "d", "e"}, ids(view))
	assertDense(t, view)
	assert.False(t, s.Dirty(), "purge re-densifies baseline too")
}

func TestBulkToggleReportsPerItemOutcomes(t *testing.T) {
	store := newFakeStore(item("id1", 1), item("id2", 2), item("id3", 3))
	store.failIDs["id2"] = errors.New("connection reset")
	s := newTestSession(t, store)
	for _, id := range []string{"id1", "id2", "id3"} {
		require.NoError(t, s.Select(id))
	}

	result, err := s.BulkToggle(context.Background(), ToggleActivate)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"id1", "id3"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "id2", result.Failed[0].ID)
	assert.Equal(t, "connection reset", result.Failed[0].Reason)

	// Selection is cleared only after the result is produced.
	assert.Empty(t, s.SelectedIDs())

	// The refresh picked up ground truth: the two successful writes landed.
	var active []string
	for _, it := range s.View() {
		if it.IsActive {
			active = append(active, it.ID)
		}
	}
	assert.ElementsMatch(t, []string{"id1", "id3"}, active)
}

func TestBulkToggleEmptySelection(t *testing.T) {
	s := newTestSession(t, newFakeStore(fiveItems()...))
	_, err := s.BulkToggle(context.Background(), ToggleActivate)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestBulkApplySponsorshipValidatesBeforeAnyWrite(t *testing.T) {
	start := statusNow
	end := statusNow.Add(7 * 24 * time.Hour)
	complete := SponsorshipGrant{
		Name:      "Acme Co",
		LogoURL:   "https://cdn.example.com/acme.png",
		StartDate: &start,
		EndDate:   &end,
	}

	tests := []struct {
		name    string
		mutate  func(*SponsorshipGrant)
		wantErr error
	}{
		{"missing name", func(g *SponsorshipGrant) { g.Name = "" }, ErrSponsorNameRequired},
		{"missing logo", func(g *SponsorshipGrant) { g.LogoURL = "" }, ErrSponsorLogoRequired},
		{"missing start", func(g *SponsorshipGrant) { g.StartDate = nil }, ErrSponsorStartRequired},
		{"missing end", func(g *SponsorshipGrant) { g.EndDate = nil }, ErrSponsorEndRequired},
		{"inverted window", func(g *SponsorshipGrant) {
			g.StartDate = &end
			g.EndDate = &start
		}, ErrSponsorWindowInverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(fiveItems()...)
			s := newTestSession(t, store)
			require.NoError(t, s.Select("a"))

			grant := complete
			tt.mutate(&grant)
			_, err := s.BulkApplySponsorship(context.Background(), grant)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, store.updates, "validation failure must attempt zero writes")
			assert.Equal(t, []string{"a"}, s.SelectedIDs(), "selection kept on local rejection")
		})
	}
}

func TestBulkApplySponsorshipWritesEveryRow(t *testing.T) {
	start := statusNow.Add(24 * time.Hour)
	end := statusNow.Add(7 * 24 * time.Hour)
	store := newFakeStore(fiveItems()...)
	s := newTestSession(t, store)
	require.NoError(t, s.Select("a"))
	require.NoError(t, s.Select("c"))

	result, err := s.BulkApplySponsorship(context.Background(), SponsorshipGrant{
		Name:      "Acme Co",
		LogoURL:   "https://cdn.example.com/acme.png",
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, result.Succeeded)

	// Window starts tomorrow: derived status is scheduled, on both rows.
	for _, id := range []string{"a", "c"} {
		status, err := s.Sponsorship(id)
		require.NoError(t, err)
		assert.Equal(t, SponsorshipScheduled, status)
	}
}

func TestBulkRemoveSponsorship(t *testing.T) {
	it := item("a", 1)
	it.SponsorEnabled = true
	it.SponsorName = "Acme Co"
	store := newFakeStore(it, item("b", 2))
	s := newTestSession(t, store)
	require.NoError(t, s.Select("a"))

	result, err := s.BulkRemoveSponsorship(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Succeeded)

	status, err := s.Sponsorship("a")
	require.NoError(t, err)
	assert.Equal(t, SponsorshipNone, status)
}

func TestAdjustStockClampsAtZero(t *testing.T) {
	it := item("a", 1)
	it.Stock = stock(0)
	store := newFakeStore(it)
	s := newTestSession(t, store)

	got, err := s.AdjustStock(context.Background(), "a", -1)
	require.NoError(t, err)
	assert.Equal(t, 0, got, "stock never goes negative")
}

func TestAdjustStockWritesThrough(t *testing.T) {
	it := item("a", 1)
	it.Stock = stock(4)
	store := newFakeStore(it)
	s := newTestSession(t, store)

	got, err := s.AdjustStock(context.Background(), "a", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	require.Len(t, store.updates, 1)
	assert.Equal(t, map[string]any{"stock": 7}, store.updates[0].fields)
	assert.Equal(t, 7, *store.items[0].Stock)
}

func TestAdjustStockOnUnlimitedRejected(t *testing.T) {
	s := newTestSession(t, newFakeStore(item("a", 1)))
	_, err := s.AdjustStock(context.Background(), "a", -1)
	assert.ErrorIs(t, err, ErrUnlimitedStock)
}

func TestSetExactStock(t *testing.T) {
	it := item("a", 1)
	it.Stock = stock(5)
	store := newFakeStore(it)
	s := newTestSession(t, store)

	require.NoError(t, s.SetExactStock(context.Background(), "a", stock(12)))
	assert.Equal(t, 12, *store.items[0].Stock)

	// nil means unlimited.
	require.NoError(t, s.SetExactStock(context.Background(), "a", nil))
	assert.Nil(t, store.items[0].Stock)

	err := s.SetExactStock(context.Background(), "a", stock(-3))
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestRefreshDropsSelectionOfDeletedRows(t *testing.T) {
	store := newFakeStore(fiveItems()...)
	s := newTestSession(t, store)
	require.NoError(t, s.Select("b"))
	require.NoError(t, s.Select("d"))

	// Another session deletes d.
	store.items = []models.CatalogItem{item("a", 1), item("b", 2), item("c", 3), item("e", 4)}
	require.NoError(t, s.Refresh(context.Background()))
	assert.Equal(t, []string{"b"}, s.SelectedIDs())
}
