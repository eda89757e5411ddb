package curation

import (
	"context"
	"time"

	"loyalty-admin-system/models"
)

// Session is one admin's curation engine instance. It exclusively owns its
// snapshot and selection for the lifetime of the view; filters read but never
// mutate either. Handlers call it through explicit methods rather than
// reaching into shared state, which keeps the engine testable without any
// HTTP or database layer.
//
// Engine logic itself is synchronous; persistence calls are the only
// suspension points. A Session is not safe for concurrent use — the owner
// (one admin's handler chain) must serialize calls so intra-session
// operations apply in the order the admin triggered them.
type Session struct {
	store Store
	now   func() time.Time

	snap      Snapshot
	selection *SelectionSet
	filters   Filters
	sort      Sort
	orderMode bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// NewSession creates an engine instance over the given persistence boundary.
// Call Load before first use.
func NewSession(store Store, opts ...SessionOption) *Session {
	s := &Session{
		store:     store,
		now:       time.Now,
		selection: NewSelectionSet(),
		sort:      Sort{Field: SortCreatedAt, Desc: true},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches the full collection and makes it both the live state and the
// baseline.
func (s *Session) Load(ctx context.Context) error {
	items, err := s.store.ListItems(ctx)
	if err != nil {
		return err
	}
	s.snap.Load(items)
	s.selection.Retain(s.snap.IDSet())
	return nil
}

// Refresh re-reads ground truth from the persistence boundary. Selected ids
// that no longer exist are dropped; surviving selections are kept.
func (s *Session) Refresh(ctx context.Context) error {
	return s.Load(ctx)
}

// View returns the filtered, sorted slice the admin currently sees.
func (s *Session) View() []models.CatalogItem {
	return View(s.snap.Current(), s.filters, s.sort, s.orderMode, s.now())
}

// Filters returns the active filters.
func (s *Session) Filters() Filters {
	return s.filters
}

// SetFilters replaces the active filters. Filtering hides rows but never
// touches the selection.
func (s *Session) SetFilters(f Filters) {
	s.filters = f
}

// SetSort replaces the manual sort. Has no visible effect while order mode
// is active.
func (s *Session) SetSort(sort Sort) {
	s.sort = sort
}

// OrderMode reports whether order editing is enabled.
func (s *Session) OrderMode() bool {
	return s.orderMode
}

// SetOrderMode toggles the dedicated ordering mode. Order edits are rejected
// outside it; hiding drag handles in the UI alone is not enough.
func (s *Session) SetOrderMode(on bool) {
	s.orderMode = on
}

// Select adds an id to the selection, if the item exists.
func (s *Session) Select(id string) error {
	if s.snap.Get(id) == nil {
		return ErrItemNotFound
	}
	s.selection.Add(id)
	return nil
}

// Deselect removes an id from the selection.
func (s *Session) Deselect(id string) {
	s.selection.Remove(id)
}

// ToggleSelect flips an id's membership and reports the new state.
func (s *Session) ToggleSelect(id string) (bool, error) {
	if s.snap.Get(id) == nil {
		return false, ErrItemNotFound
	}
	return s.selection.Toggle(id), nil
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// SelectedIDs returns the selected ids, sorted.
func (s *Session) SelectedIDs() []string {
	return s.selection.IDs()
}

// Reorder applies a drag of draggedID onto targetID to the live ordering.
// Only valid in order mode; the change stays local until SaveOrder.
func (s *Session) Reorder(draggedID, targetID string) error {
	if !s.orderMode {
		return ErrNotInOrderMode
	}
	s.snap.SetCurrent(Reorder(s.snap.Current(), draggedID, targetID))
	return nil
}

// MoveSelectedTo moves every selected item to the top or bottom, preserving
// relative order within both partitions. Only valid in order mode.
func (s *Session) MoveSelectedTo(pos MovePosition) error {
	if !s.orderMode {
		return ErrNotInOrderMode
	}
	s.snap.SetCurrent(MoveSelected(s.snap.Current(), s.selection, pos))
	return nil
}

// PendingOrderChanges returns the minimal diff a SaveOrder would write.
func (s *Session) PendingOrderChanges() []OrderChange {
	return s.snap.OrderChanges()
}

// Dirty reports whether there are unsaved order edits.
func (s *Session) Dirty() bool {
	return s.snap.Dirty()
}

// Discard drops all unsaved order edits and clears the selection. Always
// succeeds; it is the only cancellation primitive the engine offers.
func (s *Session) Discard() {
	s.snap.Discard()
	s.selection.Clear()
}

// PurgeDeleted removes an externally deleted item from the live state, the
// baseline, and the selection in one step.
func (s *Session) PurgeDeleted(id string) {
	s.snap.Purge(id)
	s.selection.Remove(id)
}

// Sponsorship derives the sponsorship lifecycle state of one live item at
// the current instant.
func (s *Session) Sponsorship(id string) (SponsorshipStatus, error) {
	item := s.snap.Get(id)
	if item == nil {
		return SponsorshipNone, ErrItemNotFound
	}
	return DeriveSponsorship(item, s.now()), nil
}
