package curation

import (
	"loyalty-admin-system/models"
)

// Snapshot holds the live catalog (current) alongside the last state
// confirmed persisted (baseline). The changed-item set is always recomputed
// by diffing the two, never stored redundantly.
type Snapshot struct {
	current  []models.CatalogItem
	baseline []models.CatalogItem
}

// cloneItem copies an item including its pointer and map fields, so current
// and baseline never alias each other's data.
func cloneItem(it models.CatalogItem) models.CatalogItem {
	out := it
	if it.Stock != nil {
		v := *it.Stock
		out.Stock = &v
	}
	if it.SponsorStartDate != nil {
		v := *it.SponsorStartDate
		out.SponsorStartDate = &v
	}
	if it.SponsorEndDate != nil {
		v := *it.SponsorEndDate
		out.SponsorEndDate = &v
	}
	if it.TierCosts != nil {
		m := make(models.TierCosts, len(it.TierCosts))
		for k, v := range it.TierCosts {
			m[k] = v
		}
		out.TierCosts = m
	}
	return out
}

func cloneItems(items []models.CatalogItem) []models.CatalogItem {
	out := make([]models.CatalogItem, len(items))
	for i := range items {
		out[i] = cloneItem(items[i])
	}
	return out
}

// Load replaces both collections from a fresh persistence read. The incoming
// rows are normalized to the dense 1..N order invariant before becoming the
// new baseline, so gaps or ties left by another session heal on load.
func (s *Snapshot) Load(items []models.CatalogItem) {
	ordered := sortByDisplayOrder(items)
	densify(ordered)
	s.current = cloneItems(ordered)
	s.baseline = cloneItems(ordered)
}

// Current returns the live collection. Callers must treat it as read-only;
// mutations go through the session.
func (s *Snapshot) Current() []models.CatalogItem {
	return s.current
}

// Baseline returns the last-persisted collection.
func (s *Snapshot) Baseline() []models.CatalogItem {
	return s.baseline
}

// SetCurrent swaps in a new live ordering, e.g. after a reorder.
func (s *Snapshot) SetCurrent(items []models.CatalogItem) {
	s.current = items
}

// Get returns a pointer into the live collection for the given id, or nil.
func (s *Snapshot) Get(id string) *models.CatalogItem {
	for i := range s.current {
		if s.current[i].ID == id {
			return &s.current[i]
		}
	}
	return nil
}

// Discard resets current to a deep copy of the baseline, dropping every
// unsaved local edit. It is synchronous and always succeeds.
func (s *Snapshot) Discard() {
	s.current = cloneItems(s.baseline)
}

// OrderChanges diffs current against baseline by id, restricted to rows whose
// display order moved. This is the only set written on an order save.
func (s *Snapshot) OrderChanges() []OrderChange {
	return OrderDiff(s.current, s.baseline)
}

// Dirty reports whether any display order differs from the baseline.
func (s *Snapshot) Dirty() bool {
	return len(s.OrderChanges()) > 0
}

// Purge removes a deleted item from both collections and re-densifies each,
// keeping the session consistent when a row is deleted out from under it.
func (s *Snapshot) Purge(id string) {
	s.current = purgeFrom(s.current, id)
	s.baseline = purgeFrom(s.baseline, id)
}

func purgeFrom(items []models.CatalogItem, id string) []models.CatalogItem {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	ordered := sortByDisplayOrder(out)
	densify(ordered)
	return ordered
}

// apply overwrites a single item in both collections with freshly persisted
// values. Used by write-through paths (stock) where the row is known saved.
func (s *Snapshot) apply(it models.CatalogItem) {
	for i := range s.current {
		if s.current[i].ID == it.ID {
			s.current[i] = cloneItem(it)
			break
		}
	}
	for i := range s.baseline {
		if s.baseline[i].ID == it.ID {
			s.baseline[i] = cloneItem(it)
			break
		}
	}
}

// IDSet returns the ids present in the live collection.
func (s *Snapshot) IDSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.current))
	for _, it := range s.current {
		out[it.ID] = struct{}{}
	}
	return out
}

// Len returns the number of live items.
func (s *Snapshot) Len() int {
	return len(s.current)
}
