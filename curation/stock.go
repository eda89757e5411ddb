package curation

import (
	"context"
)

// Stock operations are single-item and write through immediately: stock
// correctness guards against over-claiming, so unlike display order it is
// never staged behind an explicit save.

// AdjustStock applies a delta to an item's stock, clamped at zero, and
// persists the new value before updating local state. Returns the new stock.
// Adjusting an unlimited-stock item is rejected; set an exact value first.
func (s *Session) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	item := s.snap.Get(id)
	if item == nil {
		return 0, ErrItemNotFound
	}
	if item.Stock == nil {
		return 0, ErrUnlimitedStock
	}

	newStock := *item.Stock + delta
	if newStock < 0 {
		newStock = 0
	}

	if err := s.store.UpdateItem(ctx, id, map[string]any{"stock": newStock}); err != nil {
		return *item.Stock, err
	}

	updated := cloneItem(*item)
	updated.Stock = &newStock
	s.snap.apply(updated)
	return newStock, nil
}

// SetExactStock sets an item's stock to an exact count, or to unlimited when
// value is nil. Write-through, same as AdjustStock.
func (s *Session) SetExactStock(ctx context.Context, id string, value *int) error {
	item := s.snap.Get(id)
	if item == nil {
		return ErrItemNotFound
	}
	if value != nil && *value < 0 {
		return ErrNegativeStock
	}

	var stored any
	if value != nil {
		stored = *value
	}
	if err := s.store.UpdateItem(ctx, id, map[string]any{"stock": stored}); err != nil {
		return err
	}

	updated := cloneItem(*item)
	if value == nil {
		updated.Stock = nil
	} else {
		v := *value
		updated.Stock = &v
	}
	s.snap.apply(updated)
	return nil
}
