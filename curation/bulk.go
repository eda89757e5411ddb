package curation

import (
	"context"
)

// Bulk operations write one row per selected id. The persistence boundary
// offers no multi-row atomic update, so each write is independent and its
// outcome recorded individually; a failure never aborts sibling writes.
// After every batch the snapshot is refreshed from ground truth rather than
// trusting optimistic local state, and the selection is cleared only after
// the result is built — a mid-flight failure must not silently lose the
// admin's selection.

// runBatch issues one partial update per id and aggregates outcomes.
func (s *Session) runBatch(ctx context.Context, ids []string, fields func(id string) map[string]any) BulkResult {
	result := BulkResult{Requested: ids}
	for _, id := range ids {
		if err := s.store.UpdateItem(ctx, id, fields(id)); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}

// finishBatch refreshes from the persistence boundary and then clears the
// selection. Refresh failure is reported but does not invalidate the batch
// result — the writes already settled.
func (s *Session) finishBatch(ctx context.Context, result BulkResult) (BulkResult, error) {
	err := s.Refresh(ctx)
	s.selection.Clear()
	return result, err
}

// BulkToggle flips one boolean field across the whole selection.
func (s *Session) BulkToggle(ctx context.Context, op ToggleOp) (BulkResult, error) {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return BulkResult{}, ErrEmptySelection
	}
	fields := op.Fields()
	result := s.runBatch(ctx, ids, func(string) map[string]any { return fields })
	return s.finishBatch(ctx, result)
}

// BulkApplySponsorship attaches a sponsorship to every selected item. The
// grant is validated before any write: an incomplete or inverted window
// rejects the whole operation with zero writes attempted.
func (s *Session) BulkApplySponsorship(ctx context.Context, grant SponsorshipGrant) (BulkResult, error) {
	if err := grant.Validate(); err != nil {
		return BulkResult{}, err
	}
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return BulkResult{}, ErrEmptySelection
	}
	fields := grant.fields()
	result := s.runBatch(ctx, ids, func(string) map[string]any { return fields })
	return s.finishBatch(ctx, result)
}

// BulkRemoveSponsorship clears sponsorship metadata across the selection.
func (s *Session) BulkRemoveSponsorship(ctx context.Context) (BulkResult, error) {
	ids := s.selection.IDs()
	if len(ids) == 0 {
		return BulkResult{}, ErrEmptySelection
	}
	fields := sponsorshipRemovalFields()
	result := s.runBatch(ctx, ids, func(string) map[string]any { return fields })
	return s.finishBatch(ctx, result)
}

// SaveOrder commits the pending order edits: only rows whose display order
// moved against the baseline are written, one row at a time. Writing the
// full collection on every save is deliberately not done — it would defeat
// the minimal-diff intent and multiply the failure surface. An empty diff is
// a successful no-op with zero writes.
func (s *Session) SaveOrder(ctx context.Context) (BulkResult, error) {
	changes := s.snap.OrderChanges()
	if len(changes) == 0 {
		return BulkResult{}, nil
	}

	orders := make(map[string]int, len(changes))
	ids := make([]string, 0, len(changes))
	for _, ch := range changes {
		orders[ch.ID] = ch.NewOrder
		ids = append(ids, ch.ID)
	}
	result := s.runBatch(ctx, ids, func(id string) map[string]any {
		return map[string]any{"display_order": orders[id]}
	})
	return s.finishBatch(ctx, result)
}
