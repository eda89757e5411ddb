package curation

import (
	"context"
	"fmt"
	"time"

	"loyalty-admin-system/models"
)

// fakeStore is an in-memory persistence boundary for engine tests. It records
// every write and can be told to fail specific rows, simulating the
// partial-failure behavior of independent single-row updates.
type fakeStore struct {
	items   []models.CatalogItem
	updates []updateCall
	failIDs map[string]error
	listErr error
}

type updateCall struct {
	id     string
	fields map[string]any
}

func newFakeStore(items ...models.CatalogItem) *fakeStore {
	return &fakeStore{items: items, failIDs: map[string]error{}}
}

func (f *fakeStore) ListItems(_ context.Context) ([]models.CatalogItem, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return cloneItems(f.items), nil
}

func (f *fakeStore) UpdateItem(_ context.Context, id string, fields map[string]any) error {
	f.updates = append(f.updates, updateCall{id: id, fields: fields})
	if err, ok := f.failIDs[id]; ok {
		return err
	}
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		applyFields(&f.items[i], fields)
		return nil
	}
	return fmt.Errorf("row %s not found", id)
}

// applyFields mirrors how the real store maps partial updates onto columns,
// so post-batch refreshes in tests see the written values.
func applyFields(it *models.CatalogItem, fields map[string]any) {
	for k, v := range fields {
		switch k {
		case "is_active":
			it.IsActive = v.(bool)
		case "is_featured":
			it.IsFeatured = v.(bool)
		case "display_order":
			it.DisplayOrder = v.(int)
		case "stock":
			if v == nil {
				it.Stock = nil
			} else {
				n := v.(int)
				it.Stock = &n
			}
		case "sponsor_enabled":
			it.SponsorEnabled = v.(bool)
		case "sponsor_suppressed":
			it.SponsorSuppressed = v.(bool)
		case "sponsor_name":
			it.SponsorName = v.(string)
		case "sponsor_logo_url":
			it.SponsorLogoURL = v.(string)
		case "sponsor_link_url":
			it.SponsorLinkURL = v.(string)
		case "partner_id":
			it.PartnerID = v.(string)
		case "sponsor_start_date":
			if v == nil {
				it.SponsorStartDate = nil
			} else {
				it.SponsorStartDate = v.(*time.Time)
			}
		case "sponsor_end_date":
			if v == nil {
				it.SponsorEndDate = nil
			} else {
				it.SponsorEndDate = v.(*time.Time)
			}
		}
	}
}

func (f *fakeStore) updatedIDs() []string {
	out := make([]string, 0, len(f.updates))
	for _, u := range f.updates {
		out = append(out, u.id)
	}
	return out
}

// item builds a minimal catalog item for tests.
func item(id string, order int) models.CatalogItem {
	return models.CatalogItem{
		ID:           id,
		Title:        "Item " + id,
		Category:     models.CatalogCategoryOther,
		DisplayOrder: order,
	}
}

func stock(n int) *int {
	return &n
}

func datePtr(t time.Time) *time.Time {
	return &t
}
