// services/catalog_store.go
package services

import (
	"context"

	"loyalty-admin-system/models"

	"gorm.io/gorm"
)

// CatalogStore is the GORM-backed persistence boundary for the curation
// engine: full-collection reads and single-row partial updates, nothing
// batched. Multi-row operations stay independent per-row writes with
// per-row outcomes.
type CatalogStore struct {
	DB *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{DB: db}
}

// ListItems fetches the whole catalog, ordered for display.
func (s *CatalogStore) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := s.DB.WithContext(ctx).
		Order("display_order ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem applies a partial update to one row. A vanished row (deleted by
// another admin session) surfaces as gorm.ErrRecordNotFound, which the engine
// reports as a per-item failure like any other write error.
func (s *CatalogStore) UpdateItem(ctx context.Context, id string, fields map[string]any) error {
	res := s.DB.WithContext(ctx).
		Model(&models.CatalogItem{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
