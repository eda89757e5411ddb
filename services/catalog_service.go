// services/catalog_service.go
package services

import (
	"errors"
	"log"
	"path/filepath"
	"sync"
	"time"

	"loyalty-admin-system/curation"
	"loyalty-admin-system/models"
	"loyalty-admin-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService owns catalog CRUD plus the curation endpoints. Each admin
// gets one curation engine session, created lazily on first curation call and
// serialized by a per-session mutex so a session's operations apply in the
// order the admin triggered them.
type CatalogService struct {
	DB    *gorm.DB
	Store *CatalogStore

	mu       sync.Mutex
	sessions map[string]*curationSession
}

type curationSession struct {
	mu     sync.Mutex
	loaded bool
	engine *curation.Session
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		DB:       db,
		Store:    NewCatalogStore(db),
		sessions: make(map[string]*curationSession),
	}
}

// session returns the calling admin's curation session, creating and loading
// it on first use.
func (s *CatalogService) session(c *fiber.Ctx) (*curationSession, error) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return nil, errors.New("user context missing")
	}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &curationSession{engine: curation.NewSession(s.Store)}
		s.sessions[userID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if !sess.loaded {
		if err := sess.engine.Load(c.Context()); err != nil {
			return nil, err
		}
		sess.loaded = true
	}
	return sess, nil
}

// purgeFromSessions removes a deleted item from every live session's
// snapshot, baseline, and selection in one step.
func (s *CatalogService) purgeFromSessions(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sess := range s.sessions {
		sess.mu.Lock()
		sess.engine.PurgeDeleted(id)
		sess.mu.Unlock()
	}
}

// itemView is a catalog item plus its derived state for the admin table.
type itemView struct {
	models.CatalogItem
	SponsorshipStatus string `json:"sponsorship_status"`
	SponsorshipLabel  string `json:"sponsorship_label"`
	Selected          bool   `json:"selected"`
}

func viewOf(items []models.CatalogItem, engine *curation.Session, now time.Time) []itemView {
	selected := map[string]bool{}
	for _, id := range engine.SelectedIDs() {
		selected[id] = true
	}
	out := make([]itemView, len(items))
	for i := range items {
		status := curation.DeriveSponsorship(&items[i], now)
		out[i] = itemView{
			CatalogItem:       items[i],
			SponsorshipStatus: status.String(),
			SponsorshipLabel:  status.Label(),
			Selected:          selected[items[i].ID],
		}
	}
	return out
}

// validateSponsorWindow rejects an inverted window at input time; the status
// engine would still degrade it to "ended", but bad data should never be
// written in the first place.
func validateSponsorWindow(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return curation.ErrSponsorWindowInverted
	}
	return nil
}

// --- Catalog CRUD (Admin) ---

// GetCatalogItems lists the raw catalog rows, display order ascending.
func (s *CatalogService) GetCatalogItems(c *fiber.Ctx) error {
	var items []models.CatalogItem
	if err := s.DB.Order("display_order ASC").Find(&items).Error; err != nil {
		log.Printf("DB Error fetching catalog items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch catalog items"})
	}
	return c.JSON(items)
}

// GetCatalogItem fetches one item with its derived sponsorship status.
func (s *CatalogService) GetCatalogItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item models.CatalogItem
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Catalog item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	status := curation.DeriveSponsorship(&item, time.Now())
	return c.JSON(itemView{
		CatalogItem:       item,
		SponsorshipStatus: status.String(),
		SponsorshipLabel:  status.Label(),
	})
}

// CreateCatalogItem creates a new item at the bottom of the display order.
func (s *CatalogService) CreateCatalogItem(c *fiber.Ctx) error {
	var req struct {
		Title         string                 `json:"title"`
		Description   string                 `json:"description"`
		Category      models.CatalogCategory `json:"category"`
		ImageURL      string                 `json:"image_url"`
		Cost          int64                  `json:"cost"`
		TierCosts     models.TierCosts       `json:"tier_costs"`
		Stock         *int                   `json:"stock"`
		MinStatusTier models.StatusTier      `json:"min_status_tier"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.Cost < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cost cannot be negative"})
	}
	if req.Stock != nil && *req.Stock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Stock cannot be negative"})
	}
	if req.Category == "" {
		req.Category = models.CatalogCategoryOther
	}

	item := &models.CatalogItem{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		Cost:          req.Cost,
		TierCosts:     req.TierCosts,
		Stock:         req.Stock,
		MinStatusTier: req.MinStatusTier,
	}

	// New items land at the bottom; a single transaction keeps the dense
	// order intact under concurrent creates.
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		if err := tx.Model(&models.CatalogItem{}).
			Select("COALESCE(MAX(display_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		item.DisplayOrder = maxOrder + 1
		return tx.Create(item).Error
	})
	if err != nil {
		log.Printf("DB Error creating catalog item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create catalog item"})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateCatalogItem applies a partial edit to one item. Sponsorship window
// edits are validated here, at the write path.
func (s *CatalogService) UpdateCatalogItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var existing models.CatalogItem
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Catalog item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Title             *string                 `json:"title"`
		Description       *string                 `json:"description"`
		Category          *models.CatalogCategory `json:"category"`
		ImageURL          *string                 `json:"image_url"`
		Cost              *int64                  `json:"cost"`
		TierCosts         *models.TierCosts       `json:"tier_costs"`
		MinStatusTier     *models.StatusTier      `json:"min_status_tier"`
		IsActive          *bool                   `json:"is_active"`
		IsFeatured        *bool                   `json:"is_featured"`
		SponsorEnabled    *bool                   `json:"sponsor_enabled"`
		SponsorSuppressed *bool                   `json:"sponsor_suppressed"`
		SponsorName       *string                 `json:"sponsor_name"`
		SponsorLogoURL    *string                 `json:"sponsor_logo_url"`
		SponsorLinkURL    *string                 `json:"sponsor_link_url"`
		SponsorStartDate  *time.Time              `json:"sponsor_start_date"`
		SponsorEndDate    *time.Time              `json:"sponsor_end_date"`
		PartnerID         *string                 `json:"partner_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title cannot be empty"})
		}
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Category != nil {
		existing.Category = *req.Category
	}
	if req.ImageURL != nil {
		existing.ImageURL = *req.ImageURL
	}
	if req.Cost != nil {
		if *req.Cost < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cost cannot be negative"})
		}
		existing.Cost = *req.Cost
	}
	if req.TierCosts != nil {
		existing.TierCosts = *req.TierCosts
	}
	if req.MinStatusTier != nil {
		existing.MinStatusTier = *req.MinStatusTier
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		existing.IsFeatured = *req.IsFeatured
	}
	if req.SponsorEnabled != nil {
		existing.SponsorEnabled = *req.SponsorEnabled
	}
	if req.SponsorSuppressed != nil {
		existing.SponsorSuppressed = *req.SponsorSuppressed
	}
	if req.SponsorName != nil {
		existing.SponsorName = *req.SponsorName
	}
	if req.SponsorLogoURL != nil {
		existing.SponsorLogoURL = *req.SponsorLogoURL
	}
	if req.SponsorLinkURL != nil {
		existing.SponsorLinkURL = *req.SponsorLinkURL
	}
	if req.SponsorStartDate != nil {
		existing.SponsorStartDate = req.SponsorStartDate
	}
	if req.SponsorEndDate != nil {
		existing.SponsorEndDate = req.SponsorEndDate
	}
	if req.PartnerID != nil {
		existing.PartnerID = *req.PartnerID
	}

	if err := validateSponsorWindow(existing.SponsorStartDate, existing.SponsorEndDate); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := s.DB.Save(&existing).Error; err != nil {
		log.Printf("DB Error updating catalog item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update catalog item"})
	}

	return c.JSON(existing)
}

// DeleteCatalogItem soft-deletes an item and purges it from every live
// curation session.
func (s *CatalogService) DeleteCatalogItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item models.CatalogItem
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Catalog item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Delete(&item).Error; err != nil {
		log.Printf("DB Error deleting catalog item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete catalog item"})
	}

	s.purgeFromSessions(id)

	return c.JSON(fiber.Map{"message": "Catalog item deleted successfully"})
}

// UploadItemImage stores an item image under the local uploads dir (served
// statically) and points the item at it.
func (s *CatalogService) UploadItemImage(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item models.CatalogItem
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Catalog item not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	if imageFile.Size > 10*1024*1024 { // 10MB
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image too large (max 10MB)"})
	}

	ext := filepath.Ext(imageFile.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	localPath := utils.GetUploadPath("catalog/" + uuid.NewString() + ext)
	if err := utils.SaveFile(imageFile, localPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save image"})
	}

	item.ImageURL = "/" + localPath
	if err := s.DB.Save(&item).Error; err != nil {
		log.Printf("DB Error saving item image: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save item image"})
	}
	return c.JSON(fiber.Map{"message": "Image uploaded", "image_url": item.ImageURL})
}

// --- Curation endpoints ---

// GetCurationView returns the admin's filtered, ordered view of the catalog
// together with session state (selection, order mode, unsaved changes).
func (s *CatalogService) GetCurationView(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		log.Printf("Curation session error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.engine.SetFilters(curation.Filters{
		Search:   c.Query("search"),
		Category: models.CatalogCategory(c.Query("category")),
		Bucket:   curation.StateBucket(c.Query("bucket")),
		Tier:     curation.TierFilter(c.Query("tier")),
	})
	sess.engine.SetSort(curation.Sort{
		Field: curation.SortField(c.Query("sort", string(curation.SortCreatedAt))),
		Desc:  c.Query("dir", "desc") == "desc",
	})

	items := sess.engine.View()
	return c.JSON(fiber.Map{
		"items":          viewOf(items, sess.engine, time.Now()),
		"order_mode":     sess.engine.OrderMode(),
		"dirty":          sess.engine.Dirty(),
		"selected_ids":   sess.engine.SelectedIDs(),
		"selected_count": len(sess.engine.SelectedIDs()),
	})
}

// RefreshCuration re-reads ground truth from the database.
func (s *CatalogService) RefreshCuration(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.engine.Refresh(c.Context()); err != nil {
		log.Printf("DB Error refreshing curation snapshot: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to refresh catalog"})
	}
	return c.JSON(fiber.Map{"message": "OK"})
}

// SetOrderMode enters or leaves the dedicated ordering mode.
func (s *CatalogService) SetOrderMode(c *fiber.Ctx) error {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.SetOrderMode(req.Enabled)
	return c.JSON(fiber.Map{"order_mode": sess.engine.OrderMode()})
}

// UpdateSelection adds, removes, or toggles one item in the selection.
func (s *CatalogService) UpdateSelection(c *fiber.Ctx) error {
	var req struct {
		ID     string `json:"id"`
		Action string `json:"action"` // select | deselect | toggle
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch req.Action {
	case "select":
		err = sess.engine.Select(req.ID)
	case "deselect":
		sess.engine.Deselect(req.ID)
	case "toggle":
		_, err = sess.engine.ToggleSelect(req.ID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown selection action"})
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"selected_ids": sess.engine.SelectedIDs()})
}

// ClearSelection empties the selection.
func (s *CatalogService) ClearSelection(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.ClearSelection()
	return c.JSON(fiber.Map{"message": "OK"})
}

// ReorderItem applies one drag-and-drop move. Local until SaveOrder.
func (s *CatalogService) ReorderItem(c *fiber.Ctx) error {
	var req struct {
		DraggedID string `json:"dragged_id"`
		TargetID  string `json:"target_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.Reorder(req.DraggedID, req.TargetID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"dirty":           sess.engine.Dirty(),
		"pending_changes": sess.engine.PendingOrderChanges(),
	})
}

// MoveSelected moves the whole selection to the top or bottom of the order.
func (s *CatalogService) MoveSelected(c *fiber.Ctx) error {
	var req struct {
		Position string `json:"position"` // top | bottom
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var pos curation.MovePosition
	switch req.Position {
	case "top":
		pos = curation.MoveTop
	case "bottom":
		pos = curation.MoveBottom
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Position must be top or bottom"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.MoveSelectedTo(pos); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"dirty":           sess.engine.Dirty(),
		"pending_changes": sess.engine.PendingOrderChanges(),
	})
}

// SaveOrder commits the pending order edits, writing only the rows whose
// position changed. Partial failures are reported per row.
func (s *CatalogService) SaveOrder(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.SaveOrder(c.Context())
	if err != nil {
		log.Printf("Order save refresh error: %v", err)
	}
	return c.JSON(bulkResponse(result))
}

// DiscardCuration drops unsaved order edits and clears the selection.
func (s *CatalogService) DiscardCuration(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.engine.Discard()
	return c.JSON(fiber.Map{"message": "Changes discarded"})
}

// BulkToggle applies activate/deactivate/feature/unfeature across the
// selection, one write per item.
func (s *CatalogService) BulkToggle(c *fiber.Ctx) error {
	var req struct {
		Action string `json:"action"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var op curation.ToggleOp
	switch req.Action {
	case "activate":
		op = curation.ToggleActivate
	case "deactivate":
		op = curation.ToggleDeactivate
	case "feature":
		op = curation.ToggleFeature
	case "unfeature":
		op = curation.ToggleUnfeature
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown bulk action"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.BulkToggle(c.Context(), op)
	if err != nil {
		if errors.Is(err, curation.ErrEmptySelection) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Bulk toggle refresh error: %v", err)
	}
	return c.JSON(bulkResponse(result))
}

// BulkSponsor applies a sponsorship to every selected item. Incomplete or
// inverted windows are rejected before any write.
func (s *CatalogService) BulkSponsor(c *fiber.Ctx) error {
	var grant curation.SponsorshipGrant
	if err := c.BodyParser(&grant); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.BulkApplySponsorship(c.Context(), grant)
	if err != nil {
		if errors.Is(err, curation.ErrEmptySelection) ||
			errors.Is(err, curation.ErrSponsorNameRequired) ||
			errors.Is(err, curation.ErrSponsorLogoRequired) ||
			errors.Is(err, curation.ErrSponsorStartRequired) ||
			errors.Is(err, curation.ErrSponsorEndRequired) ||
			errors.Is(err, curation.ErrSponsorWindowInverted) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Bulk sponsor refresh error: %v", err)
	}
	return c.JSON(bulkResponse(result))
}

// BulkUnsponsor clears sponsorship metadata across the selection.
func (s *CatalogService) BulkUnsponsor(c *fiber.Ctx) error {
	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.BulkRemoveSponsorship(c.Context())
	if err != nil {
		if errors.Is(err, curation.ErrEmptySelection) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("Bulk unsponsor refresh error: %v", err)
	}
	return c.JSON(bulkResponse(result))
}

// AdjustStock applies a delta to one item's stock, clamped at zero.
// Write-through: stock is never staged behind a save step.
func (s *CatalogService) AdjustStock(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	newStock, err := sess.engine.AdjustStock(c.Context(), id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, curation.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, curation.ErrUnlimitedStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("DB Error adjusting stock: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to adjust stock"})
		}
	}
	return c.JSON(fiber.Map{"id": id, "stock": newStock})
}

// SetStock sets an exact stock count, or unlimited.
func (s *CatalogService) SetStock(c *fiber.Ctx) error {
	id := c.Params("id")
	var req struct {
		Stock     *int `json:"stock"`
		Unlimited bool `json:"unlimited"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if !req.Unlimited && req.Stock == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Provide stock or set unlimited"})
	}

	value := req.Stock
	if req.Unlimited {
		value = nil
	}

	sess, err := s.session(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open curation session"})
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.engine.SetExactStock(c.Context(), id, value); err != nil {
		switch {
		case errors.Is(err, curation.ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, curation.ErrNegativeStock):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("DB Error setting stock: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set stock"})
		}
	}
	return c.JSON(fiber.Map{"id": id, "stock": value, "unlimited": value == nil})
}

// bulkResponse shapes a BulkResult with the counts admins need to see which
// rows still need attention.
func bulkResponse(result curation.BulkResult) fiber.Map {
	return fiber.Map{
		"requested":       result.Requested,
		"succeeded":       result.Succeeded,
		"failed":          result.Failed,
		"requested_count": len(result.Requested),
		"succeeded_count": len(result.Succeeded),
		"failed_count":    len(result.Failed),
	}
}
