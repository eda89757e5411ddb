// services/partner_service.go
package services

import (
	"errors"
	"log"
	"path/filepath"

	"loyalty-admin-system/models"
	"loyalty-admin-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerService struct {
	DB *gorm.DB
}

func NewPartnerService(db *gorm.DB) *PartnerService {
	return &PartnerService{DB: db}
}

// --- Admin Handlers ---

// GetPartners lists partners, optionally filtered by status.
func (s *PartnerService) GetPartners(c *fiber.Ctx) error {
	query := s.DB.Order("name ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", models.PartnerStatus(status))
	}

	var partners []models.Partner
	if err := query.Find(&partners).Error; err != nil {
		log.Printf("DB Error fetching partners: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch partners"})
	}
	return c.JSON(partners)
}

// GetPartner fetches one partner plus the catalog items it currently backs.
func (s *PartnerService) GetPartner(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	var partner models.Partner
	if err := s.DB.First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var items []models.CatalogItem
	if err := s.DB.Where("partner_id = ?", id).Order("display_order ASC").Find(&items).Error; err != nil {
		log.Printf("DB Error fetching partner items: %v", err)
	}

	return c.JSON(fiber.Map{"partner": partner, "sponsored_items": items})
}

// CreatePartner creates a partner record, with an optional logo uploaded to
// R2 in the same multipart request.
func (s *PartnerService) CreatePartner(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	partner := &models.Partner{
		ID:           uuid.NewString(),
		Name:         name,
		ContactName:  c.FormValue("contact_name"),
		ContactEmail: c.FormValue("contact_email"),
		WebsiteURL:   c.FormValue("website_url"),
		Notes:        c.FormValue("notes"),
		Status:       models.PartnerStatusProspect,
	}
	if status := c.FormValue("status"); status != "" {
		partner.Status = models.PartnerStatus(status)
	}

	// Logo → R2 (small, public asset)
	if logoFile, err := c.FormFile("logo"); err == nil && logoFile.Size > 0 {
		logoExt := filepath.Ext(logoFile.Filename)
		if logoExt == "" {
			logoExt = ".png"
		}
		logoKey := "partner-logos/" + uuid.NewString() + logoExt
		logoURL, err := utils.UploadFileToR2(logoFile, logoKey)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"error": "failed to upload partner logo to R2"})
		}
		partner.LogoURL = logoURL
	}

	if err := s.DB.Create(partner).Error; err != nil {
		log.Printf("DB Error creating partner: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create partner"})
	}
	return c.Status(fiber.StatusCreated).JSON(partner)
}

// UpdatePartner applies a partial edit to a partner.
func (s *PartnerService) UpdatePartner(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	var existing models.Partner
	if err := s.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	var req struct {
		Name         *string               `json:"name"`
		ContactName  *string               `json:"contact_name"`
		ContactEmail *string               `json:"contact_email"`
		WebsiteURL   *string               `json:"website_url"`
		Notes        *string               `json:"notes"`
		Status       *models.PartnerStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Name != nil {
		if *req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name cannot be empty"})
		}
		existing.Name = *req.Name
	}
	if req.ContactName != nil {
		existing.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		existing.ContactEmail = *req.ContactEmail
	}
	if req.WebsiteURL != nil {
		existing.WebsiteURL = *req.WebsiteURL
	}
	if req.Notes != nil {
		existing.Notes = *req.Notes
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}

	if err := s.DB.Save(&existing).Error; err != nil {
		log.Printf("DB Error updating partner: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update partner"})
	}
	return c.JSON(existing)
}

// UploadPartnerLogo replaces a partner's logo on R2.
func (s *PartnerService) UploadPartnerLogo(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	var partner models.Partner
	if err := s.DB.First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	logoFile, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "logo file is required"})
	}

	logoExt := filepath.Ext(logoFile.Filename)
	if logoExt == "" {
		logoExt = ".png"
	}
	logoKey := "partner-logos/" + uuid.NewString() + logoExt
	logoURL, err := utils.UploadFileToR2(logoFile, logoKey)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "failed to upload partner logo to R2"})
	}

	partner.LogoURL = logoURL
	if err := s.DB.Save(&partner).Error; err != nil {
		log.Printf("DB Error saving partner logo: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save partner logo"})
	}
	return c.JSON(fiber.Map{"message": "Logo updated", "logo_url": logoURL})
}

// DeletePartner soft-deletes a partner. Sponsored items keep their metadata;
// the sponsorship badge simply stops resolving to a live partner.
func (s *PartnerService) DeletePartner(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid partner ID"})
	}

	var partner models.Partner
	if err := s.DB.First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Partner not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Delete(&partner).Error; err != nil {
		log.Printf("DB Error deleting partner: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete partner"})
	}
	return c.JSON(fiber.Map{"message": "Partner deleted successfully"})
}
