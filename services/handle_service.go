// services/handle_service.go
package services

import (
	"errors"
	"log"
	"strings"

	"loyalty-admin-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

// reservedHandles can never be claimed by members regardless of admin state.
var reservedHandles = map[string]bool{
	"admin":   true,
	"support": true,
	"help":    true,
	"staff":   true,
	"system":  true,
	"root":    true,
	"api":     true,
}

type HandleService struct {
	DB *gorm.DB
}

func NewHandleService(db *gorm.DB) *HandleService {
	return &HandleService{DB: db}
}

// canonicalHandle produces the form uniqueness is enforced on: case-folded,
// then slugified, so "CaféBar", "cafebar" and "Cafe-Bar" all collide.
func canonicalHandle(display string) string {
	folded := cases.Fold().String(strings.TrimSpace(display))
	return slug.Make(folded)
}

// --- Admin Handlers ---

// GetHandles lists governed handles, optionally filtered by status or prefix.
func (s *HandleService) GetHandles(c *fiber.Ctx) error {
	query := s.DB.Order("canonical ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", models.HandleStatus(status))
	}
	if prefix := c.Query("prefix"); prefix != "" {
		query = query.Where("canonical LIKE ?", canonicalHandle(prefix)+"%")
	}

	var handles []models.Handle
	if err := query.Find(&handles).Error; err != nil {
		log.Printf("DB Error fetching handles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch handles"})
	}
	return c.JSON(handles)
}

// CheckHandle reports whether a handle is available, and why not if taken.
func (s *HandleService) CheckHandle(c *fiber.Ctx) error {
	display := c.Query("handle")
	if display == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "handle query parameter is required"})
	}

	canonical := canonicalHandle(display)
	if canonical == "" {
		return c.JSON(fiber.Map{"available": false, "reason": "handle has no valid characters"})
	}
	if reservedHandles[canonical] {
		return c.JSON(fiber.Map{"available": false, "canonical": canonical, "reason": "reserved word"})
	}

	var existing models.Handle
	err := s.DB.Where("canonical = ?", canonical).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"available": true, "canonical": canonical})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return c.JSON(fiber.Map{
		"available": false,
		"canonical": canonical,
		"reason":    string(existing.Status),
	})
}

// ReserveHandle creates an admin-held reservation or block.
func (s *HandleService) ReserveHandle(c *fiber.Ctx) error {
	var req struct {
		Handle string              `json:"handle"`
		Status models.HandleStatus `json:"status"` // reserved | blocked
		Reason string              `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Handle == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "handle is required"})
	}
	if req.Status != models.HandleStatusReserved && req.Status != models.HandleStatusBlocked {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status must be reserved or blocked"})
	}

	canonical := canonicalHandle(req.Handle)
	if canonical == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "handle has no valid characters"})
	}

	handle := &models.Handle{
		ID:        uuid.NewString(),
		Canonical: canonical,
		Display:   strings.TrimSpace(req.Handle),
		Status:    req.Status,
		Reason:    req.Reason,
	}
	if err := s.DB.Create(handle).Error; err != nil {
		// Unique violation on canonical means the handle already exists.
		log.Printf("DB Error reserving handle %q: %v", canonical, err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Handle already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(handle)
}

// ReleaseHandle frees a reservation or block, making the handle claimable
// again. Claimed handles cannot be released here — member offboarding owns
// that path.
func (s *HandleService) ReleaseHandle(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid handle ID"})
	}

	var handle models.Handle
	if err := s.DB.First(&handle, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Handle not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if handle.Status == models.HandleStatusClaimed {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Claimed handles are released through member offboarding"})
	}

	if err := s.DB.Delete(&handle).Error; err != nil {
		log.Printf("DB Error releasing handle: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to release handle"})
	}
	return c.JSON(fiber.Map{"message": "Handle released"})
}
