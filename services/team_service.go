// services/team_service.go
package services

import (
	"errors"
	"log"

	"loyalty-admin-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamService struct {
	DB *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{DB: db}
}

// RequireRole gates a route on the caller's panel role. The caller identity
// comes from the gateway headers (user context middleware); the role comes
// from the team_members table, not from headers, so revoking a role takes
// effect immediately.
func (s *TeamService) RequireRole(min models.TeamRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user context"})
		}

		var member models.TeamMember
		if err := s.DB.Where("external_user_id = ?", userID).First(&member).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not a panel team member"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
		}
		if !member.Role.AtLeast(min) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "insufficient role", "role": member.Role, "required": min,
			})
		}

		c.Locals("team_role", member.Role)
		return c.Next()
	}
}

// --- Admin Handlers ---

// GetTeamMembers lists the panel team.
func (s *TeamService) GetTeamMembers(c *fiber.Ctx) error {
	var members []models.TeamMember
	if err := s.DB.Order("created_at ASC").Find(&members).Error; err != nil {
		log.Printf("DB Error fetching team members: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch team members"})
	}
	return c.JSON(members)
}

// AddTeamMember grants an external identity a panel role.
func (s *TeamService) AddTeamMember(c *fiber.Ctx) error {
	var req struct {
		ExternalUserID string          `json:"external_user_id"`
		DisplayName    string          `json:"display_name"`
		Email          string          `json:"email"`
		Role           models.TeamRole `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ExternalUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "external_user_id is required"})
	}
	if req.Role.Rank() == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown role"})
	}

	invitedBy, _ := c.Locals("user_id").(string)
	member := &models.TeamMember{
		ID:             uuid.NewString(),
		ExternalUserID: req.ExternalUserID,
		DisplayName:    req.DisplayName,
		Email:          req.Email,
		Role:           req.Role,
		InvitedBy:      invitedBy,
	}
	if err := s.DB.Create(member).Error; err != nil {
		log.Printf("DB Error adding team member: %v", err)
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Team member already exists"})
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

// UpdateTeamMemberRole changes a member's role.
func (s *TeamService) UpdateTeamMemberRole(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	var req struct {
		Role models.TeamRole `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Role.Rank() == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown role"})
	}

	var member models.TeamMember
	if err := s.DB.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	member.Role = req.Role
	if err := s.DB.Save(&member).Error; err != nil {
		log.Printf("DB Error updating team member role: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update role"})
	}
	return c.JSON(member)
}

// RemoveTeamMember revokes panel access.
func (s *TeamService) RemoveTeamMember(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid member ID"})
	}

	var member models.TeamMember
	if err := s.DB.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team member not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if err := s.DB.Delete(&member).Error; err != nil {
		log.Printf("DB Error removing team member: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove team member"})
	}
	return c.JSON(fiber.Map{"message": "Team member removed"})
}
