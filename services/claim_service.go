// services/claim_service.go
package services

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"loyalty-admin-system/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// approvedClaimTTL is how long an approved claim stays redeemable before the
// expiry sweep marks it expired.
const approvedClaimTTL = 30 * 24 * time.Hour

type ClaimService struct {
	DB *gorm.DB
}

func NewClaimService(db *gorm.DB) *ClaimService {
	return &ClaimService{DB: db}
}

// claimRow joins a claim with the mirrored member and item data the review
// table shows.
type claimRow struct {
	models.Claim
	StatusLabel   string `json:"status_label"`
	MemberName    string `json:"member_name,omitempty"`
	MemberBalance *int64 `json:"member_balance,omitempty"`
	ItemTitle     string `json:"item_title,omitempty"`
}

// --- Admin Handlers ---

// GetClaims lists claims, newest first, optionally filtered by status,
// member, or item.
func (s *ClaimService) GetClaims(c *fiber.Ctx) error {
	query := s.DB.Model(&models.Claim{})

	if statusStr := strings.ToLower(c.Query("status")); statusStr != "" && statusStr != "any" {
		query = query.Where("status = ?", models.ClaimStatus(statusStr))
	}
	if memberID := c.Query("member"); memberID != "" {
		query = query.Where("external_user_id = ?", memberID)
	}
	if itemID := c.Query("item"); itemID != "" {
		query = query.Where("catalog_item_id = ?", itemID)
	}

	var limit *int
	if limitStr := c.Query("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid limit parameter"})
		}
		limit = &l
	}

	dbQuery := query.Order("created_at DESC")
	if limit != nil {
		dbQuery = dbQuery.Limit(*limit)
	}

	var claims []models.Claim
	if err := dbQuery.Find(&claims).Error; err != nil {
		log.Printf("DB Error fetching claims: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch claims"})
	}

	return c.JSON(s.decorate(claims))
}

// decorate attaches mirrored member names/balances and item titles.
func (s *ClaimService) decorate(claims []models.Claim) []claimRow {
	memberIDs := make([]string, 0, len(claims))
	itemIDs := make([]string, 0, len(claims))
	for _, cl := range claims {
		memberIDs = append(memberIDs, cl.ExternalUserID)
		itemIDs = append(itemIDs, cl.CatalogItemID)
	}

	members := map[string]models.MemberMirror{}
	if len(memberIDs) > 0 {
		var rows []models.MemberMirror
		if err := s.DB.Where("external_user_id IN ?", memberIDs).Find(&rows).Error; err == nil {
			for _, m := range rows {
				members[m.ExternalUserID] = m
			}
		}
	}

	balances := map[string]int64{}
	if len(memberIDs) > 0 {
		var rows []models.PointsMirror
		if err := s.DB.Where("external_user_id IN ?", memberIDs).Find(&rows).Error; err == nil {
			for _, p := range rows {
				balances[p.ExternalUserID] = p.Balance
			}
		}
	}

	titles := map[string]string{}
	if len(itemIDs) > 0 {
		var rows []models.CatalogItem
		if err := s.DB.Where("id IN ?", itemIDs).Find(&rows).Error; err == nil {
			for _, it := range rows {
				titles[it.ID] = it.Title
			}
		}
	}

	out := make([]claimRow, len(claims))
	for i, cl := range claims {
		row := claimRow{
			Claim:       cl,
			StatusLabel: models.ClaimStatusLabel(cl.Status),
			ItemTitle:   titles[cl.CatalogItemID],
		}
		if m, ok := members[cl.ExternalUserID]; ok {
			row.MemberName = m.Username
		}
		if b, ok := balances[cl.ExternalUserID]; ok {
			v := b
			row.MemberBalance = &v
		}
		out[i] = row
	}
	return out
}

// GetClaimCounts returns per-status totals for the fulfillment dashboard.
func (s *ClaimService) GetClaimCounts(c *fiber.Ctx) error {
	type statusCount struct {
		Status models.ClaimStatus `json:"status"`
		Count  int64              `json:"count"`
	}
	var counts []statusCount
	if err := s.DB.Model(&models.Claim{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		log.Printf("DB Error counting claims: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count claims"})
	}

	out := fiber.Map{}
	var total int64
	for _, sc := range counts {
		out[string(sc.Status)] = sc.Count
		total += sc.Count
	}
	out["total"] = total
	return c.JSON(out)
}

// loadClaim fetches one claim by path param, with error responses handled.
func (s *ClaimService) loadClaim(c *fiber.Ctx) (*models.Claim, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid claim ID"})
	}
	var claim models.Claim
	if err := s.DB.First(&claim, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Claim not found"})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	return &claim, nil
}

// ApproveClaim moves a pending claim to approved and starts its fulfillment
// window.
func (s *ClaimService) ApproveClaim(c *fiber.Ctx) error {
	claim, err := s.loadClaim(c)
	if claim == nil {
		return err
	}
	if claim.Status != models.ClaimStatusPending {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only pending claims can be approved", "status": claim.Status,
		})
	}

	now := time.Now()
	expires := now.Add(approvedClaimTTL)
	claim.Status = models.ClaimStatusApproved
	claim.ApprovedAt = &now
	claim.ExpiresAt = &expires

	if err := s.DB.Save(claim).Error; err != nil {
		log.Printf("DB Error approving claim: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve claim"})
	}
	return c.JSON(fiber.Map{"message": "Claim approved", "claim": claim})
}

// FulfillClaim marks an approved claim fulfilled, recording the tracking
// note (shipping number, voucher code, booking reference).
func (s *ClaimService) FulfillClaim(c *fiber.Ctx) error {
	claim, err := s.loadClaim(c)
	if claim == nil {
		return err
	}
	if claim.Status != models.ClaimStatusApproved {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Only approved claims can be fulfilled", "status": claim.Status,
		})
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	now := time.Now()
	claim.Status = models.ClaimStatusFulfilled
	claim.FulfillmentNote = req.Note
	claim.FulfilledAt = &now
	claim.ExpiresAt = nil

	if err := s.DB.Save(claim).Error; err != nil {
		log.Printf("DB Error fulfilling claim: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fulfill claim"})
	}
	return c.JSON(fiber.Map{"message": "Claim fulfilled", "claim": claim})
}

// RejectClaim rejects a pending or approved claim with a reason the member
// will see.
func (s *ClaimService) RejectClaim(c *fiber.Ctx) error {
	claim, err := s.loadClaim(c)
	if claim == nil {
		return err
	}
	if claim.Status != models.ClaimStatusPending && claim.Status != models.ClaimStatusApproved {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Claim is already settled", "status": claim.Status,
		})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "A reject reason is required"})
	}

	claim.Status = models.ClaimStatusRejected
	claim.RejectReason = req.Reason
	claim.ExpiresAt = nil

	if err := s.DB.Save(claim).Error; err != nil {
		log.Printf("DB Error rejecting claim: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reject claim"})
	}
	return c.JSON(fiber.Map{"message": "Claim rejected", "claim": claim})
}
