package models

import (
	"time"

	"gorm.io/gorm"
)

// ClaimStatus tracks a claim through the fulfillment pipeline
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusApproved  ClaimStatus = "approved"
	ClaimStatusFulfilled ClaimStatus = "fulfilled"
	ClaimStatusRejected  ClaimStatus = "rejected"
	ClaimStatusExpired   ClaimStatus = "expired"
)

// ClaimStatusLabel returns the admin-facing label for a status. The switch is
// exhaustive over the declared statuses.
func ClaimStatusLabel(s ClaimStatus) string {
	switch s {
	case ClaimStatusPending:
		return "Pending review"
	case ClaimStatusApproved:
		return "Approved"
	case ClaimStatusFulfilled:
		return "Fulfilled"
	case ClaimStatusRejected:
		return "Rejected"
	case ClaimStatusExpired:
		return "Expired"
	default:
		return "Unknown"
	}
}

// Claim = a member redeemed a catalog item and the claim moves through
// admin fulfillment
type Claim struct {
	ID              string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CatalogItemID   string      `gorm:"index;not null" json:"catalog_item_id"`
	ExternalUserID  string      `gorm:"index;not null" json:"external_user_id"`
	PointsSpent     int64       `gorm:"not null" json:"points_spent"`
	Status          ClaimStatus `gorm:"not null;default:'pending';index" json:"status"`
	FulfillmentNote string      `gorm:"type:text" json:"fulfillment_note,omitempty"` // tracking number, voucher code, etc.
	RejectReason    string      `gorm:"type:text" json:"reject_reason,omitempty"`
	ApprovedAt      *time.Time  `json:"approved_at,omitempty"`
	FulfilledAt     *time.Time  `json:"fulfilled_at,omitempty"`
	ExpiresAt       *time.Time  `json:"expires_at,omitempty"` // approved claims lapse if never fulfilled

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
