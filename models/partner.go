package models

import (
	"time"

	"gorm.io/gorm"
)

// PartnerStatus indicates whether the partnership is live
type PartnerStatus string

const (
	PartnerStatusProspect PartnerStatus = "prospect"
	PartnerStatusActive   PartnerStatus = "active"
	PartnerStatusPaused   PartnerStatus = "paused"
	PartnerStatusEnded    PartnerStatus = "ended"
)

// Partner represents a sponsoring brand that can back catalog items
type Partner struct {
	ID           string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name         string        `gorm:"not null;uniqueIndex" json:"name"`
	ContactName  string        `json:"contact_name,omitempty"`
	ContactEmail string        `json:"contact_email,omitempty"`
	LogoURL      string        `gorm:"type:text" json:"logo_url"` // public CDN URL on R2
	WebsiteURL   string        `gorm:"type:text" json:"website_url,omitempty"`
	Notes        string        `gorm:"type:text" json:"notes,omitempty"`
	Status       PartnerStatus `gorm:"not null;default:'prospect'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
