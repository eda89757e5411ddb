package models

import (
	"time"

	"gorm.io/gorm"
)

// CatalogCategory buckets catalog items for the admin filters and the store UI
type CatalogCategory string

const (
	CatalogCategoryMerch      CatalogCategory = "merch"
	CatalogCategoryGiftCard   CatalogCategory = "gift_card"
	CatalogCategoryExperience CatalogCategory = "experience"
	CatalogCategoryDigital    CatalogCategory = "digital"
	CatalogCategoryCharity    CatalogCategory = "charity"
	CatalogCategoryOther      CatalogCategory = "other"
)

// StatusTier is the member status tier ladder. Ordering matters: higher rank
// unlocks more of the catalog.
type StatusTier string

const (
	TierBronze   StatusTier = "bronze"
	TierSilver   StatusTier = "silver"
	TierGold     StatusTier = "gold"
	TierPlatinum StatusTier = "platinum"
)

var tierRanks = map[StatusTier]int{
	TierBronze:   1,
	TierSilver:   2,
	TierGold:     3,
	TierPlatinum: 4,
}

// Rank returns the ordinal position of the tier, 0 for unknown/empty.
func (t StatusTier) Rank() int {
	return tierRanks[t]
}

// TierCosts maps a status tier to an overridden point cost for that tier.
type TierCosts map[StatusTier]int64

// CatalogItem is one reward entry in the store catalog
type CatalogItem struct {
	ID          string          `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Category    CatalogCategory `gorm:"not null;default:'other'" json:"category"`
	ImageURL    string          `gorm:"type:text" json:"image_url"`

	// 💰 Pricing
	Cost      int64     `gorm:"not null;default:0" json:"cost"` // base cost in points
	TierCosts TierCosts `gorm:"serializer:json" json:"tier_costs,omitempty"`

	// 📦 Stock — nil means unlimited
	Stock *int `json:"stock,omitempty"`

	// 🎛️ Curation state
	IsActive     bool `gorm:"default:false;index" json:"is_active"`
	IsFeatured   bool `gorm:"default:false" json:"is_featured"`
	DisplayOrder int  `gorm:"not null;default:0;index" json:"display_order"`

	// 🤝 Sponsorship
	SponsorEnabled    bool       `gorm:"default:false" json:"sponsor_enabled"`
	SponsorSuppressed bool       `gorm:"default:false" json:"sponsor_suppressed"` // admin override: metadata kept, badge hidden
	SponsorName       string     `json:"sponsor_name,omitempty"`
	SponsorLogoURL    string     `gorm:"type:text" json:"sponsor_logo_url,omitempty"`
	SponsorLinkURL    string     `gorm:"type:text" json:"sponsor_link_url,omitempty"`
	SponsorStartDate  *time.Time `json:"sponsor_start_date,omitempty"`
	SponsorEndDate    *time.Time `json:"sponsor_end_date,omitempty"`
	PartnerID         string     `gorm:"index" json:"partner_id,omitempty"`

	// 🔒 Eligibility
	MinStatusTier StatusTier `json:"min_status_tier,omitempty"` // empty = open to all tiers

	// 📊 Read-only aggregates, maintained by the claim pipeline
	ClaimCount    int64 `gorm:"default:0" json:"claim_count"`
	WishlistCount int64 `gorm:"default:0" json:"wishlist_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasTieredPricing reports whether the item defines per-tier costs that
// actually differ from the base cost.
func (i *CatalogItem) HasTieredPricing() bool {
	if len(i.TierCosts) == 0 {
		return false
	}
	for _, c := range i.TierCosts {
		if c != i.Cost {
			return true
		}
	}
	return false
}
