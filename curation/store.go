package curation

import (
	"context"
	"errors"
	"time"

	"loyalty-admin-system/models"
)

// Store is the persistence boundary of the curation engine: a tabular
// read/write service with full-collection reads and single-row partial
// updates. No batch or transactional update primitive is assumed to exist —
// every multi-row operation here is a sequence of independent writes with
// per-row outcomes.
type Store interface {
	ListItems(ctx context.Context) ([]models.CatalogItem, error)
	UpdateItem(ctx context.Context, id string, fields map[string]any) error
}

// Validation errors, raised before any write is attempted.
var (
	ErrNotInOrderMode        = errors.New("order edits require order mode")
	ErrEmptySelection        = errors.New("no items selected")
	ErrItemNotFound          = errors.New("item not found in catalog snapshot")
	ErrSponsorNameRequired   = errors.New("sponsor name is required")
	ErrSponsorLogoRequired   = errors.New("sponsor logo is required")
	ErrSponsorStartRequired  = errors.New("sponsor start date is required")
	ErrSponsorEndRequired    = errors.New("sponsor end date is required")
	ErrSponsorWindowInverted = errors.New("sponsor end date is before start date")
	ErrUnlimitedStock        = errors.New("item has unlimited stock; set an exact value first")
	ErrNegativeStock         = errors.New("stock cannot be negative")
)

// BulkResult reports the per-item outcome of one bulk operation. Multi-row
// writes are not atomic, so a single pass/fail verdict would hide which rows
// still need attention.
type BulkResult struct {
	Requested []string      `json:"requested"`
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// BulkFailure is one row that could not be written.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// ToggleOp is a bulk boolean field flip.
type ToggleOp int

const (
	ToggleActivate ToggleOp = iota
	ToggleDeactivate
	ToggleFeature
	ToggleUnfeature
)

// Fields returns the partial update the toggle writes per row.
func (op ToggleOp) Fields() map[string]any {
	switch op {
	case ToggleActivate:
		return map[string]any{"is_active": true}
	case ToggleDeactivate:
		return map[string]any{"is_active": false}
	case ToggleFeature:
		return map[string]any{"is_featured": true}
	case ToggleUnfeature:
		return map[string]any{"is_featured": false}
	default:
		return map[string]any{}
	}
}

// SponsorshipGrant is the payload of a bulk sponsorship-apply.
type SponsorshipGrant struct {
	Name      string     `json:"name"`
	LogoURL   string     `json:"logo_url"`
	LinkURL   string     `json:"link_url"`
	PartnerID string     `json:"partner_id"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// Validate rejects incomplete or inverted sponsorship windows before any
// write is attempted.
func (g *SponsorshipGrant) Validate() error {
	if g.Name == "" {
		return ErrSponsorNameRequired
	}
	if g.LogoURL == "" {
		return ErrSponsorLogoRequired
	}
	if g.StartDate == nil {
		return ErrSponsorStartRequired
	}
	if g.EndDate == nil {
		return ErrSponsorEndRequired
	}
	if g.EndDate.Before(*g.StartDate) {
		return ErrSponsorWindowInverted
	}
	return nil
}

// fields returns the partial update applying the grant to one row.
func (g *SponsorshipGrant) fields() map[string]any {
	return map[string]any{
		"sponsor_enabled":    true,
		"sponsor_suppressed": false,
		"sponsor_name":       g.Name,
		"sponsor_logo_url":   g.LogoURL,
		"sponsor_link_url":   g.LinkURL,
		"partner_id":         g.PartnerID,
		"sponsor_start_date": g.StartDate,
		"sponsor_end_date":   g.EndDate,
	}
}

// sponsorshipRemovalFields clears all sponsorship metadata on one row.
func sponsorshipRemovalFields() map[string]any {
	return map[string]any{
		"sponsor_enabled":    false,
		"sponsor_suppressed": false,
		"sponsor_name":       "",
		"sponsor_logo_url":   "",
		"sponsor_link_url":   "",
		"partner_id":         "",
		"sponsor_start_date": nil,
		"sponsor_end_date":   nil,
	}
}
