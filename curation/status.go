package curation

import (
	"time"

	"loyalty-admin-system/models"
)

// SponsorshipStatus is the derived lifecycle state of an item's sponsorship.
// It is never stored: every read recomputes it from the item fields and the
// wall clock, so stored dates and displayed status cannot drift apart.
type SponsorshipStatus int

const (
	SponsorshipNone SponsorshipStatus = iota
	SponsorshipScheduled
	SponsorshipActive
	SponsorshipEnded
	SponsorshipDisabled
)

// String returns the wire value used in JSON responses and filters.
func (s SponsorshipStatus) String() string {
	switch s {
	case SponsorshipNone:
		return "none"
	case SponsorshipScheduled:
		return "scheduled"
	case SponsorshipActive:
		return "active"
	case SponsorshipEnded:
		return "ended"
	case SponsorshipDisabled:
		return "disabled"
	default:
		return "none"
	}
}

// Label returns the admin-facing badge text for a status.
func (s SponsorshipStatus) Label() string {
	switch s {
	case SponsorshipNone:
		return "Not sponsored"
	case SponsorshipScheduled:
		return "Sponsorship scheduled"
	case SponsorshipActive:
		return "Sponsored"
	case SponsorshipEnded:
		return "Sponsorship ended"
	case SponsorshipDisabled:
		return "Sponsorship suppressed"
	default:
		return "Not sponsored"
	}
}

// DeriveSponsorship computes the sponsorship lifecycle state for an item at
// the given instant. Rules are evaluated in order:
//
//  1. sponsorship disabled or no sponsor name → none
//  2. admin suppression override set → disabled (metadata exists, badge hidden)
//  3. inverted window (end before start) → ended, end date wins
//  4. start date in the future → scheduled
//  5. end date in the past → ended
//  6. otherwise → active
func DeriveSponsorship(item *models.CatalogItem, now time.Time) SponsorshipStatus {
	if !item.SponsorEnabled || item.SponsorName == "" {
		return SponsorshipNone
	}
	if item.SponsorSuppressed {
		return SponsorshipDisabled
	}
	if item.SponsorStartDate != nil && item.SponsorEndDate != nil &&
		item.SponsorEndDate.Before(*item.SponsorStartDate) {
		return SponsorshipEnded
	}
	if item.SponsorStartDate != nil && now.Before(*item.SponsorStartDate) {
		return SponsorshipScheduled
	}
	if item.SponsorEndDate != nil && now.After(*item.SponsorEndDate) {
		return SponsorshipEnded
	}
	return SponsorshipActive
}
