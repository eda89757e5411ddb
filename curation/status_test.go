package curation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loyalty-admin-system/models"
)

var statusNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func sponsoredItem(mutate func(*models.CatalogItem)) *models.CatalogItem {
	it := &models.CatalogItem{
		ID:               "it-1",
		Title:            "Stadium Tour",
		SponsorEnabled:   true,
		SponsorName:      "Acme Co",
		SponsorLogoURL:   "https://cdn.example.com/acme.png",
		SponsorStartDate: datePtr(statusNow.Add(-24 * time.Hour)),
		SponsorEndDate:   datePtr(statusNow.Add(24 * time.Hour)),
	}
	if mutate != nil {
		mutate(it)
	}
	return it
}

func TestDeriveSponsorship(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CatalogItem)
		want   SponsorshipStatus
	}{
		{
			name:   "active inside window",
			mutate: nil,
			want:   SponsorshipActive,
		},
		{
			name:   "not enabled",
			mutate: func(it *models.CatalogItem) { it.SponsorEnabled = false },
			want:   SponsorshipNone,
		},
		{
			name:   "enabled but no sponsor name",
			mutate: func(it *models.CatalogItem) { it.SponsorName = "" },
			want:   SponsorshipNone,
		},
		{
			name:   "admin suppression wins over window",
			mutate: func(it *models.CatalogItem) { it.SponsorSuppressed = true },
			want:   SponsorshipDisabled,
		},
		{
			name: "starts tomorrow",
			mutate: func(it *models.CatalogItem) {
				it.SponsorStartDate = datePtr(statusNow.Add(24 * time.Hour))
				it.SponsorEndDate = datePtr(statusNow.Add(7 * 24 * time.Hour))
			},
			want: SponsorshipScheduled,
		},
		{
			name: "ended yesterday",
			mutate: func(it *models.CatalogItem) {
				it.SponsorStartDate = datePtr(statusNow.Add(-7 * 24 * time.Hour))
				it.SponsorEndDate = datePtr(statusNow.Add(-24 * time.Hour))
			},
			want: SponsorshipEnded,
		},
		{
			name: "no dates at all",
			mutate: func(it *models.CatalogItem) {
				it.SponsorStartDate = nil
				it.SponsorEndDate = nil
			},
			want: SponsorshipActive,
		},
		{
			name: "open ended, started",
			mutate: func(it *models.CatalogItem) {
				it.SponsorEndDate = nil
			},
			want: SponsorshipActive,
		},
		{
			name: "inverted window reports ended even before start",
			mutate: func(it *models.CatalogItem) {
				it.SponsorStartDate = datePtr(statusNow.Add(48 * time.Hour))
				it.SponsorEndDate = datePtr(statusNow.Add(24 * time.Hour))
			},
			want: SponsorshipEnded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := sponsoredItem(tt.mutate)
			assert.Equal(t, tt.want, DeriveSponsorship(it, statusNow))
		})
	}
}

func TestDeriveSponsorshipIsPure(t *testing.T) {
	it := sponsoredItem(nil)
	first := DeriveSponsorship(it, statusNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, DeriveSponsorship(it, statusNow))
	}
}

func TestSponsorshipLabelsTotal(t *testing.T) {
	statuses := []SponsorshipStatus{
		SponsorshipNone, SponsorshipScheduled, SponsorshipActive,
		SponsorshipEnded, SponsorshipDisabled,
	}
	seen := map[string]bool{}
	for _, s := range statuses {
		assert.NotEmpty(t, s.String())
		assert.NotEmpty(t, s.Label())
		assert.False(t, seen[s.String()], "duplicate wire value %q", s.String())
		seen[s.String()] = true
	}
}
