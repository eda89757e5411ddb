package curation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-admin-system/models"
)

func catalogFixture() []models.CatalogItem {
	hoodie := item("hoodie", 3)
	hoodie.Title = "Team Hoodie"
	hoodie.Category = models.CatalogCategoryMerch
	hoodie.Cost = 500
	hoodie.Stock = stock(3)
	hoodie.IsActive = true
	hoodie.ClaimCount = 42
	hoodie.CreatedAt = statusNow.Add(-72 * time.Hour)

	giftcard := item("giftcard", 1)
	giftcard.Title = "Coffee Gift Card"
	giftcard.Category = models.CatalogCategoryGiftCard
	giftcard.Cost = 200
	giftcard.Stock = nil // unlimited
	giftcard.IsActive = true
	giftcard.IsFeatured = true
	giftcard.WishlistCount = 9
	giftcard.CreatedAt = statusNow.Add(-48 * time.Hour)

	tour := item("tour", 2)
	tour.Title = "Stadium Tour"
	tour.Category = models.CatalogCategoryExperience
	tour.Cost = 2000
	tour.Stock = stock(0)
	tour.MinStatusTier = models.TierGold
	tour.SponsorEnabled = true
	tour.SponsorName = "Acme Co"
	tour.CreatedAt = statusNow.Add(-24 * time.Hour)

	sticker := item("sticker", 4)
	sticker.Title = "Sticker Pack"
	sticker.Category = models.CatalogCategoryMerch
	sticker.Cost = 50
	sticker.Stock = stock(120)
	sticker.IsActive = true
	sticker.TierCosts = models.TierCosts{models.TierGold: 25, models.TierBronze: 50}
	sticker.CreatedAt = statusNow.Add(-12 * time.Hour)

	return []models.CatalogItem{hoodie, giftcard, tour, sticker}
}

func viewIDs(items []models.CatalogItem, f Filters, s Sort, orderMode bool) []string {
	return ids(View(items, f, s, orderMode, statusNow))
}

func TestViewSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := viewIDs(catalogFixture(), Filters{Search: "GIFT"}, Sort{Field: SortTitle}, false)
	assert.Equal(t, []string{"giftcard"}, got)
}

func TestViewFiltersAreConjunctive(t *testing.T) {
	f := Filters{Search: "e", Category: models.CatalogCategoryMerch, Bucket: BucketActive}
	got := viewIDs(catalogFixture(), f, Sort{Field: SortTitle}, false)
	// Both merch items are active; both titles contain "e".
	assert.Equal(t, []string{"sticker", "hoodie"}, got)
}

func TestViewBuckets(t *testing.T) {
	items := catalogFixture()
	tests := []struct {
		bucket StateBucket
		want   []string
	}{
		{BucketActive, []string{"giftcard", "sticker", "hoodie"}},
		{BucketInactive, []string{"tour"}},
		{BucketFeatured, []string{"giftcard"}},
		{BucketSponsored, []string{"tour"}},
		{BucketLowStock, []string{"hoodie"}},
		{BucketOutOfStock, []string{"tour"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.bucket), func(t *testing.T) {
			got := viewIDs(items, Filters{Bucket: tt.bucket}, Sort{Field: SortTitle}, false)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestViewUnlimitedStockNeverMatchesStockBuckets(t *testing.T) {
	items := catalogFixture()
	for _, b := range []StateBucket{BucketLowStock, BucketOutOfStock} {
		got := viewIDs(items, Filters{Bucket: b}, Sort{Field: SortTitle}, false)
		assert.NotContains(t, got, "giftcard")
	}
}

func TestViewTierFilters(t *testing.T) {
	items := catalogFixture()

	got := viewIDs(items, Filters{Tier: TierFilter(models.TierGold)}, Sort{Field: SortTitle}, false)
	assert.Equal(t, []string{"tour"}, got)

	got = viewIDs(items, Filters{Tier: TierFilterTiered}, Sort{Field: SortTitle}, false)
	assert.Equal(t, []string{"sticker"}, got)
}

func TestViewTieredPricingIgnoresUniformOverrides(t *testing.T) {
	it := item("flat", 1)
	it.Cost = 100
	it.TierCosts = models.TierCosts{models.TierGold: 100, models.TierSilver: 100}
	got := viewIDs([]models.CatalogItem{it}, Filters{Tier: TierFilterTiered}, Sort{}, false)
	assert.Empty(t, got)
}

func TestViewUnmatchedFilterYieldsEmptyNotError(t *testing.T) {
	got := View(catalogFixture(), Filters{Search: "no such item"}, Sort{}, false, statusNow)
	assert.Empty(t, got)

	got = View(catalogFixture(), Filters{Bucket: StateBucket("bogus")}, Sort{}, false, statusNow)
	assert.Empty(t, got)
}

func TestViewOrderModeOverridesSort(t *testing.T) {
	items := catalogFixture()
	byOrder := []string{"giftcard", "tour", "hoodie", "sticker"}

	sorts := []Sort{
		{Field: SortTitle}, {Field: SortTitle, Desc: true},
		{Field: SortCost}, {Field: SortClaimCount, Desc: true},
		{Field: SortStock}, {Field: SortCreatedAt},
	}
	for _, s := range sorts {
		assert.Equal(t, byOrder, viewIDs(items, Filters{}, s, true),
			"order mode must ignore sort %+v", s)
	}
}

func TestViewSortStockTreatsUnlimitedAsInfinity(t *testing.T) {
	items := catalogFixture()

	asc := viewIDs(items, Filters{}, Sort{Field: SortStock}, false)
	require.Equal(t, "giftcard", asc[len(asc)-1], "unlimited sorts last ascending")

	desc := viewIDs(items, Filters{}, Sort{Field: SortStock, Desc: true}, false)
	require.Equal(t, "giftcard", desc[0], "unlimited sorts first descending")
}

func TestViewSortFields(t *testing.T) {
	items := catalogFixture()

	assert.Equal(t, []string{"giftcard", "tour", "sticker", "hoodie"},
		viewIDs(items, Filters{}, Sort{Field: SortTitle}, false))

	assert.Equal(t, []string{"sticker", "giftcard", "hoodie", "tour"},
		viewIDs(items, Filters{}, Sort{Field: SortCost}, false))

	assert.Equal(t, []string{"hoodie", "giftcard", "tour", "sticker"},
		viewIDs(items, Filters{}, Sort{Field: SortCreatedAt}, false))

	// Ties keep their incoming relative order (stable sort).
	assert.Equal(t, []string{"hoodie", "giftcard", "tour", "sticker"},
		viewIDs(items, Filters{}, Sort{Field: SortClaimCount, Desc: true}, false))
}

func TestViewDoesNotMutateInput(t *testing.T) {
	items := catalogFixture()
	before := ids(items)
	_ = View(items, Filters{}, Sort{Field: SortTitle, Desc: true}, false, statusNow)
	assert.Equal(t, before, ids(items))
}
