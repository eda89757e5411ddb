package curation

import (
	"math"
	"sort"
	"strings"
	"time"

	"loyalty-admin-system/models"
)

// lowStockThreshold: items with 0 < stock < lowStockThreshold fall into the
// low-stock bucket.
const lowStockThreshold = 5

// StateBucket is one of the explicit membership filters. Empty means no
// bucket filter.
type StateBucket string

const (
	BucketAny        StateBucket = ""
	BucketActive     StateBucket = "active"
	BucketInactive   StateBucket = "inactive"
	BucketFeatured   StateBucket = "featured"
	BucketSponsored  StateBucket = "sponsored"
	BucketLowStock   StateBucket = "low_stock"
	BucketOutOfStock StateBucket = "out_of_stock"
)

// TierFilter selects by minimum status tier, with one derived value:
// TierFilterTiered matches items whose per-tier cost map actually diverges
// from the base cost.
type TierFilter string

const (
	TierFilterAny    TierFilter = ""
	TierFilterTiered TierFilter = "tiered_pricing"
)

// Filters holds the active catalog filters. All predicates are conjunctive:
// an item must satisfy every active filter to stay in the view.
type Filters struct {
	Search   string                 `json:"search"`
	Category models.CatalogCategory `json:"category"`
	Bucket   StateBucket            `json:"bucket"`
	Tier     TierFilter             `json:"tier"`
}

// SortField picks the column to sort by when not in order mode.
type SortField string

const (
	SortTitle         SortField = "title"
	SortCost          SortField = "cost"
	SortStock         SortField = "stock"
	SortClaimCount    SortField = "claim_count"
	SortWishlistCount SortField = "wishlist_count"
	SortCreatedAt     SortField = "created_at"
)

// Sort is the manual sort selection. Ignored entirely while order mode is
// active.
type Sort struct {
	Field SortField `json:"field"`
	Desc  bool      `json:"desc"`
}

func matches(item *models.CatalogItem, f Filters, now time.Time) bool {
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(item.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if !matchesBucket(item, f.Bucket, now) {
		return false
	}
	return matchesTier(item, f.Tier)
}

func matchesBucket(item *models.CatalogItem, b StateBucket, now time.Time) bool {
	switch b {
	case BucketAny:
		return true
	case BucketActive:
		return item.IsActive
	case BucketInactive:
		return !item.IsActive
	case BucketFeatured:
		return item.IsFeatured
	case BucketSponsored:
		return DeriveSponsorship(item, now) == SponsorshipActive
	case BucketLowStock:
		// Unlimited stock never counts as low.
		return item.Stock != nil && *item.Stock > 0 && *item.Stock < lowStockThreshold
	case BucketOutOfStock:
		return item.Stock != nil && *item.Stock == 0
	default:
		// Unknown bucket values match nothing rather than erroring.
		return false
	}
}

func matchesTier(item *models.CatalogItem, t TierFilter) bool {
	switch t {
	case TierFilterAny:
		return true
	case TierFilterTiered:
		return item.HasTieredPricing()
	default:
		return item.MinStatusTier == models.StatusTier(t)
	}
}

// sortKeyStock treats unlimited (nil) stock as +infinity, so unlimited items
// sort last ascending and first descending.
func sortKeyStock(item *models.CatalogItem) int {
	if item.Stock == nil {
		return math.MaxInt
	}
	return *item.Stock
}

func less(a, b *models.CatalogItem, field SortField) bool {
	switch field {
	case SortTitle:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case SortCost:
		return a.Cost < b.Cost
	case SortStock:
		return sortKeyStock(a) < sortKeyStock(b)
	case SortClaimCount:
		return a.ClaimCount < b.ClaimCount
	case SortWishlistCount:
		return a.WishlistCount < b.WishlistCount
	default:
		// Unknown fields fall back to creation time, the list default.
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

// View derives the visible, ordered slice of the catalog. It is pure and
// total: unmatched filter values yield an empty view, never an error.
//
// While orderMode is active the sort selection is ignored outright and the
// view is always DisplayOrder ascending — showing drag handles against any
// other order would corrupt the admin's sense of position.
func View(items []models.CatalogItem, f Filters, s Sort, orderMode bool, now time.Time) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(items))
	for i := range items {
		if matches(&items[i], f, now) {
			out = append(out, items[i])
		}
	}

	if orderMode {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DisplayOrder < out[j].DisplayOrder
		})
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if s.Desc {
			return less(&out[j], &out[i], s.Field)
		}
		return less(&out[i], &out[j], s.Field)
	})
	return out
}
