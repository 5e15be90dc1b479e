package catalog

// SortOrder selects the ordering applied after filtering.
type SortOrder string

const (
	SortNone       SortOrder = ""
	SortPriceAsc   SortOrder = "price_asc"
	SortPriceDesc  SortOrder = "price_desc"
	SortRatingDesc SortOrder = "rating_desc"
	SortNewest     SortOrder = "newest"
)

// PriceBand buckets products by unit price.
type PriceBand string

const (
	BandAny    PriceBand = ""
	BandLow    PriceBand = "low"    // price < 50
	BandMedium PriceBand = "medium" // 50 <= price <= 100
	BandHigh   PriceBand = "high"   // price > 100
)

// Criteria is the user-selected combination of search/filter/sort choices.
// The zero value means "no constraint on any dimension".
type Criteria struct {
	SearchText string    `json:"searchText"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
	Material   string    `json:"material"`
	Size       string    `json:"size"`
	PriceBand  PriceBand `json:"priceBand"`
	SortOrder  SortOrder `json:"sortOrder"`
}

// ParseSortOrder maps a raw string onto a known SortOrder; unknown values
// (including "none") collapse to SortNone.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc, SortPriceDesc, SortRatingDesc, SortNewest:
		return SortOrder(s)
	}
	return SortNone
}

// ParsePriceBand maps a raw string onto a known PriceBand; unknown values
// (including "any") collapse to BandAny.
func ParsePriceBand(s string) PriceBand {
	switch PriceBand(s) {
	case BandLow, BandMedium, BandHigh:
		return PriceBand(s)
	}
	return BandAny
}
