package catalog

import (
	"sort"
	"strings"
)

// Apply runs the filter/sort pipeline: it narrows products by every set
// criterion, then orders the survivors. The input slice is never mutated and
// the same inputs always produce the same output.
//
// The returned count is the number of active dimensions: each non-empty
// criterion contributes exactly 1, the sort order included. It reflects what
// was asked for, not what matched — an empty result with three filters set
// still reports 3.
func Apply(products []Product, c Criteria) ([]Product, int) {
	active := 0

	result := make([]Product, len(products))
	copy(result, products)

	if c.SearchText != "" {
		active++
		needle := strings.ToLower(c.SearchText)
		result = keep(result, func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle)
		})
	}

	if c.Category != "" {
		active++
		result = keep(result, func(p Product) bool {
			return strings.EqualFold(p.Category, c.Category)
		})
	}

	if c.Color != "" {
		active++
		result = keep(result, func(p Product) bool {
			return strings.EqualFold(p.Color, c.Color)
		})
	}

	// Material matches by substring, unlike category/color. Materials are
	// often compound strings ("algodón y bordados"), so "algodón" must match.
	if c.Material != "" {
		active++
		needle := strings.ToLower(c.Material)
		result = keep(result, func(p Product) bool {
			return strings.Contains(strings.ToLower(p.Material), needle)
		})
	}

	if c.Size != "" {
		active++
		result = keep(result, func(p Product) bool {
			return p.HasSize(c.Size)
		})
	}

	if c.PriceBand != BandAny {
		active++
		result = keep(result, func(p Product) bool {
			switch c.PriceBand {
			case BandLow:
				return p.Price < 50
			case BandMedium:
				return p.Price >= 50 && p.Price <= 100
			case BandHigh:
				return p.Price > 100
			}
			return true
		})
	}

	if c.SortOrder != SortNone {
		active++
		sortProducts(result, c.SortOrder)
	}

	return result, active
}

func keep(products []Product, pred func(Product) bool) []Product {
	out := products[:0]
	for _, p := range products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// sortProducts orders in place. Stable, so equal keys retain their filtered
// relative order.
func sortProducts(products []Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		// Ids are opaque; reverse-lexicographic order is the recency proxy.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ID > products[j].ID
		})
	}
}
