// Package cart implements the shopping cart state container: an ordered list
// of line items mirrored into durable key-value storage on every mutation.
package cart

import (
	"math"

	"atelier.GO/catalog"
)

// LineItem is one product entry in the cart with its quantity. The product
// fields are denormalized into the item, so a serialized cart stands on its
// own without a catalog lookup.
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal returns the discounted line price.
func (li LineItem) LineTotal() float64 {
	return li.FinalPrice() * float64(li.Quantity)
}

// Subtotal sums the discounted line totals, rounded to 2 decimals for display.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, li := range items {
		sum += li.LineTotal()
	}
	return math.Round(sum*100) / 100
}

// TotalItemCount sums quantities across all line items.
func TotalItemCount(items []LineItem) int {
	total := 0
	for _, li := range items {
		total += li.Quantity
	}
	return total
}
