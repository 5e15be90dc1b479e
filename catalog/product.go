// Package catalog holds the product model and the pure filter/sort pipeline
// driving catalog views.
package catalog

import "fmt"

// Product is the canonical catalog record. Every source (fixture, remote API,
// database) maps into this shape at its boundary; filter logic never sees
// source-specific field names.
type Product struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Discount    int      `json:"discount"` // percent, 0-100
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Material    string   `json:"material"`
	Sizes       []string `json:"sizes"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
}

// Validate checks the per-product invariants.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product: empty id")
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s: negative price %v", p.ID, p.Price)
	}
	if p.Discount < 0 || p.Discount > 100 {
		return fmt.Errorf("product %s: discount %d out of range 0-100", p.ID, p.Discount)
	}
	return nil
}

// FinalPrice returns the unit price after discount.
func (p Product) FinalPrice() float64 {
	return p.Price * (1 - float64(p.Discount)/100)
}

// HasSize reports whether the product is offered in the given size.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// ValidateAll checks all products and the cross-catalog unique-id invariant.
func ValidateAll(products []Product) error {
	seen := make(map[string]bool, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return fmt.Errorf("product %s: duplicate id", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}
