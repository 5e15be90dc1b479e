package catalog

import (
	"context"
	"fmt"
	"sync"
)

// Source supplies the product list. Implementations: embedded fixture
// (demo/offline mode), remote storefront API, database repository. Consumers
// treat all of them identically once the products are in memory.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
}

// Snapshot holds the in-memory catalog the pipeline and resolvers read from.
// Reloads swap the whole slice; readers get a copy and never see a partial
// refresh.
type Snapshot struct {
	mu       sync.RWMutex
	products []Product
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Load validates and installs a new product list.
func (s *Snapshot) Load(products []Product) error {
	if err := ValidateAll(products); err != nil {
		return fmt.Errorf("catalog snapshot: %w", err)
	}
	cp := make([]Product, len(products))
	copy(cp, products)
	s.mu.Lock()
	s.products = cp
	s.mu.Unlock()
	return nil
}

// Refresh pulls from the source and installs the result.
func (s *Snapshot) Refresh(ctx context.Context, src Source) error {
	products, err := src.Products(ctx)
	if err != nil {
		return fmt.Errorf("catalog refresh: %w", err)
	}
	return s.Load(products)
}

// Products returns a copy of the current product list.
func (s *Snapshot) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := make([]Product, len(s.products))
	copy(cp, s.products)
	return cp
}

// Product returns the product with the given id.
func (s *Snapshot) Product(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Len returns the number of products in the snapshot.
func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}
