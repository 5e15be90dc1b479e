package cart

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"atelier.GO/catalog"
	"atelier.GO/core/kv"
)

// DefaultKey is the storage key a single-visitor cart persists under.
// Multi-session deployments namespace it per session (see Manager).
const DefaultKey = "cart"

const persistTimeout = time.Second

// HydrateState tags the outcome of loading a persisted cart.
type HydrateState int

const (
	HydrateOK HydrateState = iota
	HydrateEmpty
	HydrateCorrupt
)

// Store is the authoritative in-memory cart, kept consistent with durable
// storage. Every mutation rewrites the whole serialized item list under the
// store's key; concurrent writers to the same key are last-write-wins, with
// no versioning — matching the single-visitor storage model.
//
// Mutations never return an error to the caller: a failed persist is logged
// and the in-memory state stands.
type Store struct {
	mu      sync.Mutex
	items   []LineItem
	kv      kv.Store
	key     string
	subs    map[int]func([]LineItem)
	nextSub int
}

// NewStore creates a store bound to a storage key and hydrates it. A missing
// value starts empty; a corrupt value is logged and collapsed to empty rather
// than surfaced — a broken cart must never take the storefront down.
func NewStore(store kv.Store, key string) *Store {
	s := &Store{kv: store, key: key, subs: make(map[int]func([]LineItem))}
	items, state := Hydrate(store, key)
	if state == HydrateCorrupt {
		log.Printf("cart %q: corrupt persisted state, starting empty", key)
	}
	s.items = items
	return s
}

// Hydrate loads the persisted cart under key. The tagged result makes the
// degrade path explicit: Corrupt means a value existed but did not parse.
func Hydrate(store kv.Store, key string) ([]LineItem, HydrateState) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	raw, err := store.Get(ctx, key)
	if err != nil {
		return nil, HydrateEmpty
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, HydrateCorrupt
	}
	return items, HydrateOK
}

// Add puts a product in the cart. A repeated add bumps the existing line's
// quantity; it never creates a second row for the same id.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == p.ID {
			s.items[i].Quantity++
			s.persistAndNotifyLocked()
			return
		}
	}
	s.items = append(s.items, LineItem{Product: p, Quantity: 1})
	s.persistAndNotifyLocked()
}

// Remove deletes the line item with the given product id. Unknown ids are a
// silent no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persistAndNotifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// UpdateQuantity sets a line item's quantity. Anything below 1 removes the
// item — a zero-quantity row is never observable.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		s.Remove(productID)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.persistAndNotifyLocked()
			return
		}
	}
	s.mu.Unlock()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]LineItem, len(s.items))
	copy(cp, s.items)
	return cp
}

// TotalItemCount returns the badge count.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalItemCount(s.items)
}

// Subtotal returns the discounted cart total, rounded to 2 decimals.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.items)
}

// Subscribe registers a callback invoked with a copy of the items after every
// mutation. The returned function unsubscribes.
func (s *Store) Subscribe(fn func(items []LineItem)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// persistAndNotifyLocked serializes the whole item list to storage, then
// releases the lock and notifies subscribers. An empty cart is still
// persisted — the stored value is overwritten, never deleted.
func (s *Store) persistAndNotifyLocked() {
	raw, err := json.Marshal(s.items)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if werr := s.kv.Set(ctx, s.key, raw); werr != nil {
			log.Printf("cart %q: persist failed: %v", s.key, werr)
		}
		cancel()
	} else {
		log.Printf("cart %q: marshal failed: %v", s.key, err)
	}

	cp := make([]LineItem, len(s.items))
	copy(cp, s.items)
	subs := make([]func([]LineItem), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cp)
	}
}
