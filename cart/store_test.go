package cart

import (
	"context"
	"reflect"
	"testing"
	"time"

	"atelier.GO/catalog"
	"atelier.GO/core/kv"
)

func p(id string, price float64, discount int) catalog.Product {
	return catalog.Product{ID: id, Title: "Producto " + id, Price: price, Discount: discount}
}

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	mem := kv.NewMemoryStore()
	return NewStore(mem, DefaultKey), mem
}

func TestStore_AddIsIdempotentOnRows(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(p("p1", 100, 10))
	s.Add(p("p1", 100, 10))

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("got %d rows, want 1", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", items[0].Quantity)
	}
}

func TestStore_AddPreservesInsertionOrder(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(p("b", 10, 0))
	s.Add(p("a", 20, 0))
	s.Add(p("b", 10, 0))

	items := s.Items()
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Errorf("insertion order lost: %+v", items)
	}
}

func TestStore_SubtotalWithDiscount(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(p("p1", 100, 10))
	if got := s.Subtotal(); got != 90.00 {
		t.Errorf("subtotal after one add = %v, want 90.00", got)
	}
	s.Add(p("p1", 100, 10))
	if got := s.Subtotal(); got != 180.00 {
		t.Errorf("subtotal after second add = %v, want 180.00", got)
	}
	if got := s.TotalItemCount(); got != 2 {
		t.Errorf("total item count = %d, want 2", got)
	}
}

func TestStore_SubtotalRounds(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(p("p1", 9.99, 33)) // 6.6933
	if got := s.Subtotal(); got != 6.69 {
		t.Errorf("subtotal = %v, want 6.69", got)
	}
}

func TestStore_Remove(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(p("p1", 10, 0))
	s.Add(p("p2", 20, 0))
	s.Remove("p1")
	items := s.Items()
	if len(items) != 1 || items[0].ID != "p2" {
		t.Errorf("items after remove = %+v", items)
	}
	// Unknown id: silent no-op
	s.Remove("ghost")
	if len(s.Items()) != 1 {
		t.Error("removing unknown id changed the cart")
	}
}

func TestStore_QuantityFloorRemoves(t *testing.T) {
	for _, q := range []int{0, -5} {
		s, _ := newTestStore(t)
		s.Add(p("p1", 10, 0))
		s.UpdateQuantity("p1", q)
		if len(s.Items()) != 0 {
			t.Errorf("UpdateQuantity(p1, %d) left the item in the cart", q)
		}
	}
}

func TestStore_UpdateQuantity(t *testing.T) {
	s, _ := newTestStore(t)
	s.Add(p("p1", 10, 0))
	s.UpdateQuantity("p1", 7)
	items := s.Items()
	if items[0].Quantity != 7 {
		t.Errorf("quantity = %d, want 7", items[0].Quantity)
	}
	if items[0].Price != 10 {
		t.Errorf("price changed by quantity update: %v", items[0].Price)
	}
	// Unknown id: no-op, no new row
	s.UpdateQuantity("ghost", 3)
	if len(s.Items()) != 1 {
		t.Error("UpdateQuantity on unknown id created a row")
	}
}

func TestStore_RoundTripPersistence(t *testing.T) {
	mem := kv.NewMemoryStore()
	s := NewStore(mem, DefaultKey)
	s.Add(p("p1", 100, 10))
	s.Add(p("p2", 30, 0))
	s.Add(p("p1", 100, 10))
	s.UpdateQuantity("p2", 4)
	s.Remove("missing")

	// A fresh store over the same storage must see the identical sequence.
	s2 := NewStore(mem, DefaultKey)
	if !reflect.DeepEqual(s.Items(), s2.Items()) {
		t.Errorf("rehydrated cart differs:\n  got  %+v\n  want %+v", s2.Items(), s.Items())
	}
}

func TestStore_EmptyCartStillPersisted(t *testing.T) {
	mem := kv.NewMemoryStore()
	s := NewStore(mem, DefaultKey)
	s.Add(p("p1", 10, 0))
	s.Remove("p1")

	raw, err := mem.Get(context.Background(), DefaultKey)
	if err != nil {
		t.Fatalf("empty cart not persisted: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("persisted empty cart = %s, want []", raw)
	}
}

func TestHydrate_TaggedResults(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()

	if _, state := Hydrate(mem, DefaultKey); state != HydrateEmpty {
		t.Errorf("state on missing key = %v, want HydrateEmpty", state)
	}

	mem.Set(ctx, DefaultKey, []byte("{corrupt"))
	items, state := Hydrate(mem, DefaultKey)
	if state != HydrateCorrupt {
		t.Errorf("state on corrupt value = %v, want HydrateCorrupt", state)
	}
	if len(items) != 0 {
		t.Errorf("corrupt hydration returned items: %+v", items)
	}

	mem.Set(ctx, DefaultKey, []byte(`[{"id":"p1","price":10,"quantity":2}]`))
	items, state = Hydrate(mem, DefaultKey)
	if state != HydrateOK || len(items) != 1 || items[0].ID != "p1" || items[0].Quantity != 2 {
		t.Errorf("hydration = %+v, %v", items, state)
	}
}

func TestStore_CorruptStorageStartsEmpty(t *testing.T) {
	mem := kv.NewMemoryStore()
	mem.Set(context.Background(), DefaultKey, []byte("not json"))
	s := NewStore(mem, DefaultKey)
	if len(s.Items()) != 0 {
		t.Error("store with corrupt storage should start empty")
	}
	// And keep working
	s.Add(p("p1", 10, 0))
	if s.TotalItemCount() != 1 {
		t.Error("store unusable after corrupt hydration")
	}
}

func TestStore_SubscribeNotify(t *testing.T) {
	s, _ := newTestStore(t)
	var calls [][]LineItem
	unsub := s.Subscribe(func(items []LineItem) {
		calls = append(calls, items)
	})

	s.Add(p("p1", 10, 0))
	s.UpdateQuantity("p1", 3)
	if len(calls) != 2 {
		t.Fatalf("notified %d times, want 2", len(calls))
	}
	if calls[1][0].Quantity != 3 {
		t.Errorf("last notification quantity = %d, want 3", calls[1][0].Quantity)
	}

	unsub()
	s.Remove("p1")
	if len(calls) != 2 {
		t.Error("notified after unsubscribe")
	}
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(kv.NewMemoryStore())
	a := m.Get("session-a")
	b := m.Get("session-b")
	a.Add(p("p1", 10, 0))
	if b.TotalItemCount() != 0 {
		t.Error("cart leaked across sessions")
	}
	if m.Get("session-a") != a {
		t.Error("same session should get the same store")
	}
}

func TestManager_EvictIdleKeepsPersistedCart(t *testing.T) {
	mem := kv.NewMemoryStore()
	m := NewManager(mem)
	s := m.Get("s1")
	s.Add(p("p1", 10, 0))

	time.Sleep(5 * time.Millisecond)
	if n := m.EvictIdle(time.Millisecond); n != 1 {
		t.Fatalf("evicted %d, want 1", n)
	}
	if m.SessionCount() != 0 {
		t.Fatal("store still cached after eviction")
	}

	// Rehydrates from storage
	s2 := m.Get("s1")
	if s2.TotalItemCount() != 1 {
		t.Error("persisted cart lost across eviction")
	}
}
