package html

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"atelier.GO/cart"
	"atelier.GO/catalog"
	"atelier.GO/core/kv"
)

func storefrontServer(t *testing.T, products []catalog.Product) *echo.Echo {
	t.Helper()
	snap := catalog.NewSnapshot()
	if err := snap.Load(products); err != nil {
		t.Fatalf("snapshot load: %v", err)
	}
	e := echo.New()
	e.Renderer = NewRenderer()
	RegisterStorefrontRoutes(e, snap, cart.NewManager(kv.NewMemoryStore()))
	return e
}

func TestStorefront_RendersCatalogGrid(t *testing.T) {
	e := storefrontServer(t, []catalog.Product{
		{ID: "hui-001", Title: "Camisa de lino", Price: 89, Category: "camisas", Sizes: []string{"M"}},
		{ID: "reb-101", Title: "Vestido midi", Price: 120, Category: "vestidos", Sizes: []string{"S"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/tienda", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Camisa de lino") || !strings.Contains(body, "Vestido midi") {
		t.Errorf("grid missing products: %s", body)
	}
	if !strings.Contains(body, "2 productos") {
		t.Errorf("result line missing count: %s", body)
	}
}

func TestStorefront_FiltersFromQuery(t *testing.T) {
	e := storefrontServer(t, []catalog.Product{
		{ID: "hui-001", Title: "Camisa de lino", Price: 89, Category: "camisas", Sizes: []string{"M"}},
		{ID: "reb-101", Title: "Vestido midi", Price: 120, Category: "vestidos", Sizes: []string{"S"}},
	})

	req := httptest.NewRequest(http.MethodGet, "/tienda?category=vestidos", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "Camisa de lino") {
		t.Error("filtered-out product still rendered")
	}
	if !strings.Contains(body, "Vestido midi") {
		t.Error("matching product not rendered")
	}
	if !strings.Contains(body, "1 filtros activos") {
		t.Errorf("active filter count missing: %s", body)
	}
}
