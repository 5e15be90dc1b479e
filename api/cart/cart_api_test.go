package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"atelier.GO/api"
	"atelier.GO/cart"
	"atelier.GO/catalog"
	"atelier.GO/core/kv"
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	snap := catalog.NewSnapshot()
	if err := snap.Refresh(context.Background(), catalog.FixtureSource{}); err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	deps := &api.Deps{
		Catalog: snap,
		Carts:   cart.NewManager(kv.NewMemoryStore()),
	}
	e := echo.New()
	RegisterCartRoutes(e.Group("/api"), deps)
	return e
}

func do(t *testing.T, e *echo.Echo, method, url, body string) (*httptest.ResponseRecorder, CartResponse) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	req.Header.Set("X-Session-Id", "test-session")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var resp CartResponse
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, resp
}

func TestCart_AddAndRead(t *testing.T) {
	e := testServer(t)
	rec, resp := do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"hui-001"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add status = %d", rec.Code)
	}
	if resp.Count != 1 || len(resp.Items) != 1 || resp.Items[0].ID != "hui-001" {
		t.Errorf("cart after add = %+v", resp)
	}

	// Second add accumulates quantity
	_, resp = do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"hui-001"}`)
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
		t.Errorf("repeated add = %+v", resp.Items)
	}

	_, resp = do(t, e, http.MethodGet, "/api/cart", "")
	if resp.Count != 2 {
		t.Errorf("GET cart count = %d, want 2", resp.Count)
	}
}

func TestCart_AddUnknownProduct(t *testing.T) {
	e := testServer(t)
	rec, _ := do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCart_UpdateAndRemove(t *testing.T) {
	e := testServer(t)
	do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"hui-001"}`)

	_, resp := do(t, e, http.MethodPut, "/api/cart/items/hui-001", `{"quantity":5}`)
	if resp.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", resp.Items[0].Quantity)
	}

	// Zero quantity removes
	_, resp = do(t, e, http.MethodPut, "/api/cart/items/hui-001", `{"quantity":0}`)
	if len(resp.Items) != 0 {
		t.Errorf("zero quantity left items: %+v", resp.Items)
	}

	do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"reb-101"}`)
	_, resp = do(t, e, http.MethodDelete, "/api/cart/items/reb-101", "")
	if len(resp.Items) != 0 {
		t.Errorf("delete left items: %+v", resp.Items)
	}
}

func TestCart_Summary(t *testing.T) {
	e := testServer(t)
	// hui-002: price 120, discount 10 → 108.00
	do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"hui-002"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/summary", nil)
	req.Header.Set("X-Session-Id", "test-session")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var sum SummaryResponse
	if err := json.NewDecoder(rec.Body).Decode(&sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.Count != 1 || sum.Subtotal != 108.00 {
		t.Errorf("summary = %+v, want count 1 subtotal 108.00", sum)
	}
}

func TestCart_CheckoutBlockedWhenEmpty(t *testing.T) {
	e := testServer(t)
	rec, _ := do(t, e, http.MethodPost, "/api/cart/checkout", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("empty checkout status = %d, want 409", rec.Code)
	}

	do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"hui-001"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/cart/checkout", nil)
	req.Header.Set("X-Session-Id", "test-session")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Errorf("checkout status = %d, want 202", rec.Code)
	}
}

func TestCart_SessionCookieMinted(t *testing.T) {
	e := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	found := false
	for _, ck := range cookies {
		if ck.Name == "atelier_session" && ck.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("no session cookie minted for anonymous visitor")
	}
}

func TestCart_SessionsIsolated(t *testing.T) {
	e := testServer(t)
	do(t, e, http.MethodPost, "/api/cart/items", `{"product_id":"hui-001"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("X-Session-Id", "other-session")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var resp CartResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Count != 0 {
		t.Errorf("cart leaked across sessions: %+v", resp)
	}
}
