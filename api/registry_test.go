package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"atelier.GO/core/registry"
)

func TestRegisterGET_Health(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)

	RegisterGET("/mock/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})

	e := echo.New()
	ApplyRoutes(e, nil)

	req := httptest.NewRequest(http.MethodGet, "/mock/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /mock/health status = %d, want 200", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %v, want ok", resp["status"])
	}
}

func TestRegisterModule_AppliesWithDeps(t *testing.T) {
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	defer registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)

	called := false
	RegisterModule(func(g *echo.Group, deps *Deps) {
		called = true
		g.GET("/mock", func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
	})

	e := echo.New()
	ApplyModules(e.Group("/api"), &Deps{})
	if !called {
		t.Fatal("registered module was not applied")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/mock", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("GET /api/mock status = %d, want 204", rec.Code)
	}
}

func TestRegisterModule_PanicsWhenLocked(t *testing.T) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	defer func() {
		if recover() == nil {
			t.Error("RegisterModule on locked registry should panic")
		}
	}()
	RegisterModule(func(g *echo.Group, deps *Deps) {})
}
