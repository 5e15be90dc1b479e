package cart

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"atelier.GO/api"
	"atelier.GO/cart"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

const (
	sessionHeader = "X-Session-Id"
	sessionCookie = "atelier_session"
)

// CartResponse is the full cart view.
type CartResponse struct {
	Items    []cart.LineItem `json:"items"`
	Count    int             `json:"count"`
	Subtotal float64         `json:"subtotal"`
}

// SummaryResponse feeds the cart badge.
type SummaryResponse struct {
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
}

// RegisterCartRoutes sets up the per-session cart endpoints.
func RegisterCartRoutes(g *echo.Group, deps *api.Deps) {
	cg := g.Group("/cart")

	cg.GET("", func(c echo.Context) error {
		s := sessionStore(c, deps)
		return c.JSON(http.StatusOK, cartResponse(s))
	})

	cg.GET("/summary", func(c echo.Context) error {
		s := sessionStore(c, deps)
		return c.JSON(http.StatusOK, SummaryResponse{
			Count:    s.TotalItemCount(),
			Subtotal: s.Subtotal(),
		})
	})

	// POST /api/cart/items {"product_id": "..."} — add one unit
	cg.POST("/items", func(c echo.Context) error {
		var body struct {
			ProductID string `json:"product_id"`
		}
		if err := c.Bind(&body); err != nil || body.ProductID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id is required"})
		}
		p, ok := deps.Catalog.Product(body.ProductID)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		s := sessionStore(c, deps)
		s.Add(p)
		return c.JSON(http.StatusOK, cartResponse(s))
	})

	// PUT /api/cart/items/:id {"quantity": n} — n < 1 removes the item
	cg.PUT("/items/:id", func(c echo.Context) error {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		s := sessionStore(c, deps)
		s.UpdateQuantity(c.Param("id"), body.Quantity)
		return c.JSON(http.StatusOK, cartResponse(s))
	})

	cg.DELETE("/items/:id", func(c echo.Context) error {
		s := sessionStore(c, deps)
		s.Remove(c.Param("id"))
		return c.JSON(http.StatusOK, cartResponse(s))
	})

	// Checkout is a stub: it validates the cart is non-empty and acknowledges.
	cg.POST("/checkout", func(c echo.Context) error {
		s := sessionStore(c, deps)
		if s.TotalItemCount() == 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cart is empty"})
		}
		return c.JSON(http.StatusAccepted, echo.Map{
			"status":   "pending",
			"subtotal": s.Subtotal(),
		})
	})
}

// sessionStore resolves the visitor's session id (header, then cookie,
// minting a new cookie when absent) and returns their cart store.
func sessionStore(c echo.Context, deps *api.Deps) *cart.Store {
	id := c.Request().Header.Get(sessionHeader)
	if id == "" {
		if ck, err := c.Cookie(sessionCookie); err == nil && ck.Value != "" {
			id = ck.Value
		}
	}
	if id == "" {
		id = uuid.NewString()
		c.SetCookie(&http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
		})
	}
	return deps.Carts.Get(id)
}

func cartResponse(s *cart.Store) CartResponse {
	return CartResponse{
		Items:    s.Items(),
		Count:    s.TotalItemCount(),
		Subtotal: s.Subtotal(),
	}
}
