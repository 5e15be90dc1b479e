package catalog

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"atelier.GO/api"
	"atelier.GO/catalog"
	"atelier.GO/catalog/search"
)

func init() {
	api.RegisterRoute(RegisterCatalogRoutes)
}

const cacheTTL = int64(60) // seconds

// ProductsResponse is the filtered catalog page.
type ProductsResponse struct {
	Products    []catalog.Product `json:"products"`
	Count       int               `json:"count"`
	ActiveCount int               `json:"active_filter_count"`
}

// RegisterCatalogRoutes sets up the public catalog endpoints. Route names
// follow the upstream storefront contract (/public/productos).
func RegisterCatalogRoutes(e *echo.Echo, deps *api.Deps) {
	e.GET("/public/productos", func(c echo.Context) error {
		start := time.Now()
		criteria := criteriaFromQuery(c)

		if deps.Cache != nil {
			if v, ok := deps.Cache.GetN("catalog", c.QueryString()); ok {
				return c.JSON(http.StatusOK, v.(*ProductsResponse))
			}
		}

		products := deps.Catalog.Products()

		// When Elasticsearch is configured, text search goes there first and
		// the pipeline handles the rest of the criteria in memory. The search
		// dimension stays in the active count either way.
		searchConsumed := false
		if criteria.SearchText != "" {
			if svc := search.GetService(); svc.Enabled() {
				if ids, err := svc.Search(c.Request().Context(), criteria.SearchText, 0); err == nil {
					products = pickByID(products, ids)
					criteria.SearchText = ""
					searchConsumed = true
				} else {
					log.Printf("catalog search fallback: %v", err)
				}
			}
		}

		result, active := catalog.Apply(products, criteria)
		if searchConsumed {
			active++
		}
		resp := &ProductsResponse{Products: result, Count: len(result), ActiveCount: active}
		if deps.Cache != nil {
			deps.Cache.SetN([]interface{}{"catalog", c.QueryString()}, resp, cacheTTL, []string{"catalog"})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
		return c.JSON(http.StatusOK, resp)
	})

	e.GET("/public/productos/:id", func(c echo.Context) error {
		p, ok := deps.Catalog.Product(c.Param("id"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})
}

func criteriaFromQuery(c echo.Context) catalog.Criteria {
	return catalog.Criteria{
		SearchText: c.QueryParam("q"),
		Category:   c.QueryParam("category"),
		Color:      c.QueryParam("color"),
		Material:   c.QueryParam("material"),
		Size:       c.QueryParam("size"),
		PriceBand:  catalog.ParsePriceBand(c.QueryParam("price_band")),
		SortOrder:  catalog.ParseSortOrder(c.QueryParam("sort")),
	}
}

// pickByID keeps products in the given id order; used to apply the search
// backend's relevance ranking.
func pickByID(products []catalog.Product, ids []string) []catalog.Product {
	byID := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
