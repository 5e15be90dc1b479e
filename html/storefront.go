package html

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"atelier.GO/cart"
	"atelier.GO/catalog"
	parts "atelier.GO/html/parts"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewRenderer parses the embedded storefront templates.
func NewRenderer() *Template {
	return &Template{
		Templates: template.Must(template.New("").Funcs(TemplateFuncs()).ParseFS(templatesFS, "templates/*.html")),
	}
}

// TemplateFuncs returns FuncMap helpers for the storefront templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"finalPrice": func(p catalog.Product) float64 { return p.FinalPrice() },
	}
}

// RegisterStorefrontRoutes registers the server-rendered catalog page. The
// cart badge hydrates itself from /api/cart/summary on load.
func RegisterStorefrontRoutes(e *echo.Echo, snap *catalog.Snapshot, carts *cart.Manager) {
	e.GET("/tienda", func(c echo.Context) error {
		criteria := catalog.Criteria{
			SearchText: c.QueryParam("q"),
			Category:   c.QueryParam("category"),
			Color:      c.QueryParam("color"),
			Material:   c.QueryParam("material"),
			Size:       c.QueryParam("size"),
			PriceBand:  catalog.ParsePriceBand(c.QueryParam("price_band")),
			SortOrder:  catalog.ParseSortOrder(c.QueryParam("sort")),
		}
		products, active := catalog.Apply(snap.Products(), criteria)

		criticalCSS, err := parts.GetCriticalCSSCached()
		if err != nil {
			criticalCSS = ""
		}
		return c.Render(http.StatusOK, "storefront.html", map[string]interface{}{
			"Title":       "Tienda - Atelier",
			"Products":    products,
			"Count":       len(products),
			"ActiveCount": active,
			"Criteria":    criteria,
			"CriticalCSS": template.CSS(criticalCSS),
		})
	})
}
