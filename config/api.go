package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public storefront paths: catalog, gallery and the session cart are
	// read/write for anonymous visitors; only admin-ish routes stay behind auth.
	return []string{
		"/public/productos",
		"/public/productos/:id",
		"/public/galeria",
		"/api/cart",
		"/api/cart/items",
		"/api/cart/items/:id",
		"/api/cart/summary",
		"/api/cart/checkout",
		"/graphql",
		"/tienda",
	}
}
