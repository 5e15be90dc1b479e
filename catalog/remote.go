package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
)

// remoteProduct is the upstream storefront API record. The API speaks Spanish
// field names; this struct is the only place that vocabulary exists.
type remoteProduct struct {
	ID           string   `mapstructure:"id"`
	Nombre       string   `mapstructure:"nombre"`
	Descripcion  string   `mapstructure:"descripcion"`
	Precio       float64  `mapstructure:"precio"`
	Descuento    int      `mapstructure:"descuento"`
	Categoria    string   `mapstructure:"categoria"`
	Color        string   `mapstructure:"color"`
	Material     string   `mapstructure:"material"`
	Tallas       []string `mapstructure:"tallas"`
	Calificacion float64  `mapstructure:"calificacion"`
	Resenas      int      `mapstructure:"resenas"`
}

func (r remoteProduct) toProduct() Product {
	return Product{
		ID:          r.ID,
		Title:       r.Nombre,
		Description: r.Descripcion,
		Price:       r.Precio,
		Discount:    r.Descuento,
		Category:    r.Categoria,
		Color:       r.Color,
		Material:    r.Material,
		Sizes:       r.Tallas,
		Rating:      r.Calificacion,
		Reviews:     r.Resenas,
	}
}

// RemoteSource fetches the catalog from the upstream storefront API
// (GET {base}/public/productos) and adapts its field names at the boundary.
type RemoteSource struct {
	BaseURL string
	Client  *http.Client
}

func NewRemoteSource(baseURL string) *RemoteSource {
	return &RemoteSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *RemoteSource) Products(ctx context.Context) ([]Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/public/productos", nil)
	if err != nil {
		return nil, err
	}
	res, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote catalog: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote catalog: status %d", res.StatusCode)
	}

	// Decode loosely first; upstream payloads carry extra fields we ignore.
	var raw []map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("remote catalog: decode: %w", err)
	}
	return MapRemoteProducts(raw)
}

// MapRemoteProducts adapts upstream records into Products.
func MapRemoteProducts(raw []map[string]interface{}) ([]Product, error) {
	products := make([]Product, 0, len(raw))
	for i, m := range raw {
		var rp remoteProduct
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &rp,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("remote catalog: record %d: %w", i, err)
		}
		products = append(products, rp.toProduct())
	}
	return products, nil
}
