package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed fixture.json
var fixtureJSON []byte

// FixtureSource serves the bundled demo catalog. Used when no remote API or
// database is configured.
type FixtureSource struct{}

func (FixtureSource) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(fixtureJSON, &products); err != nil {
		return nil, fmt.Errorf("fixture catalog: %w", err)
	}
	return products, nil
}
