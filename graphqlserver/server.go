package graphqlserver

import (
	"net/http"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"atelier.GO/catalog"
	graphqlpkg "atelier.GO/graphql"
)

// RootResolver is the root for graphql-go. Queries read the in-memory
// catalog snapshot; the filter/sort pipeline does the narrowing.
type RootResolver struct {
	Catalog *catalog.Snapshot
}

// NewSchema parses the schema against the root resolver.
func NewSchema(snap *catalog.Snapshot) (*gql.Schema, error) {
	return gql.ParseSchema(graphqlpkg.Schema(), &RootResolver{Catalog: snap})
}

// Handler returns the HTTP handler for a schema.
func Handler(schema *gql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Search    *string
	Category  *string
	Color     *string
	Material  *string
	Size      *string
	PriceBand *string
	SortOrder *string
}

func strArg(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *RootResolver) Products(args ProductsArgs) *ProductPageResolver {
	criteria := catalog.Criteria{
		SearchText: strArg(args.Search),
		Category:   strArg(args.Category),
		Color:      strArg(args.Color),
		Material:   strArg(args.Material),
		Size:       strArg(args.Size),
		PriceBand:  catalog.ParsePriceBand(strArg(args.PriceBand)),
		SortOrder:  catalog.ParseSortOrder(strArg(args.SortOrder)),
	}
	items, active := catalog.Apply(r.Catalog.Products(), criteria)
	return &ProductPageResolver{items: items, active: active}
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	ID gql.ID
}

func (r *RootResolver) Product(args ProductArgs) *ProductResolver {
	p, ok := r.Catalog.Product(string(args.ID))
	if !ok {
		return nil
	}
	return &ProductResolver{p: p}
}

// ProductPageResolver resolves the ProductPage type.
type ProductPageResolver struct {
	items  []catalog.Product
	active int
}

func (r *ProductPageResolver) Items() []*ProductResolver {
	out := make([]*ProductResolver, len(r.items))
	for i, p := range r.items {
		out[i] = &ProductResolver{p: p}
	}
	return out
}

func (r *ProductPageResolver) Count() int32 {
	return int32(len(r.items))
}

func (r *ProductPageResolver) ActiveFilterCount() int32 {
	return int32(r.active)
}

// ProductResolver resolves the Product type.
type ProductResolver struct {
	p catalog.Product
}

func (r *ProductResolver) ID() gql.ID          { return gql.ID(r.p.ID) }
func (r *ProductResolver) Title() string       { return r.p.Title }
func (r *ProductResolver) Description() string { return r.p.Description }
func (r *ProductResolver) Price() float64      { return r.p.Price }
func (r *ProductResolver) Discount() int32     { return int32(r.p.Discount) }
func (r *ProductResolver) Category() string    { return r.p.Category }
func (r *ProductResolver) Color() string       { return r.p.Color }
func (r *ProductResolver) Material() string    { return r.p.Material }
func (r *ProductResolver) Sizes() []string     { return r.p.Sizes }
func (r *ProductResolver) Rating() float64     { return r.p.Rating }
func (r *ProductResolver) Reviews() int32      { return int32(r.p.Reviews) }
