package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"atelier.GO/catalog"
	productEntity "atelier.GO/model/entity/product"
	productRepo "atelier.GO/model/repository/product"
)

// ImportOptions configures a catalog import run.
type ImportOptions struct {
	BatchSize int
	DryRun    bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int
	Imported    int
	Skipped     int
	Warnings    []string
	ProcessTime time.Duration
	DBTime      time.Duration
	TotalTime   time.Duration
}

// knownColumns are the CSV headers the importer understands. Sizes are a
// pipe-separated list ("S|M|L").
var knownColumns = map[string]bool{
	"id": true, "title": true, "description": true, "price": true,
	"discount": true, "category": true, "color": true, "material": true,
	"sizes": true, "rating": true, "reviews": true,
}

// ImportProducts reads CSV data from r and upserts products into the catalog
// table. Rows violating product invariants are skipped with a warning, never
// fatal — a bad row must not abort a thousand good ones.
func ImportProducts(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()

	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[h] = i
	}
	if _, ok := colIndex["id"]; !ok {
		return nil, fmt.Errorf("CSV must contain an 'id' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !knownColumns[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	startProcess := time.Now()
	seen := make(map[string]bool, len(rows))
	batch := make([]productEntity.Product, 0, len(rows))
	for n, row := range rows {
		field := func(col string) string {
			if i, ok := colIndex[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		p := catalog.Product{
			ID:          field("id"),
			Title:       field("title"),
			Description: field("description"),
			Category:    field("category"),
			Color:       field("color"),
			Material:    field("material"),
		}
		if v := field("price"); v != "" {
			p.Price, _ = strconv.ParseFloat(v, 64)
		}
		if v := field("discount"); v != "" {
			p.Discount, _ = strconv.Atoi(v)
		}
		if v := field("rating"); v != "" {
			p.Rating, _ = strconv.ParseFloat(v, 64)
		}
		if v := field("reviews"); v != "" {
			p.Reviews, _ = strconv.Atoi(v)
		}
		if v := field("sizes"); v != "" {
			p.Sizes = strings.Split(v, "|")
		}

		if err := p.Validate(); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", n+2, err))
			continue
		}
		if seen[p.ID] {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: duplicate id %q", n+2, p.ID))
			continue
		}
		seen[p.ID] = true
		batch = append(batch, productEntity.FromCatalog(p))
	}
	result.ProcessTime = time.Since(startProcess)

	startDB := time.Now()
	if !opts.DryRun && len(batch) > 0 {
		repo := productRepo.NewProductRepository(db)
		if err := repo.UpsertBatch(batch, opts.BatchSize); err != nil {
			return nil, fmt.Errorf("upsert products: %w", err)
		}
	}
	result.Imported = len(batch)
	result.DBTime = time.Since(startDB)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}
