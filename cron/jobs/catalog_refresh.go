package jobs

import (
	"context"
	"log"
	"time"

	"atelier.GO/catalog"
	"atelier.GO/core/cache"
)

var (
	refreshSnapshot *catalog.Snapshot
	refreshSource   catalog.Source
)

// ConfigureCatalogRefresh wires the job's dependencies. Called once at startup.
func ConfigureCatalogRefresh(snap *catalog.Snapshot, src catalog.Source) {
	refreshSnapshot = snap
	refreshSource = src
}

// CatalogRefreshJob re-pulls the catalog source into the in-memory snapshot
// and drops the cached catalog pages.
func CatalogRefreshJob(args ...string) {
	if refreshSnapshot == nil || refreshSource == nil {
		log.Println("catalogrefresh: not configured, skipping")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	if err := refreshSnapshot.Refresh(ctx, refreshSource); err != nil {
		log.Printf("catalogrefresh: %v", err)
		return
	}
	cache.GetInstance().DeleteByTag("catalog")
	log.Printf("catalogrefresh: %d products in %s", refreshSnapshot.Len(), time.Since(start).Round(time.Millisecond))
}
