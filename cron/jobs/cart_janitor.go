package jobs

import (
	"log"
	"time"

	"atelier.GO/cart"
)

var (
	janitorManager *cart.Manager
	janitorMaxIdle = 2 * time.Hour
)

// ConfigureCartJanitor wires the job's dependencies. Called once at startup.
func ConfigureCartJanitor(m *cart.Manager, maxIdle time.Duration) {
	janitorManager = m
	if maxIdle > 0 {
		janitorMaxIdle = maxIdle
	}
}

// CartJanitorJob evicts idle in-memory session carts. Persisted carts are
// untouched and rehydrate on the visitor's next request.
func CartJanitorJob(args ...string) {
	if janitorManager == nil {
		log.Println("cartjanitor: not configured, skipping")
		return
	}
	evicted := janitorManager.EvictIdle(janitorMaxIdle)
	if evicted > 0 {
		log.Printf("cartjanitor: evicted %d idle session carts (%d live)", evicted, janitorManager.SessionCount())
	}
}
