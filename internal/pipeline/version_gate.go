package pipeline

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// VersionGate remembers the highest snapshot version seen per route and
// rejects anything older. Routes that fall out of the LRU are treated as new.
type VersionGate struct {
	mu     sync.Mutex
	latest *lru.Cache[string, int64]
}

// NewVersionGate creates a gate tracking at most maxRoutes routes. Sizes
// below one are raised to one.
func NewVersionGate(maxRoutes int) *VersionGate {
	// lru.New only fails for non-positive sizes.
	latest, _ := lru.New[string, int64](max(maxRoutes, 1))
	return &VersionGate{latest: latest}
}

// Admit records version for routeID and reports whether it may be published.
// Equal versions are admitted so redelivered messages are re-evaluated. An
// empty route ID is always admitted.
func (g *VersionGate) Admit(routeID string, version int64) bool {
	if routeID == "" {
		return true
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.latest.Get(routeID); ok && version < last {
		return false
	}
	g.latest.Add(routeID, version)
	return true
}
