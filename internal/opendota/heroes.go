package opendota

import (
	"context"
	"sync"

	"github.com/pable/go-dota-metrics/internal/model"
)

// HeroSource fetches the hero catalog.
type HeroSource interface {
	Heroes(ctx context.Context) ([]Hero, error)
}

// HeroCache memoizes the hero catalog after the first successful fetch.
// Failed fetches are not cached, so the next call tries again.
type HeroCache struct {
	src HeroSource

	mu    sync.Mutex
	names model.HeroNames
}

// NewHeroCache returns an empty cache backed by src.
func NewHeroCache(src HeroSource) *HeroCache {
	return &HeroCache{src: src}
}

// EnsureLoaded returns the catalog, fetching it on first use. The returned
// map is shared and must not be modified.
func (c *HeroCache) EnsureLoaded(ctx context.Context) (model.HeroNames, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.names != nil {
		return c.names, nil
	}
	heroes, err := c.src.Heroes(ctx)
	if err != nil {
		return nil, err
	}
	names := make(model.HeroNames, len(heroes))
	for _, h := range heroes {
		names[h.ID] = h.LocalizedName
	}
	c.names = names
	return names, nil
}

// Loaded reports whether the catalog has been fetched.
func (c *HeroCache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.names != nil
}
