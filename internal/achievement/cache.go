package achievement

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/JackRiiley/life-rpg-app/internal/domain"
)

const catalogCacheKey = "catalog"

// catalogCache holds the achievement catalog with time-based expiration.
// The catalog only changes on deploys, so a short TTL keeps every evaluation
// off the database without risking stale unlock thresholds for long.
type catalogCache struct {
	lru *expirable.LRU[string, []domain.Achievement]
}

func newCatalogCache(ttl time.Duration) *catalogCache {
	return &catalogCache{
		lru: expirable.NewLRU[string, []domain.Achievement](1, nil, ttl),
	}
}

func (c *catalogCache) Get() ([]domain.Achievement, bool) {
	return c.lru.Get(catalogCacheKey)
}

func (c *catalogCache) Set(achievements []domain.Achievement) {
	c.lru.Add(catalogCacheKey, achievements)
}
