package repository

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/okian/owarai/internal/domain/model"
	"github.com/okian/owarai/internal/domain/ranking"
)

// RankingCache memoizes rankings per snapshot and evaluation date. Cached
// rankings are shared between callers and must be treated as read-only.
type RankingCache struct {
	items *gocache.Cache
}

// NewRankingCache creates a cache whose entries expire after ttl. A ttl of
// zero or less keeps entries until Flush.
func NewRankingCache(ttl time.Duration) *RankingCache {
	if ttl <= 0 {
		return &RankingCache{items: gocache.New(gocache.NoExpiration, 0)}
	}
	return &RankingCache{items: gocache.New(ttl, 2*ttl)}
}

func cacheKey(snapshotID string, date model.Date) string {
	return snapshotID + "|" + date.String()
}

// Get returns the ranking computed for snapshotID on date.
func (c *RankingCache) Get(snapshotID string, date model.Date) (*ranking.Ranking, bool) {
	v, ok := c.items.Get(cacheKey(snapshotID, date))
	if !ok {
		return nil, false
	}
	r, ok := v.(*ranking.Ranking)
	return r, ok
}

// Set publishes r for snapshotID on date.
func (c *RankingCache) Set(snapshotID string, date model.Date, r *ranking.Ranking) {
	c.items.SetDefault(cacheKey(snapshotID, date), r)
}

// Flush drops every cached ranking.
func (c *RankingCache) Flush() {
	c.items.Flush()
}

// Len returns the number of cached rankings, including expired ones not yet
// cleaned up.
func (c *RankingCache) Len() int {
	return c.items.ItemCount()
}
