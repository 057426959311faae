package weathercache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/yanqian/skyfetch/internal/domain/weather"
	"github.com/yanqian/skyfetch/pkg/util"
)

const defaultMemorySize = 256

type cachedReport struct {
	report    weather.Report
	expiresAt time.Time
}

// MemoryCache is a bounded in-process report cache for single instance deployments.
type MemoryCache struct {
	lru *expirable.LRU[string, cachedReport]
	now util.Clock
}

// NewMemoryCache keeps at most size reports; maxTTL caps every entry lifetime.
func NewMemoryCache(size int, maxTTL time.Duration) *MemoryCache {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, cachedReport](size, nil, maxTTL),
		now: util.NowUTC,
	}
}

// Get implements weather.Cache.
func (c *MemoryCache) Get(_ context.Context, key string) (weather.Report, bool, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return weather.Report{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return weather.Report{}, false, nil
	}
	return entry.report, true, nil
}

// Set implements weather.Cache.
func (c *MemoryCache) Set(_ context.Context, key string, report weather.Report, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.lru.Add(key, cachedReport{report: report, expiresAt: exp})
	return nil
}

// Len reports the number of cached reports.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

var _ weather.Cache = (*MemoryCache)(nil)
