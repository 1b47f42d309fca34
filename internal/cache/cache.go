// Package cache keeps recent analysis reports in memory so clients can
// re-fetch them by id without re-uploading the file.
package cache

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/rapihdata/rapih/internal/domain"
)

const (
	defaultCapacity = 256
	defaultTTL      = 30 * time.Minute
)

// ReportCache is a bounded, expiring store of analysis results.
type ReportCache struct {
	lru *expirable.LRU[uuid.UUID, domain.AnalysisResult]
}

// New creates a cache. Non-positive capacity or TTL fall back to the
// defaults (256 entries, 30 minutes).
func New(capacity int, ttl time.Duration) *ReportCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ReportCache{
		lru: expirable.NewLRU[uuid.UUID, domain.AnalysisResult](capacity, nil, ttl),
	}
}

// Put stores a report under its own id.
func (c *ReportCache) Put(result domain.AnalysisResult) {
	c.lru.Add(result.ID, result)
}

// Get returns the report and whether it is still cached.
func (c *ReportCache) Get(id uuid.UUID) (domain.AnalysisResult, bool) {
	return c.lru.Get(id)
}

// Len reports the number of live entries.
func (c *ReportCache) Len() int {
	return c.lru.Len()
}
