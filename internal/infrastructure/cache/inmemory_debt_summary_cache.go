package cache

import (
	"context"
	"sync"
	"time"

	"github.com/puestoweb/backend/internal/application/collections"
)

// InMemoryDebtSummaryCache implements collections.DebtSummaryCache with a
// mutex-guarded value. Suitable for single-instance deployments and tests.
type InMemoryDebtSummaryCache struct {
	mu        sync.RWMutex
	summary   *collections.DebtSummary
	expiresAt time.Time
}

// NewInMemoryDebtSummaryCache creates a new in-memory debt summary cache
func NewInMemoryDebtSummaryCache() *InMemoryDebtSummaryCache {
	return &InMemoryDebtSummaryCache{}
}

// Get returns the cached summary, or found=false on a miss or expiry
func (c *InMemoryDebtSummaryCache) Get(_ context.Context) (*collections.DebtSummary, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.summary == nil || time.Now().After(c.expiresAt) {
		return nil, false, nil
	}

	copied := *c.summary
	return &copied, true, nil
}

// Set stores the summary with a TTL
func (c *InMemoryDebtSummaryCache) Set(_ context.Context, summary *collections.DebtSummary, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *summary
	c.summary = &copied
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// Invalidate drops the cached summary
func (c *InMemoryDebtSummaryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.summary = nil
	return nil
}

var _ collections.DebtSummaryCache = (*InMemoryDebtSummaryCache)(nil)
