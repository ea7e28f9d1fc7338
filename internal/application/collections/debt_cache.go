package collections

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DebtSummary is the portfolio-wide debt projection. It is always derived
// from the stored aggregates; the cache only short-circuits repeated reads.
type DebtSummary struct {
	TotalDebt   decimal.Decimal `json:"total_debt"`
	DebtorCount int64           `json:"debtor_count"`
	AverageDebt decimal.Decimal `json:"average_debt"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// DebtSummaryCache caches the debt summary projection. Implementations
// must treat misses and errors as "recompute": the cache is never the
// source of truth.
type DebtSummaryCache interface {
	// Get returns the cached summary, or found=false on a miss
	Get(ctx context.Context) (summary *DebtSummary, found bool, err error)
	// Set stores the summary with a TTL
	Set(ctx context.Context, summary *DebtSummary, ttl time.Duration) error
	// Invalidate drops the cached summary
	Invalidate(ctx context.Context) error
}
