package ledger

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/puestoweb/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// AllocationTarget represents an open sale a payment can be applied to
type AllocationTarget struct {
	ID            uuid.UUID       // Sale ID
	Number        string          // Sale number for display purposes
	PendingAmount decimal.Decimal // Amount still outstanding
	CreatedAt     time.Time       // Creation date for FIFO ordering
}

// AllocationResult represents the result of a single allocation
type AllocationResult struct {
	TargetID     uuid.UUID       `json:"target_id"`
	TargetNumber string          `json:"target_number"`
	Amount       decimal.Decimal `json:"amount"`
}

// AllocationPlan represents the complete result of an allocation strategy.
// It is a pure computation over snapshots: nothing is mutated until the
// plan is executed against the aggregates.
type AllocationPlan struct {
	Allocations      []AllocationResult // List of allocations to make
	TotalAllocated   decimal.Decimal    // Total amount allocated
	RemainingAmount  decimal.Decimal    // Amount left unallocated
	FullyAllocated   bool               // True if all amount was allocated
	TargetsSettled   []uuid.UUID        // Sales that will be fully settled
	TargetsPartially []uuid.UUID        // Sales that will be partially settled
}

// AllocationStrategy decides how a payment amount is distributed across open sales
type AllocationStrategy interface {
	Allocate(amount valueobject.Money, targets []AllocationTarget) (*AllocationPlan, error)
}

// FIFOAllocationStrategy allocates to the oldest open sales first,
// ordered by creation date ascending.
type FIFOAllocationStrategy struct{}

// NewFIFOAllocationStrategy creates a new FIFO allocation strategy
func NewFIFOAllocationStrategy() *FIFOAllocationStrategy {
	return &FIFOAllocationStrategy{}
}

// Allocate allocates the amount to targets oldest first
func (s *FIFOAllocationStrategy) Allocate(amount valueobject.Money, targets []AllocationTarget) (*AllocationPlan, error) {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Allocation amount must be positive")
	}
	if len(targets) == 0 {
		return &AllocationPlan{
			Allocations:      make([]AllocationResult, 0),
			TotalAllocated:   decimal.Zero,
			RemainingAmount:  amount.Amount(),
			FullyAllocated:   false,
			TargetsSettled:   make([]uuid.UUID, 0),
			TargetsPartially: make([]uuid.UUID, 0),
		}, nil
	}

	sorted := make([]AllocationTarget, len(targets))
	copy(sorted, targets)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	allocations := make([]AllocationResult, 0)
	settled := make([]uuid.UUID, 0)
	partially := make([]uuid.UUID, 0)
	remaining := amount.Amount()
	totalAllocated := decimal.Zero

	for _, target := range sorted {
		if remaining.IsZero() {
			break
		}
		if target.PendingAmount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		allocAmount := decimal.Min(remaining, target.PendingAmount)

		allocations = append(allocations, AllocationResult{
			TargetID:     target.ID,
			TargetNumber: target.Number,
			Amount:       allocAmount,
		})

		totalAllocated = totalAllocated.Add(allocAmount)
		remaining = remaining.Sub(allocAmount)

		if allocAmount.GreaterThanOrEqual(target.PendingAmount) {
			settled = append(settled, target.ID)
		} else {
			partially = append(partially, target.ID)
		}
	}

	return &AllocationPlan{
		Allocations:      allocations,
		TotalAllocated:   totalAllocated,
		RemainingAmount:  remaining,
		FullyAllocated:   remaining.IsZero(),
		TargetsSettled:   settled,
		TargetsPartially: partially,
	}, nil
}

// AllocateToSales builds allocation targets from open sales and runs the strategy
func (s *FIFOAllocationStrategy) AllocateToSales(amount valueobject.Money, sales []Sale) (*AllocationPlan, error) {
	targets := make([]AllocationTarget, 0, len(sales))
	for _, sale := range sales {
		if sale.IsOpen() {
			targets = append(targets, AllocationTarget{
				ID:            sale.ID,
				Number:        sale.SaleNumber,
				PendingAmount: sale.PendingAmount,
				CreatedAt:     sale.CreatedAt,
			})
		}
	}
	return s.Allocate(amount, targets)
}

// TargetedAllocationStrategy allocates the whole amount to a single sale,
// clamped to its pending balance.
type TargetedAllocationStrategy struct {
	saleID uuid.UUID
}

// NewTargetedAllocationStrategy creates a strategy for a specific sale
func NewTargetedAllocationStrategy(saleID uuid.UUID) *TargetedAllocationStrategy {
	return &TargetedAllocationStrategy{saleID: saleID}
}

// Allocate allocates to the configured sale only, clamping to its pending amount
func (s *TargetedAllocationStrategy) Allocate(amount valueobject.Money, targets []AllocationTarget) (*AllocationPlan, error) {
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Allocation amount must be positive")
	}

	var target *AllocationTarget
	for i := range targets {
		if targets[i].ID == s.saleID {
			target = &targets[i]
			break
		}
	}
	if target == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Target sale not found among open sales")
	}
	if target.PendingAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_STATE", "Target sale has no outstanding balance")
	}

	allocAmount := decimal.Min(amount.Amount(), target.PendingAmount)
	remaining := amount.Amount().Sub(allocAmount)

	plan := &AllocationPlan{
		Allocations: []AllocationResult{{
			TargetID:     target.ID,
			TargetNumber: target.Number,
			Amount:       allocAmount,
		}},
		TotalAllocated:   allocAmount,
		RemainingAmount:  remaining,
		FullyAllocated:   remaining.IsZero(),
		TargetsSettled:   make([]uuid.UUID, 0),
		TargetsPartially: make([]uuid.UUID, 0),
	}
	if allocAmount.GreaterThanOrEqual(target.PendingAmount) {
		plan.TargetsSettled = append(plan.TargetsSettled, target.ID)
	} else {
		plan.TargetsPartially = append(plan.TargetsPartially, target.ID)
	}

	return plan, nil
}
