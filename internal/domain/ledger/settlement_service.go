package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/puestoweb/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SettlementService is a domain service that applies a recorded payment
// across a customer's open sales. It ensures that:
// 1. Only open sales belonging to the paying customer are touched
// 2. Per-sale applications never exceed the sale's pending amount
// 3. Targeted payments are clamped, general payments follow FIFO order
type SettlementService struct {
	fifo *FIFOAllocationStrategy
}

// NewSettlementService creates a new settlement service
func NewSettlementService() *SettlementService {
	return &SettlementService{
		fifo: NewFIFOAllocationStrategy(),
	}
}

// SettlementResult represents the outcome of applying a payment
type SettlementResult struct {
	Payment        *Payment           // The payment that was applied
	UpdatedSales   []*Sale            // Sales that absorbed part of the payment
	Allocations    []AllocationResult // Per-sale applied amounts
	TotalApplied   decimal.Decimal    // Sum of applied amounts
	Remainder      decimal.Decimal    // Amount that found no open sale
	SalesCompleted []uuid.UUID        // Sales fully settled by this payment
}

// Settle applies a payment to the given open sales. For targeted payments
// the whole amount goes to the target sale, clamped to its pending balance.
// For general payments the amount is distributed FIFO, oldest sale first.
// The sales slice must already be scoped to the paying customer.
func (s *SettlementService) Settle(payment *Payment, openSales []*Sale) (*SettlementResult, error) {
	if payment == nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment cannot be nil")
	}

	targets := make([]AllocationTarget, 0, len(openSales))
	saleMap := make(map[uuid.UUID]*Sale, len(openSales))
	for _, sale := range openSales {
		if sale.CustomerID == nil || *sale.CustomerID != payment.CustomerID {
			return nil, shared.NewDomainError("VALIDATION_ERROR",
				fmt.Sprintf("Sale %s does not belong to the paying customer", sale.SaleNumber))
		}
		if !sale.IsOpen() {
			continue
		}
		targets = append(targets, AllocationTarget{
			ID:            sale.ID,
			Number:        sale.SaleNumber,
			PendingAmount: sale.PendingAmount,
			CreatedAt:     sale.CreatedAt,
		})
		saleMap[sale.ID] = sale
	}

	var strategy AllocationStrategy = s.fifo
	if payment.IsTargeted() {
		strategy = NewTargetedAllocationStrategy(*payment.SaleID)
	}

	plan, err := strategy.Allocate(payment.GetAmountMoney(), targets)
	if err != nil {
		return nil, err
	}

	result := &SettlementResult{
		Payment:        payment,
		UpdatedSales:   make([]*Sale, 0, len(plan.Allocations)),
		Allocations:    plan.Allocations,
		TotalApplied:   plan.TotalAllocated,
		Remainder:      plan.RemainingAmount,
		SalesCompleted: make([]uuid.UUID, 0),
	}

	for _, alloc := range plan.Allocations {
		sale, exists := saleMap[alloc.TargetID]
		if !exists {
			continue
		}
		applied, err := sale.ApplySettlement(valueobject.NewMoneyPEN(alloc.Amount), payment.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to settle sale %s: %w", sale.SaleNumber, err)
		}
		if !applied.Equal(alloc.Amount) {
			return nil, shared.NewDomainError("CONSISTENCY_FAILURE",
				fmt.Sprintf("Planned %s but applied %s to sale %s", alloc.Amount, applied, sale.SaleNumber))
		}
		result.UpdatedSales = append(result.UpdatedSales, sale)
		if sale.Status == SaleStatusCompleted {
			result.SalesCompleted = append(result.SalesCompleted, sale.ID)
		}
	}

	return result, nil
}

// Preview calculates how a payment amount would be distributed without
// mutating any aggregate.
func (s *SettlementService) Preview(amount valueobject.Money, saleID *uuid.UUID, openSales []Sale) (*AllocationPlan, error) {
	targets := make([]AllocationTarget, 0, len(openSales))
	for _, sale := range openSales {
		if sale.IsOpen() {
			targets = append(targets, AllocationTarget{
				ID:            sale.ID,
				Number:        sale.SaleNumber,
				PendingAmount: sale.PendingAmount,
				CreatedAt:     sale.CreatedAt,
			})
		}
	}

	if saleID != nil {
		return NewTargetedAllocationStrategy(*saleID).Allocate(amount, targets)
	}
	return s.fifo.Allocate(amount, targets)
}
