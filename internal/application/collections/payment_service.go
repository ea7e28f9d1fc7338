package collections

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/puestoweb/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentService handles recording customer debt payments and applying
// them across the customer's open sales.
type PaymentService struct {
	saleRepo     ledger.SaleRepository
	paymentRepo  ledger.PaymentRepository
	customerRepo partner.CustomerRepository
	settlement   *ledger.SettlementService
	txScope      TransactionScope
	cache        DebtSummaryCache
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	saleRepo ledger.SaleRepository,
	paymentRepo ledger.PaymentRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	cache DebtSummaryCache,
) *PaymentService {
	return &PaymentService{
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		settlement:   ledger.NewSettlementService(),
		txScope:      txScope,
		cache:        cache,
	}
}

// RegisterPaymentRequest represents a request to record a debt payment
type RegisterPaymentRequest struct {
	CustomerID uuid.UUID
	SaleID     *uuid.UUID // nil = general payment, distributed FIFO
	Amount     decimal.Decimal
	Method     ledger.PaymentMethod
	Note       string
}

// RegisterPaymentResult represents the outcome of a recorded payment
type RegisterPaymentResult struct {
	PaymentID      uuid.UUID                 `json:"payment_id"`
	PaymentNumber  string                    `json:"payment_number"`
	CustomerID     uuid.UUID                 `json:"customer_id"`
	Amount         decimal.Decimal           `json:"amount"`
	Allocations    []ledger.AllocationResult `json:"allocations"`
	SalesCompleted []uuid.UUID               `json:"sales_completed"`
	RemainingDebt  decimal.Decimal           `json:"remaining_debt"`
}

// RegisterPayment validates and records a payment, then applies it to the
// customer's open sales and decrements the debt aggregate. All writes run
// inside one transaction: a failure anywhere rolls everything back.
func (s *PaymentService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (*RegisterPaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if !req.Method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment method is not valid")
	}

	// Preconditions are checked against current state before any write
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	if req.Amount.GreaterThan(customer.DebtTotal) {
		return nil, shared.NewDomainError("INSUFFICIENT_DEBT",
			fmt.Sprintf("Payment amount %s exceeds outstanding debt %s",
				req.Amount.StringFixed(2), customer.DebtTotal.StringFixed(2)))
	}

	if req.SaleID != nil {
		sale, err := s.saleRepo.FindByID(ctx, *req.SaleID)
		if err != nil {
			return nil, fmt.Errorf("failed to get target sale: %w", err)
		}
		if sale == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Target sale not found")
		}
		if sale.CustomerID == nil || *sale.CustomerID != req.CustomerID {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Target sale does not belong to the customer")
		}
		if !sale.IsOpen() {
			return nil, shared.NewDomainError("INVALID_STATE", "Target sale has no outstanding balance")
		}
	}

	var result *RegisterPaymentResult
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Re-read the customer inside the transaction so the debt decrement
		// and the version check work on current state
		txCustomer, err := repos.CustomerRepo().FindByID(ctx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to get customer: %w", err)
		}
		if txCustomer == nil {
			return shared.NewDomainError("NOT_FOUND", "Customer not found")
		}

		number, err := repos.PaymentRepo().GeneratePaymentNumber(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate payment number: %w", err)
		}

		payment, err := ledger.NewPayment(number, req.CustomerID, req.SaleID,
			valueobject.NewMoneyPEN(req.Amount), req.Method, req.Note)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return fmt.Errorf("failed to save payment: %w", err)
		}

		openSales, err := repos.SaleRepo().FindOpenByCustomer(ctx, req.CustomerID)
		if err != nil {
			return fmt.Errorf("failed to load open sales: %w", err)
		}
		salePtrs := make([]*ledger.Sale, len(openSales))
		for i := range openSales {
			salePtrs[i] = &openSales[i]
		}

		settled, err := s.settlement.Settle(payment, salePtrs)
		if err != nil {
			return err
		}
		for _, sale := range settled.UpdatedSales {
			if err := repos.SaleRepo().SaveWithLock(ctx, sale); err != nil {
				return fmt.Errorf("failed to save sale %s: %w", sale.SaleNumber, err)
			}
		}

		if err := txCustomer.SettleDebt(req.Amount); err != nil {
			return err
		}
		if err := repos.CustomerRepo().SaveWithLock(ctx, txCustomer); err != nil {
			return fmt.Errorf("failed to save customer: %w", err)
		}

		result = &RegisterPaymentResult{
			PaymentID:      payment.ID,
			PaymentNumber:  payment.PaymentNumber,
			CustomerID:     req.CustomerID,
			Amount:         req.Amount,
			Allocations:    settled.Allocations,
			SalesCompleted: settled.SalesCompleted,
			RemainingDebt:  txCustomer.DebtTotal,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		// Stale summaries are tolerable; a failed invalidation is not fatal
		_ = s.cache.Invalidate(ctx)
	}

	return result, nil
}

// PreviewAllocation calculates how a payment would be distributed across
// the customer's open sales without recording anything.
func (s *PaymentService) PreviewAllocation(ctx context.Context, customerID uuid.UUID, saleID *uuid.UUID, amount decimal.Decimal) (*ledger.AllocationPlan, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	openSales, err := s.saleRepo.FindOpenByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open sales: %w", err)
	}

	return s.settlement.Preview(valueobject.NewMoneyPEN(amount), saleID, openSales)
}

// ListPayments lists payments for a customer, newest first
func (s *PaymentService) ListPayments(ctx context.Context, customerID uuid.UUID, filter ledger.PaymentFilter) ([]ledger.Payment, error) {
	return s.paymentRepo.FindByCustomer(ctx, customerID, filter)
}
