package collections

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultSummaryTTL bounds how stale the cached portfolio summary can get
const DefaultSummaryTTL = 30 * time.Second

// DebtService is the read side of the collections context: portfolio
// summary, debtor list and per-customer statements. It never writes.
type DebtService struct {
	saleRepo     ledger.SaleRepository
	paymentRepo  ledger.PaymentRepository
	customerRepo partner.CustomerRepository
	cache        DebtSummaryCache
	summaryTTL   time.Duration
}

// NewDebtService creates a new DebtService
func NewDebtService(
	saleRepo ledger.SaleRepository,
	paymentRepo ledger.PaymentRepository,
	customerRepo partner.CustomerRepository,
	cache DebtSummaryCache,
) *DebtService {
	return &DebtService{
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		cache:        cache,
		summaryTTL:   DefaultSummaryTTL,
	}
}

// SetSummaryTTL overrides how long the cached portfolio summary is kept
func (s *DebtService) SetSummaryTTL(ttl time.Duration) {
	if ttl > 0 {
		s.summaryTTL = ttl
	}
}

// PortfolioSummary returns the store-wide debt totals. The summary is
// cached briefly; on any cache trouble it is recomputed from the ledger.
func (s *DebtService) PortfolioSummary(ctx context.Context) (*DebtSummary, error) {
	if s.cache != nil {
		if cached, found, err := s.cache.Get(ctx); err == nil && found {
			return cached, nil
		}
	}

	totalDebt, err := s.customerRepo.SumDebtTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to sum debt: %w", err)
	}
	debtorCount, err := s.customerRepo.CountDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count debtors: %w", err)
	}

	average := decimal.Zero
	if debtorCount > 0 {
		average = totalDebt.Div(decimal.NewFromInt(debtorCount)).Round(2)
	}

	summary := &DebtSummary{
		TotalDebt:   totalDebt,
		DebtorCount: debtorCount,
		AverageDebt: average,
		GeneratedAt: time.Now(),
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, summary, s.summaryTTL)
	}

	return summary, nil
}

// DebtorInfo is one row of the debtor list
type DebtorInfo struct {
	CustomerID      uuid.UUID       `json:"customer_id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	DebtTotal       decimal.Decimal `json:"debt_total"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	AvailableCredit decimal.Decimal `json:"available_credit"`
}

// ListDebtors returns customers with outstanding debt, largest debt first
func (s *DebtService) ListDebtors(ctx context.Context) ([]DebtorInfo, error) {
	debtors, err := s.customerRepo.FindDebtors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load debtors: %w", err)
	}

	infos := make([]DebtorInfo, 0, len(debtors))
	for _, d := range debtors {
		infos = append(infos, DebtorInfo{
			CustomerID:      d.ID,
			Name:            d.FullName(),
			Phone:           d.Phone,
			DebtTotal:       d.DebtTotal,
			CreditLimit:     d.CreditLimit,
			AvailableCredit: d.AvailableCredit(),
		})
	}
	return infos, nil
}

// CustomerStatement is the full debt position of one customer
type CustomerStatement struct {
	CustomerID      uuid.UUID        `json:"customer_id"`
	Name            string           `json:"name"`
	DebtTotal       decimal.Decimal  `json:"debt_total"`
	ComputedDebt    decimal.Decimal  `json:"computed_debt"` // sum of open sale pending amounts
	CreditLimit     decimal.Decimal  `json:"credit_limit"`
	AvailableCredit decimal.Decimal  `json:"available_credit"`
	OpenSales       []ledger.Sale    `json:"open_sales"` // oldest first
	Payments        []ledger.Payment `json:"payments"`   // newest first
}

// Statement builds the customer's debt statement: open sales oldest first,
// payment history and available credit. When the maintained debt aggregate
// disagrees with the sum of open sale pending amounts the read fails with
// a consistency error instead of serving numbers that cannot both be true.
func (s *DebtService) Statement(ctx context.Context, customerID uuid.UUID) (*CustomerStatement, error) {
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

	computed := decimal.Zero
	for _, sale := range openSales {
		computed = computed.Add(sale.PendingAmount)
	}
	if !computed.Equal(customer.DebtTotal) {
		return nil, shared.NewDomainError("CONSISTENCY_FAILURE",
			fmt.Sprintf("Customer debt %s disagrees with open sales total %s",
				customer.DebtTotal.StringFixed(2), computed.StringFixed(2)))
	}

	payments, err := s.paymentRepo.FindByCustomer(ctx, customerID, ledger.PaymentFilter{Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	return &CustomerStatement{
		CustomerID:      customer.ID,
		Name:            customer.FullName(),
		DebtTotal:       customer.DebtTotal,
		ComputedDebt:    computed,
		CreditLimit:     customer.CreditLimit,
		AvailableCredit: customer.AvailableCredit(),
		OpenSales:       openSales,
		Payments:        payments,
	}, nil
}
