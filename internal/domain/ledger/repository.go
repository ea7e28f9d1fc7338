package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleFilter defines filtering options for sale queries
type SaleFilter struct {
	shared.Filter
	CustomerID  *uuid.UUID   // Filter by customer
	Status      *SaleStatus  // Filter by status
	PaymentType *PaymentType // Filter by payment type
	FromDate    *time.Time   // Filter by creation date range start
	ToDate      *time.Time   // Filter by creation date range end
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindBySaleNumber finds a sale by its sequential number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds sales with filtering
	FindAll(ctx context.Context, filter SaleFilter) ([]Sale, error)

	// FindByCustomer finds sales for a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter SaleFilter) ([]Sale, error)

	// FindOpenByCustomer finds the customer's open sales ordered oldest first.
	// This ordering is what the FIFO allocator relies on.
	FindOpenByCustomer(ctx context.Context, customerID uuid.UUID) ([]Sale, error)

	// Save creates or updates a sale
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter SaleFilter) (int64, error)

	// SumPendingByCustomer calculates the customer's total outstanding amount
	SumPendingByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// FindByDateRange finds all sales created inside a date range, unpaginated.
	// Reporting aggregates over this set.
	FindByDateRange(ctx context.Context, from, to time.Time) ([]Sale, error)

	// SumTotalByDateRange sums sale totals inside a date range
	SumTotalByDateRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// CountByDateRange counts sales inside a date range
	CountByDateRange(ctx context.Context, from, to time.Time) (int64, error)

	// GenerateSaleNumber generates the next sequential sale number
	GenerateSaleNumber(ctx context.Context) (string, error)
}

// PaymentFilter defines filtering options for payment queries
type PaymentFilter struct {
	shared.Filter
	CustomerID *uuid.UUID     // Filter by customer
	SaleID     *uuid.UUID     // Filter by targeted sale
	Method     *PaymentMethod // Filter by payment method
	FromDate   *time.Time     // Filter by received date range start
	ToDate     *time.Time     // Filter by received date range end
}

// PaymentRepository defines the interface for payment persistence.
// Payments are append-only: there is no update or delete.
type PaymentRepository interface {
	// FindByID finds a payment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)

	// FindAll finds payments with filtering
	FindAll(ctx context.Context, filter PaymentFilter) ([]Payment, error)

	// FindByCustomer finds payments for a customer, newest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter PaymentFilter) ([]Payment, error)

	// Save inserts a new payment
	Save(ctx context.Context, payment *Payment) error

	// Count counts payments matching the filter
	Count(ctx context.Context, filter PaymentFilter) (int64, error)

	// SumByCustomer calculates the total amount paid by a customer
	SumByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error)

	// GeneratePaymentNumber generates the next sequential payment number
	GeneratePaymentNumber(ctx context.Context) (string, error)
}
