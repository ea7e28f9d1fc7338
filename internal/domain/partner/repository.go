package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerFilter defines filtering options for customer queries
type CustomerFilter struct {
	shared.Filter
	Status  *CustomerStatus // Filter by status
	Debtors bool            // Only customers with outstanding debt
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll finds customers with filtering
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, error)

	// FindDebtors finds customers with outstanding debt ordered by debt descending
	FindDebtors(ctx context.Context) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, customer *Customer) error

	// Delete soft deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers matching the filter
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// CountDebtors counts customers with outstanding debt
	CountDebtors(ctx context.Context) (int64, error)

	// SumDebtTotal calculates the portfolio-wide outstanding debt
	SumDebtTotal(ctx context.Context) (decimal.Decimal, error)
}
