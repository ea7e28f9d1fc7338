package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
)

// MovementFilter defines filtering options for movement queries
type MovementFilter struct {
	shared.Filter
	ProductID *uuid.UUID    // Filter by product
	Type      *MovementType // Filter by movement type
	FromDate  *time.Time    // Filter by occurrence date range start
	ToDate    *time.Time    // Filter by occurrence date range end
}

// MovementRepository defines the interface for stock movement persistence.
// Movements are append-only.
type MovementRepository interface {
	// FindByID finds a movement by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindAll finds movements with filtering, newest first
	FindAll(ctx context.Context, filter MovementFilter) ([]StockMovement, error)

	// FindByProduct finds movements for a product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter MovementFilter) ([]StockMovement, error)

	// Save inserts a new movement
	Save(ctx context.Context, movement *StockMovement) error

	// Count counts movements matching the filter
	Count(ctx context.Context, filter MovementFilter) (int64, error)
}
