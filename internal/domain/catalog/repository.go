package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
)

// ProductFilter defines filtering options for product queries
type ProductFilter struct {
	shared.Filter
	CategoryID *uuid.UUID     // Filter by category
	Status     *ProductStatus // Filter by status
	LowStock   bool           // Only products at or below minimum stock
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByBarcode finds a product by barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindByIDs finds products by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds products with filtering
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// FindLowStock finds active products at or below their minimum stock
	FindLowStock(ctx context.Context) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete soft deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// CountLowStock counts active products at or below their minimum stock
	CountLowStock(ctx context.Context) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll finds all categories
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete soft deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
