package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is valid
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product represents a product in the store catalog.
// Stock is tracked directly on the product; every change goes through
// AddStock/RemoveStock so the inventory movement log stays complete.
type Product struct {
	shared.BaseAggregateRoot
	Name         string          `json:"name"`
	Barcode      string          `json:"barcode"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	CurrentStock int             `json:"current_stock"`
	MinStock     int             `json:"min_stock"`
	Status       ProductStatus   `json:"status"`
}

// NewProduct creates a new active product
func NewProduct(name, barcode string, categoryID *uuid.UUID, salePrice, costPrice decimal.Decimal, initialStock, minStock int) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if salePrice.IsNegative() || costPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Prices cannot be negative")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Initial stock cannot be negative")
	}
	if minStock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Minimum stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Barcode:           barcode,
		CategoryID:        categoryID,
		SalePrice:         salePrice,
		CostPrice:         costPrice,
		CurrentStock:      initialStock,
		MinStock:          minStock,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information and prices
func (p *Product) Update(name, barcode string, categoryID *uuid.UUID, salePrice, costPrice decimal.Decimal, minStock int) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if salePrice.IsNegative() || costPrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Prices cannot be negative")
	}
	if minStock < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Minimum stock cannot be negative")
	}

	p.Name = name
	p.Barcode = barcode
	p.CategoryID = categoryID
	p.SalePrice = salePrice
	p.CostPrice = costPrice
	p.MinStock = minStock
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// AddStock increases stock (purchases, adjustments up)
func (p *Product) AddStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}

	p.CurrentStock += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// RemoveStock decreases stock (sales, adjustments down). Stock can never go negative.
func (p *Product) RemoveStock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if quantity > p.CurrentStock {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	}

	p.CurrentStock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	if p.IsLowStock() {
		p.AddDomainEvent(NewProductLowStockEvent(p))
	}

	return nil
}

// SetStock overwrites the stock level (inventory count corrections)
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Stock cannot be negative")
	}

	p.CurrentStock = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Deactivate soft deletes the product. Past sales keep their
// snapshotted product names.
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Product is already inactive")
	}

	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsLowStock returns true when stock is at or below the minimum level
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}

// HasStock returns true if at least the given quantity is available
func (p *Product) HasStock(quantity int) bool {
	return p.CurrentStock >= quantity
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name cannot exceed 200 characters")
	}
	return nil
}
