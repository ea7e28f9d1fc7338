package catalog

import (
	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
)

// ProductCreatedEvent is raised when a product is added to the catalog
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// EventType returns the event type name
func (e *ProductCreatedEvent) EventType() string {
	return "ProductCreated"
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProductCreated", "Product", p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
	}
}

// ProductLowStockEvent is raised when stock drops to or below the minimum level
type ProductLowStockEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	Name         string    `json:"name"`
	CurrentStock int       `json:"current_stock"`
	MinStock     int       `json:"min_stock"`
}

// EventType returns the event type name
func (e *ProductLowStockEvent) EventType() string {
	return "ProductLowStock"
}

// NewProductLowStockEvent creates a new ProductLowStockEvent
func NewProductLowStockEvent(p *Product) *ProductLowStockEvent {
	return &ProductLowStockEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProductLowStock", "Product", p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
		CurrentStock:    p.CurrentStock,
		MinStock:        p.MinStock,
	}
}
