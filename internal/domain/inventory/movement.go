package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	// MovementTypeEntry represents stock coming in (restock, purchase)
	MovementTypeEntry MovementType = "ENTRY"
	// MovementTypeExit represents stock going out (sale, loss)
	MovementTypeExit MovementType = "EXIT"
	// MovementTypeAdjustment represents a count correction to an absolute level
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeAdjustment:
		return true
	}
	return false
}

// SourceType represents the document that caused a movement
type SourceType string

const (
	SourceTypeSale   SourceType = "SALE"
	SourceTypeManual SourceType = "MANUAL"
)

// IsValid returns true if the source type is valid
func (s SourceType) IsValid() bool {
	return s == SourceTypeSale || s == SourceTypeManual
}

// StockMovement is an immutable record of a stock change. Once created,
// movements are never modified - corrections happen with new movements.
type StockMovement struct {
	shared.BaseEntity
	ProductID      uuid.UUID    `json:"product_id"`
	ProductName    string       `json:"product_name"` // snapshot
	Type           MovementType `json:"type"`
	Quantity       int          `json:"quantity"` // always positive; direction comes from Type
	ResultingStock int          `json:"resulting_stock"`
	Reason         string       `json:"reason"`
	SourceType     SourceType   `json:"source_type"`
	SourceID       *uuid.UUID   `json:"source_id"` // sale ID when SourceType is SALE
	OccurredAt     time.Time    `json:"occurred_at"`
}

// NewStockMovement records a stock change
func NewStockMovement(
	productID uuid.UUID,
	productName string,
	movementType MovementType,
	quantity int,
	resultingStock int,
	reason string,
	sourceType SourceType,
	sourceID *uuid.UUID,
) (*StockMovement, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Movement type is not valid")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if resultingStock < 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Resulting stock cannot be negative")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Source type is not valid")
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		ProductName:    productName,
		Type:           movementType,
		Quantity:       quantity,
		ResultingStock: resultingStock,
		Reason:         reason,
		SourceType:     sourceType,
		SourceID:       sourceID,
		OccurredAt:     time.Now(),
	}, nil
}
