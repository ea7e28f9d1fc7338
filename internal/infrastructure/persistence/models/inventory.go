package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/inventory"
)

// StockMovementModel is the persistence model for StockMovement entities.
// Rows are append-only.
type StockMovementModel struct {
	BaseModel
	ProductID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	ProductName    string                 `gorm:"type:varchar(200);not null"`
	Type           inventory.MovementType `gorm:"type:varchar(20);not null;index"`
	Quantity       int                    `gorm:"not null"`
	ResultingStock int                    `gorm:"not null"`
	Reason         string                 `gorm:"type:varchar(500)"`
	SourceType     inventory.SourceType   `gorm:"type:varchar(20);not null;index"`
	SourceID       *uuid.UUID             `gorm:"type:uuid;index"`
	OccurredAt     time.Time              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockMovementModel) TableName() string {
	return "stock_movements"
}

// ToDomain converts the persistence model to a domain StockMovement
func (m *StockMovementModel) ToDomain() *inventory.StockMovement {
	return &inventory.StockMovement{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Type:           m.Type,
		Quantity:       m.Quantity,
		ResultingStock: m.ResultingStock,
		Reason:         m.Reason,
		SourceType:     m.SourceType,
		SourceID:       m.SourceID,
		OccurredAt:     m.OccurredAt,
	}
}

// FromDomain populates the persistence model from a domain StockMovement
func (m *StockMovementModel) FromDomain(mv *inventory.StockMovement) {
	m.FromDomainBaseEntity(mv.BaseEntity)
	m.ProductID = mv.ProductID
	m.ProductName = mv.ProductName
	m.Type = mv.Type
	m.Quantity = mv.Quantity
	m.ResultingStock = mv.ResultingStock
	m.Reason = mv.Reason
	m.SourceType = mv.SourceType
	m.SourceID = mv.SourceID
	m.OccurredAt = mv.OccurredAt
}

// StockMovementModelFromDomain creates a new persistence model from a domain StockMovement
func StockMovementModelFromDomain(mv *inventory.StockMovement) *StockMovementModel {
	m := &StockMovementModel{}
	m.FromDomain(mv)
	return m
}
