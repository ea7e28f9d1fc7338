package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
// Line items live in a jsonb column; they are immutable snapshots,
// never queried row by row.
type SaleModel struct {
	AggregateModel
	SaleNumber    string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    *uuid.UUID         `gorm:"type:uuid;index"`
	CustomerName  string             `gorm:"type:varchar(200)"`
	Items         ledger.SaleItems   `gorm:"type:jsonb;default:'[]'"`
	Subtotal      decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Discount      decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Total         decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	PaidAmount    decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	PendingAmount decimal.Decimal    `gorm:"type:decimal(18,4);not null;index"`
	PaymentType   ledger.PaymentType `gorm:"type:varchar(20);not null;index"`
	Status        ledger.SaleStatus  `gorm:"type:varchar(20);not null;index"`
	Notes         string             `gorm:"type:text"`
	PaidAt        *time.Time
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale aggregate
func (m *SaleModel) ToDomain() *ledger.Sale {
	return &ledger.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SaleNumber:        m.SaleNumber,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Items:             m.Items,
		Subtotal:          m.Subtotal,
		Discount:          m.Discount,
		Total:             m.Total,
		PaidAmount:        m.PaidAmount,
		PendingAmount:     m.PendingAmount,
		PaymentType:       m.PaymentType,
		Status:            m.Status,
		Notes:             m.Notes,
		PaidAt:            m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Sale aggregate
func (m *SaleModel) FromDomain(s *ledger.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.SaleNumber = s.SaleNumber
	m.CustomerID = s.CustomerID
	m.CustomerName = s.CustomerName
	m.Items = s.Items
	m.Subtotal = s.Subtotal
	m.Discount = s.Discount
	m.Total = s.Total
	m.PaidAmount = s.PaidAmount
	m.PendingAmount = s.PendingAmount
	m.PaymentType = s.PaymentType
	m.Status = s.Status
	m.Notes = s.Notes
	m.PaidAt = s.PaidAt
}

// SaleModelFromDomain creates a new persistence model from a domain Sale
func SaleModelFromDomain(s *ledger.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// PaymentModel is the persistence model for the Payment aggregate root.
// Rows are append-only.
type PaymentModel struct {
	AggregateModel
	PaymentNumber string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    uuid.UUID            `gorm:"type:uuid;not null;index"`
	SaleID        *uuid.UUID           `gorm:"type:uuid;index"`
	Amount        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Method        ledger.PaymentMethod `gorm:"type:varchar(20);not null"`
	Note          string               `gorm:"type:text"`
	ReceivedAt    time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment aggregate
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		PaymentNumber:     m.PaymentNumber,
		CustomerID:        m.CustomerID,
		SaleID:            m.SaleID,
		Amount:            m.Amount,
		Method:            m.Method,
		Note:              m.Note,
		ReceivedAt:        m.ReceivedAt,
	}
}

// FromDomain populates the persistence model from a domain Payment aggregate
func (m *PaymentModel) FromDomain(p *ledger.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.PaymentNumber = p.PaymentNumber
	m.CustomerID = p.CustomerID
	m.SaleID = p.SaleID
	m.Amount = p.Amount
	m.Method = p.Method
	m.Note = p.Note
	m.ReceivedAt = p.ReceivedAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
