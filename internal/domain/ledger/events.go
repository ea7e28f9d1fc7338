package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleCreatedEvent is raised when a new sale is recorded
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	CustomerID    *uuid.UUID      `json:"customer_id,omitempty"`
	PaymentType   PaymentType     `json:"payment_type"`
	Total         decimal.Decimal `json:"total"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return "SaleCreated"
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCreated", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		CustomerID:      s.CustomerID,
		PaymentType:     s.PaymentType,
		Total:           s.Total,
		PendingAmount:   s.PendingAmount,
	}
}

// SaleSettledEvent is raised when a partial settlement is applied to a sale
type SaleSettledEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	AppliedAmount decimal.Decimal `json:"applied_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
}

// EventType returns the event type name
func (e *SaleSettledEvent) EventType() string {
	return "SaleSettled"
}

// NewSaleSettledEvent creates a new SaleSettledEvent
func NewSaleSettledEvent(s *Sale, paymentID uuid.UUID, applied decimal.Decimal) *SaleSettledEvent {
	return &SaleSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleSettled", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		PaymentID:       paymentID,
		AppliedAmount:   applied,
		PaidAmount:      s.PaidAmount,
		PendingAmount:   s.PendingAmount,
	}
}

// SaleCompletedEvent is raised when a sale is fully settled
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	PaymentID  uuid.UUID       `json:"payment_id"`
	Total      decimal.Decimal `json:"total"`
	PaidAt     time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return "SaleCompleted"
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(s *Sale, paymentID uuid.UUID) *SaleCompletedEvent {
	paidAt := time.Now()
	if s.PaidAt != nil {
		paidAt = *s.PaidAt
	}
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCompleted", "Sale", s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		PaymentID:       paymentID,
		Total:           s.Total,
		PaidAt:          paidAt,
	}
}

// PaymentRecordedEvent is raised when a customer payment is recorded
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID     uuid.UUID       `json:"payment_id"`
	PaymentNumber string          `json:"payment_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	SaleID        *uuid.UUID      `json:"sale_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(p *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentRecorded", "Payment", p.ID),
		PaymentID:       p.ID,
		PaymentNumber:   p.PaymentNumber,
		CustomerID:      p.CustomerID,
		SaleID:          p.SaleID,
		Amount:          p.Amount,
		Method:          p.Method,
	}
}
