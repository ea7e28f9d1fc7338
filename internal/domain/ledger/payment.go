package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/puestoweb/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodWallet   PaymentMethod = "WALLET" // Mobile wallet (yape/plin)
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodWallet:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// AllPaymentMethods returns all valid payment methods
func AllPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentMethodCash,
		PaymentMethodCard,
		PaymentMethodTransfer,
		PaymentMethodWallet,
	}
}

// Payment represents a debt payment received from a customer.
// Payments are append-only: once recorded they are never mutated,
// corrections happen through new entries.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentNumber string          `json:"payment_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	SaleID        *uuid.UUID      `json:"sale_id"` // nil = general payment, FIFO across open sales
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Note          string          `json:"note"`
	ReceivedAt    time.Time       `json:"received_at"`
}

// NewPayment records a new customer payment
func NewPayment(
	paymentNumber string,
	customerID uuid.UUID,
	saleID *uuid.UUID,
	amount valueobject.Money,
	method PaymentMethod,
	note string,
) (*Payment, error) {
	if paymentNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Customer ID cannot be empty")
	}
	if saleID != nil && *saleID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Target sale ID cannot be empty")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment method is not valid")
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentNumber:     paymentNumber,
		CustomerID:        customerID,
		SaleID:            saleID,
		Amount:            amount.Amount().Round(2),
		Method:            method,
		Note:              note,
		ReceivedAt:        time.Now(),
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// IsTargeted returns true if the payment was made against a specific sale
func (p *Payment) IsTargeted() bool {
	return p.SaleID != nil
}

// GetAmountMoney returns the amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(p.Amount)
}
