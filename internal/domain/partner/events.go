package partner

import (
	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerCreatedEvent is raised when a new customer is registered
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone,omitempty"`
}

// EventType returns the event type name
func (e *CustomerCreatedEvent) EventType() string {
	return "CustomerCreated"
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerCreated", "Customer", c.ID),
		CustomerID:      c.ID,
		Name:            c.FullName(),
		Phone:           c.Phone,
	}
}

// CustomerDebtChangedEvent is raised whenever the customer's debt aggregate moves
type CustomerDebtChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID       `json:"customer_id"`
	OldDebt    decimal.Decimal `json:"old_debt"`
	NewDebt    decimal.Decimal `json:"new_debt"`
}

// EventType returns the event type name
func (e *CustomerDebtChangedEvent) EventType() string {
	return "CustomerDebtChanged"
}

// NewCustomerDebtChangedEvent creates a new CustomerDebtChangedEvent
func NewCustomerDebtChangedEvent(c *Customer, oldDebt, newDebt decimal.Decimal) *CustomerDebtChangedEvent {
	return &CustomerDebtChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("CustomerDebtChanged", "Customer", c.ID),
		CustomerID:      c.ID,
		OldDebt:         oldDebt,
		NewDebt:         newDebt,
	}
}
