package ledger

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/puestoweb/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the settlement status of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"   // Outstanding balance > 0
	SaleStatusCompleted SaleStatus = "COMPLETED" // Fully settled, pending = 0
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	return s == SaleStatusPending || s == SaleStatusCompleted
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanApplySettlement returns true if payments can still be applied
func (s SaleStatus) CanApplySettlement() bool {
	return s == SaleStatusPending
}

// PaymentType represents how the sale is paid for
type PaymentType string

const (
	PaymentTypeImmediate PaymentType = "PAID"     // Settled in full at checkout
	PaymentTypeDeferred  PaymentType = "DEFERRED" // On credit, settled later
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeImmediate || t == PaymentTypeDeferred
}

// SaleItem represents one line of a sale.
// The product name is snapshotted at sale time so history survives
// product renames and deactivation.
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleItems is a slice of SaleItem that implements GORM Scanner/Valuer for JSONB storage
type SaleItems []SaleItem

// Value implements driver.Valuer interface for GORM to store as JSONB
func (s SaleItems) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (s *SaleItems) Scan(value interface{}) error {
	if value == nil {
		*s = SaleItems{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan SaleItems: unsupported type")
	}

	if len(bytes) == 0 {
		*s = SaleItems{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// NewSaleItem creates a sale line for the given product snapshot
func NewSaleItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	return &SaleItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}, nil
}

// Sale represents a sale aggregate root.
// For deferred sales it doubles as the open invoice that payments settle.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber    string          `json:"sale_number"`
	CustomerID    *uuid.UUID      `json:"customer_id"`   // nil = walk-in customer
	CustomerName  string          `json:"customer_name"` // snapshot for display
	Items         SaleItems       `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	PaymentType   PaymentType     `json:"payment_type"`
	Status        SaleStatus      `json:"status"`
	Notes         string          `json:"notes"`
	PaidAt        *time.Time      `json:"paid_at"` // When fully settled
}

// NewSale creates a new sale.
// Immediate sales start fully paid and completed. Deferred sales start
// pending with the whole total outstanding and require a customer.
func NewSale(
	saleNumber string,
	customerID *uuid.UUID,
	customerName string,
	items []SaleItem,
	discount decimal.Decimal,
	paymentType PaymentType,
	notes string,
) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sale number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sale must have at least one item")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment type is not valid")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount cannot be negative")
	}
	if paymentType == PaymentTypeDeferred && (customerID == nil || *customerID == uuid.Nil) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Deferred sale requires a customer")
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal)
	}
	subtotal = subtotal.Round(2)

	if discount.GreaterThan(subtotal) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount cannot exceed subtotal")
	}
	total := subtotal.Sub(discount).Round(2)

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Items:             items,
		Subtotal:          subtotal,
		Discount:          discount,
		Total:             total,
		PaymentType:       paymentType,
		Notes:             notes,
	}

	if paymentType == PaymentTypeImmediate {
		now := time.Now()
		sale.PaidAmount = total
		sale.PendingAmount = decimal.Zero
		sale.Status = SaleStatusCompleted
		sale.PaidAt = &now
	} else {
		sale.PaidAmount = decimal.Zero
		sale.PendingAmount = total
		sale.Status = SaleStatusPending
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// ApplySettlement applies part of a payment to the sale and returns the
// amount actually absorbed. Amounts above the pending balance are clamped,
// never rejected: the caller decides what to do with the remainder.
func (s *Sale) ApplySettlement(amount valueobject.Money, paymentID uuid.UUID) (decimal.Decimal, error) {
	if !s.Status.CanApplySettlement() {
		return decimal.Zero, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot settle sale in %s status", s.Status))
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "Settlement amount must be positive")
	}
	if paymentID == uuid.Nil {
		return decimal.Zero, shared.NewDomainError("VALIDATION_ERROR", "Payment ID cannot be empty")
	}

	applied := decimal.Min(amount.Amount(), s.PendingAmount)

	s.PaidAmount = s.PaidAmount.Add(applied)
	s.PendingAmount = s.Total.Sub(s.PaidAmount)

	if s.PendingAmount.IsZero() {
		now := time.Now()
		s.Status = SaleStatusCompleted
		s.PaidAt = &now
		s.AddDomainEvent(NewSaleCompletedEvent(s, paymentID))
	} else {
		s.AddDomainEvent(NewSaleSettledEvent(s, paymentID, applied))
	}

	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return applied, nil
}

// SetNotes sets the free-form notes
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// IsDeferred returns true for credit sales
func (s *Sale) IsDeferred() bool {
	return s.PaymentType == PaymentTypeDeferred
}

// IsOpen returns true while the sale still has an outstanding balance
func (s *Sale) IsOpen() bool {
	return s.Status == SaleStatusPending && s.PendingAmount.GreaterThan(decimal.Zero)
}

// GetTotalMoney returns the total as Money
func (s *Sale) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(s.Total)
}

// GetPaidAmountMoney returns the paid amount as Money
func (s *Sale) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(s.PaidAmount)
}

// GetPendingAmountMoney returns the outstanding amount as Money
func (s *Sale) GetPendingAmountMoney() valueobject.Money {
	return valueobject.NewMoneyPEN(s.PendingAmount)
}

// ItemCount returns the number of lines in the sale
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// TotalQuantity returns the sum of all line quantities
func (s *Sale) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}
