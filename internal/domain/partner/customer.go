package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// IsValid checks if the status is valid
func (s CustomerStatus) IsValid() bool {
	return s == CustomerStatusActive || s == CustomerStatusInactive
}

// Customer represents a store customer.
// DebtTotal is the maintained aggregate of the customer's outstanding
// credit sales; it is never allowed to go negative.
type Customer struct {
	shared.BaseAggregateRoot
	Name        string          `json:"name"`
	Surname     string          `json:"surname"`
	Phone       string          `json:"phone"`
	Email       string          `json:"email"`
	Address     string          `json:"address"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	DebtTotal   decimal.Decimal `json:"debt_total"`
	Status      CustomerStatus  `json:"status"`
	Notes       string          `json:"notes"`
}

// NewCustomer creates a new active customer
func NewCustomer(name, surname, phone, email, address string, creditLimit decimal.Decimal) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if creditLimit.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Credit limit cannot be negative")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Surname:           surname,
		Phone:             phone,
		Email:             email,
		Address:           address,
		CreditLimit:       creditLimit,
		DebtTotal:         decimal.Zero,
		Status:            CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, surname, phone, email, address string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
	}

	c.Name = name
	c.Surname = surname
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetCreditLimit sets the customer's credit limit
func (c *Customer) SetCreditLimit(limit decimal.Decimal) error {
	if limit.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Credit limit cannot be negative")
	}

	c.CreditLimit = limit
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IncreaseDebt adds a deferred sale's total to the customer's debt
func (c *Customer) IncreaseDebt(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Debt increase must be positive")
	}
	if !c.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot sell on credit to an inactive customer")
	}

	oldDebt := c.DebtTotal
	c.DebtTotal = c.DebtTotal.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerDebtChangedEvent(c, oldDebt, c.DebtTotal))

	return nil
}

// SettleDebt subtracts a payment from the customer's debt.
// The result is floored at zero so a clamped overpayment can never
// leave the aggregate negative.
func (c *Customer) SettleDebt(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("VALIDATION_ERROR", "Settlement amount must be positive")
	}

	oldDebt := c.DebtTotal
	c.DebtTotal = decimal.Max(decimal.Zero, c.DebtTotal.Sub(amount))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCustomerDebtChangedEvent(c, oldDebt, c.DebtTotal))

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == CustomerStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already active")
	}

	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer. A customer with outstanding
// debt cannot be deactivated.
func (c *Customer) Deactivate() error {
	if c.Status == CustomerStatusInactive {
		return shared.NewDomainError("INVALID_STATE", "Customer is already inactive")
	}
	if c.HasDebt() {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a customer with outstanding debt")
	}

	c.Status = CustomerStatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// HasDebt returns true if the customer owes anything
func (c *Customer) HasDebt() bool {
	return c.DebtTotal.GreaterThan(decimal.Zero)
}

// AvailableCredit returns how much more the customer can buy on credit,
// floored at zero when debt already exceeds the limit.
func (c *Customer) AvailableCredit() decimal.Decimal {
	return decimal.Max(decimal.Zero, c.CreditLimit.Sub(c.DebtTotal))
}

// FullName returns the display name
func (c *Customer) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return strings.TrimSpace(c.Name + " " + c.Surname)
}

// Validation functions

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Customer name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("VALIDATION_ERROR", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid phone number format")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("VALIDATION_ERROR", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("VALIDATION_ERROR", "Invalid email format")
	}
	return nil
}
