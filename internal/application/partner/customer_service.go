package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerService handles customer management use cases. Debt mutations
// happen in the sales and collections services, never here.
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name        string
	Surname     string
	Phone       string
	Email       string
	Address     string
	CreditLimit decimal.Decimal
	Notes       string
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(req.Name, req.Surname, req.Phone, req.Email, req.Address, req.CreditLimit)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	return customer, nil
}

// UpdateCustomerRequest represents a request to update customer contact data
type UpdateCustomerRequest struct {
	Name    string
	Surname string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// UpdateCustomer updates a customer's contact information
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*partner.Customer, error) {
	customer, err := s.getCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name, req.Surname, req.Phone, req.Email, req.Address); err != nil {
		return nil, err
	}
	customer.SetNotes(req.Notes)

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	return customer, nil
}

// SetCreditLimit updates the customer's credit limit
func (s *CustomerService) SetCreditLimit(ctx context.Context, id uuid.UUID, limit decimal.Decimal) (*partner.Customer, error) {
	customer, err := s.getCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.SetCreditLimit(limit); err != nil {
		return nil, err
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	return customer, nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return s.getCustomer(ctx, id)
}

// ListCustomers lists customers with filtering and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, filter partner.CustomerFilter) (*shared.Paginated[partner.Customer], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	page := shared.NewPaginated(customers, total, filter.Page, filter.PageSize)
	return &page, nil
}

// DeleteCustomer soft deletes a customer. Customers carrying debt cannot
// be deleted until the debt is settled.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.getCustomer(ctx, id)
	if err != nil {
		return err
	}

	if err := customer.Deactivate(); err != nil {
		return err
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	return nil
}

// ReactivateCustomer reactivates a soft-deleted customer
func (s *CustomerService) ReactivateCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.getCustomer(ctx, id)
	if err != nil {
		return err
	}

	if err := customer.Activate(); err != nil {
		return err
	}

	if err := s.customerRepo.SaveWithLock(ctx, customer); err != nil {
		return fmt.Errorf("failed to save customer: %w", err)
	}

	return nil
}

func (s *CustomerService) getCustomer(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return customer, nil
}
