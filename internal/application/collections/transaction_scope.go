package collections

import (
	"context"

	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to the repositories a
// payment touches. Everything executed inside Execute shares one database
// transaction: the payment insert, the sale updates and the customer debt
// decrement commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the collection repositories
// within a transaction. All repositories share the same underlying transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() ledger.SaleRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() ledger.PaymentRepository
	// CustomerRepo returns the customer repository scoped to the current transaction
	CustomerRepo() partner.CustomerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests built on plain mock repositories.
type NoOpTransactionScope struct {
	saleRepo     ledger.SaleRepository
	paymentRepo  ledger.PaymentRepository
	customerRepo partner.CustomerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	saleRepo ledger.SaleRepository,
	paymentRepo ledger.PaymentRepository,
	customerRepo partner.CustomerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() ledger.SaleRepository {
	return s.saleRepo
}

// PaymentRepo returns the payment repository.
func (s *NoOpTransactionScope) PaymentRepo() ledger.PaymentRepository {
	return s.paymentRepo
}

// CustomerRepo returns the customer repository.
func (s *NoOpTransactionScope) CustomerRepo() partner.CustomerRepository {
	return s.customerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
