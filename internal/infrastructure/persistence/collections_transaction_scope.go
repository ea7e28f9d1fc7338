package persistence

import (
	"context"

	appcol "github.com/puestoweb/backend/internal/application/collections"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormCollectionsTransactionScope implements the collections TransactionScope
// using GORM transactions. The payment insert, the sale settlements and the
// customer debt decrement run on a single database transaction.
type GormCollectionsTransactionScope struct {
	db *gorm.DB
}

// NewGormCollectionsTransactionScope creates a new GormCollectionsTransactionScope.
func NewGormCollectionsTransactionScope(db *gorm.DB) *GormCollectionsTransactionScope {
	return &GormCollectionsTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormCollectionsTransactionScope) Execute(ctx context.Context, fn func(repos appcol.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormCollectionsRepositories{tx: tx}
		return fn(repos)
	})
}

// gormCollectionsRepositories provides access to the collection repositories
// within a transaction.
type gormCollectionsRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormCollectionsRepositories) SaleRepo() ledger.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction.
func (r *gormCollectionsRepositories) PaymentRepo() ledger.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormCollectionsRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// Ensure GormCollectionsTransactionScope implements TransactionScope
var _ appcol.TransactionScope = (*GormCollectionsTransactionScope)(nil)

// Ensure gormCollectionsRepositories implements TransactionalRepositories
var _ appcol.TransactionalRepositories = (*gormCollectionsRepositories)(nil)
