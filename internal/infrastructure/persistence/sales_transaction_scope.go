package persistence

import (
	"context"

	appsales "github.com/puestoweb/backend/internal/application/sales"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/inventory"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/puestoweb/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// GormSalesTransactionScope implements the sales TransactionScope using
// GORM transactions. The sale insert, the stock decrements, the movement
// records and the debt increase run on a single database transaction.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope.
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormSalesRepositories{tx: tx}
		return fn(repos)
	})
}

// gormSalesRepositories provides access to the checkout repositories
// within a transaction.
type gormSalesRepositories struct {
	tx *gorm.DB
}

// SaleRepo returns the sale repository scoped to the current transaction.
func (r *gormSalesRepositories) SaleRepo() ledger.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormSalesRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// CustomerRepo returns the customer repository scoped to the current transaction.
func (r *gormSalesRepositories) CustomerRepo() partner.CustomerRepository {
	return NewGormCustomerRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction.
func (r *gormSalesRepositories) MovementRepo() inventory.MovementRepository {
	return NewGormMovementRepository(r.tx)
}

// Ensure GormSalesTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormSalesTransactionScope)(nil)

// Ensure gormSalesRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormSalesRepositories)(nil)
