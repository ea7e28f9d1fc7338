package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appsales "github.com/puestoweb/backend/internal/application/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/puestoweb/backend/internal/infrastructure/persistence/models"
)

func setupScopeTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SaleModel{},
		&models.ProductModel{},
		&models.CustomerModel{},
		&models.StockMovementModel{},
	)
	require.NoError(t, err)

	return db
}

func TestGormSalesTransactionScope_Commit(t *testing.T) {
	db := setupScopeTestDB(t)
	scope := NewGormSalesTransactionScope(db)
	ctx := context.Background()

	customerID := uuid.New()
	sale := deferredSale(t, customerID, "V-20260829-20001", 25.00)

	err := scope.Execute(ctx, func(repos appsales.TransactionalRepositories) error {
		return repos.SaleRepo().Save(ctx, sale)
	})
	require.NoError(t, err)

	found, err := NewGormSaleRepository(db).FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestGormSalesTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupScopeTestDB(t)
	scope := NewGormSalesTransactionScope(db)
	ctx := context.Background()

	sale := deferredSale(t, uuid.New(), "V-20260829-20002", 25.00)
	product := storedProduct(t, "Galletas", "", 10, 2)

	failure := errors.New("allocation failed")
	err := scope.Execute(ctx, func(repos appsales.TransactionalRepositories) error {
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		return failure
	})
	require.ErrorIs(t, err, failure)

	foundSale, err := NewGormSaleRepository(db).FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Nil(t, foundSale)

	foundProduct, err := NewGormProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, foundProduct)
}
