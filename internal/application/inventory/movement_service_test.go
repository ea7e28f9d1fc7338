package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/inventory"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMovementService() (*MovementService, *MockProductRepository, *MockMovementRepository) {
	productRepo := new(MockProductRepository)
	movementRepo := new(MockMovementRepository)
	txScope := NewNoOpTransactionScope(productRepo, movementRepo)
	return NewMovementService(productRepo, movementRepo, txScope), productRepo, movementRepo
}

func testProduct(t *testing.T, stock int) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Arroz 5kg", "", nil,
		decimal.NewFromFloat(25.00), decimal.NewFromFloat(20.00), stock, 2)
	require.NoError(t, err)
	return p
}

func TestMovementService_RecordMovement(t *testing.T) {
	ctx := context.Background()

	t.Run("entry adds stock", func(t *testing.T) {
		service, productRepo, movementRepo := newMovementService()
		product := testProduct(t, 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		movement, err := service.RecordMovement(ctx, RecordMovementRequest{
			ProductID: product.ID,
			Type:      inventory.MovementTypeEntry,
			Quantity:  10,
			Reason:    "Compra al proveedor",
		})
		require.NoError(t, err)

		assert.Equal(t, 15, product.CurrentStock)
		assert.Equal(t, 10, movement.Quantity)
		assert.Equal(t, 15, movement.ResultingStock)
		assert.Equal(t, inventory.SourceTypeManual, movement.SourceType)
		assert.Nil(t, movement.SourceID)
	})

	t.Run("exit removes stock", func(t *testing.T) {
		service, productRepo, movementRepo := newMovementService()
		product := testProduct(t, 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		movement, err := service.RecordMovement(ctx, RecordMovementRequest{
			ProductID: product.ID,
			Type:      inventory.MovementTypeExit,
			Quantity:  3,
			Reason:    "Producto vencido",
		})
		require.NoError(t, err)

		assert.Equal(t, 2, product.CurrentStock)
		assert.Equal(t, 2, movement.ResultingStock)
	})

	t.Run("exit cannot drive stock negative", func(t *testing.T) {
		service, productRepo, movementRepo := newMovementService()
		product := testProduct(t, 5)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.RecordMovement(ctx, RecordMovementRequest{
			ProductID: product.ID,
			Type:      inventory.MovementTypeExit,
			Quantity:  8,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Equal(t, 5, product.CurrentStock)
		movementRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("adjustment logs the correction size", func(t *testing.T) {
		service, productRepo, movementRepo := newMovementService()
		product := testProduct(t, 12)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)
		movementRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockMovement")).Return(nil)

		movement, err := service.RecordMovement(ctx, RecordMovementRequest{
			ProductID: product.ID,
			Type:      inventory.MovementTypeAdjustment,
			Quantity:  9, // physical count found 9
			Reason:    "Conteo físico",
		})
		require.NoError(t, err)

		assert.Equal(t, 9, product.CurrentStock)
		assert.Equal(t, 3, movement.Quantity)
		assert.Equal(t, 9, movement.ResultingStock)
	})

	t.Run("no-op adjustment is rejected", func(t *testing.T) {
		service, productRepo, _ := newMovementService()
		product := testProduct(t, 7)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.RecordMovement(ctx, RecordMovementRequest{
			ProductID: product.ID,
			Type:      inventory.MovementTypeAdjustment,
			Quantity:  7,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		service, productRepo, _ := newMovementService()
		id := uuid.New()
		productRepo.On("FindByID", ctx, id).Return(nil, nil)

		_, err := service.RecordMovement(ctx, RecordMovementRequest{
			ProductID: id,
			Type:      inventory.MovementTypeEntry,
			Quantity:  1,
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestMovementService_ProductHistory(t *testing.T) {
	ctx := context.Background()
	service, productRepo, movementRepo := newMovementService()

	product := testProduct(t, 5)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	movementRepo.On("FindByProduct", ctx, product.ID, mock.AnythingOfType("inventory.MovementFilter")).
		Return([]inventory.StockMovement{}, nil)

	movements, err := service.ProductHistory(ctx, product.ID, inventory.MovementFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Empty(t, movements)
}
