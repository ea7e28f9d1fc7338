package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductService() (*ProductService, *MockProductRepository, *MockCategoryRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	return NewProductService(productRepo, categoryRepo), productRepo, categoryRepo
}

func existingProduct(t *testing.T) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Gaseosa 500ml", "7750001234", nil,
		decimal.NewFromFloat(3.50), decimal.NewFromFloat(2.00), 10, 3)
	require.NoError(t, err)
	return p
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("creates product", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		productRepo.On("FindByBarcode", ctx, "7750001234").Return(nil, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		product, err := service.CreateProduct(ctx, CreateProductRequest{
			Name:         "Gaseosa 500ml",
			Barcode:      "7750001234",
			SalePrice:    decimal.NewFromFloat(3.50),
			CostPrice:    decimal.NewFromFloat(2.00),
			InitialStock: 10,
			MinStock:     3,
		})
		require.NoError(t, err)
		assert.Equal(t, "Gaseosa 500ml", product.Name)
		assert.Equal(t, 10, product.CurrentStock)
		assert.True(t, product.IsActive())
	})

	t.Run("rejects duplicate barcode", func(t *testing.T) {
		service, productRepo, _ := newProductService()
		productRepo.On("FindByBarcode", ctx, "7750001234").Return(existingProduct(t), nil)

		_, err := service.CreateProduct(ctx, CreateProductRequest{
			Name:      "Otro producto",
			Barcode:   "7750001234",
			SalePrice: decimal.NewFromFloat(1.00),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		service, _, categoryRepo := newProductService()
		categoryID := uuid.New()
		categoryRepo.On("FindByID", ctx, categoryID).Return(nil, nil)

		_, err := service.CreateProduct(ctx, CreateProductRequest{
			Name:       "Producto",
			CategoryID: &categoryID,
			SalePrice:  decimal.NewFromFloat(1.00),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _ := newProductService()

	product := existingProduct(t)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product).Return(nil)

	updated, err := service.UpdateProduct(ctx, product.ID, UpdateProductRequest{
		Name:      "Gaseosa 500ml (nueva receta)",
		Barcode:   product.Barcode,
		SalePrice: decimal.NewFromFloat(3.80),
		CostPrice: decimal.NewFromFloat(2.20),
		MinStock:  5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Gaseosa 500ml (nueva receta)", updated.Name)
	assert.True(t, updated.SalePrice.Equal(decimal.NewFromFloat(3.80)))
	assert.Equal(t, 5, updated.MinStock)
	// Stock is never mutated by catalog updates
	assert.Equal(t, 10, updated.CurrentStock)
}

func TestProductService_DeactivateProduct(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _ := newProductService()

	product := existingProduct(t)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", ctx, product).Return(nil)

	require.NoError(t, service.DeactivateProduct(ctx, product.ID))
	assert.False(t, product.IsActive())

	// Deactivating twice is an invalid state transition
	err := service.DeactivateProduct(ctx, product.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestProductService_ListLowStock(t *testing.T) {
	ctx := context.Background()
	service, productRepo, _ := newProductService()

	low := existingProduct(t)
	require.NoError(t, low.RemoveStock(8)) // 2 left, min 3
	productRepo.On("FindLowStock", ctx).Return([]catalog.Product{*low}, nil)

	products, err := service.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].IsLowStock())
}

func TestCategoryService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	categoryRepo := new(MockCategoryRepository)
	productRepo := new(MockProductRepository)
	service := NewCategoryService(categoryRepo, productRepo)

	categoryRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

	category, err := service.CreateCategory(ctx, "Bebidas", "Gaseosas y jugos")
	require.NoError(t, err)
	assert.True(t, category.Active)

	categoryRepo.On("FindByID", ctx, category.ID).Return(category, nil)

	updated, err := service.UpdateCategory(ctx, category.ID, "Bebidas frías", "")
	require.NoError(t, err)
	assert.Equal(t, "Bebidas frías", updated.Name)

	require.NoError(t, service.DeleteCategory(ctx, category.ID))
	assert.False(t, category.Active)
}
