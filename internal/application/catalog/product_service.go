package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductService handles product catalog use cases
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string
	Barcode      string
	CategoryID   *uuid.UUID
	SalePrice    decimal.Decimal
	CostPrice    decimal.Decimal
	InitialStock int
	MinStock     int
}

// CreateProduct creates a new product. Barcodes must be unique among
// active products.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	if req.Barcode != "" {
		existing, err := s.productRepo.FindByBarcode(ctx, req.Barcode)
		if err != nil {
			return nil, fmt.Errorf("failed to check barcode: %w", err)
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Barcode %s is already in use", req.Barcode))
		}
	}

	if req.CategoryID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
		}
	}

	product, err := catalog.NewProduct(req.Name, req.Barcode, req.CategoryID,
		req.SalePrice, req.CostPrice, req.InitialStock, req.MinStock)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return product, nil
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       string
	Barcode    string
	CategoryID *uuid.UUID
	SalePrice  decimal.Decimal
	CostPrice  decimal.Decimal
	MinStock   int
}

// UpdateProduct updates a product's basic information. Stock is not
// touched here; it only moves through inventory movements and sales.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*catalog.Product, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Barcode != "" && req.Barcode != product.Barcode {
		existing, err := s.productRepo.FindByBarcode(ctx, req.Barcode)
		if err != nil {
			return nil, fmt.Errorf("failed to check barcode: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Barcode %s is already in use", req.Barcode))
		}
	}

	if err := product.Update(req.Name, req.Barcode, req.CategoryID, req.SalePrice, req.CostPrice, req.MinStock); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	return product, nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.getProduct(ctx, id)
}

// GetProductByBarcode returns a product by barcode
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return product, nil
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, filter catalog.ProductFilter) (*shared.Paginated[catalog.Product], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	page := shared.NewPaginated(products, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListLowStock returns active products at or below their minimum stock
func (s *ProductService) ListLowStock(ctx context.Context) ([]catalog.Product, error) {
	products, err := s.productRepo.FindLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock products: %w", err)
	}
	return products, nil
}

// ActivateProduct reactivates a product
func (s *ProductService) ActivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Activate(); err != nil {
		return err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// DeactivateProduct soft deletes a product. Sales keep their snapshotted
// product names, so history is unaffected.
func (s *ProductService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := product.Deactivate(); err != nil {
		return err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (s *ProductService) getProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
	}
	return product, nil
}
