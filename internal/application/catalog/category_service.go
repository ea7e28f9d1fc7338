package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/puestoweb/backend/internal/domain/shared"
)

// CategoryService handles category use cases
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name, description string) (*catalog.Category, error) {
	category, err := catalog.NewCategory(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description string) (*catalog.Category, error) {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Update(name, description); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}
	return category, nil
}

// GetCategory returns a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	return s.getCategory(ctx, id)
}

// ListCategories lists categories
func (s *CategoryService) ListCategories(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// DeleteCategory soft deletes a category. Products keep their category
// reference; only the grouping disappears from listings.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.getCategory(ctx, id)
	if err != nil {
		return err
	}
	category.Deactivate()
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	return nil
}

func (s *CategoryService) getCategory(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
	}
	return category, nil
}
