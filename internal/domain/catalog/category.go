package catalog

import (
	"time"

	"github.com/puestoweb/backend/internal/domain/shared"
)

// Category groups products for browsing and reports
type Category struct {
	shared.BaseAggregateRoot
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// NewCategory creates a new active category
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category name cannot exceed 100 characters")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Active:            true,
	}, nil
}

// Update updates the category
func (c *Category) Update(name, description string) error {
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name cannot exceed 100 characters")
	}

	c.Name = name
	c.Description = description
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate soft deletes the category
func (c *Category) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}
