package models

import (
	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root
type ProductModel struct {
	AggregateModel
	Name         string                `gorm:"type:varchar(200);not null;index"`
	Barcode      string                `gorm:"type:varchar(50);index"`
	CategoryID   *uuid.UUID            `gorm:"type:uuid;index"`
	SalePrice    decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	CostPrice    decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	CurrentStock int                   `gorm:"not null;default:0"`
	MinStock     int                   `gorm:"not null;default:0"`
	Status       catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product aggregate
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Barcode:           m.Barcode,
		CategoryID:        m.CategoryID,
		SalePrice:         m.SalePrice,
		CostPrice:         m.CostPrice,
		CurrentStock:      m.CurrentStock,
		MinStock:          m.MinStock,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product aggregate
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Barcode = p.Barcode
	m.CategoryID = p.CategoryID
	m.SalePrice = p.SalePrice
	m.CostPrice = p.CostPrice
	m.CurrentStock = p.CurrentStock
	m.MinStock = p.MinStock
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// CategoryModel is the persistence model for the Category aggregate root
type CategoryModel struct {
	AggregateModel
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:varchar(500)"`
	Active      bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category aggregate
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Category aggregate
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Description = c.Description
	m.Active = c.Active
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}
