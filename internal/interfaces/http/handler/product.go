package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/puestoweb/backend/internal/application/catalog"
	"github.com/puestoweb/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes on the given group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.POST("", h.Create)
		products.GET("", h.List)
		products.GET("/low-stock", h.ListLowStock)
		products.GET("/barcode/:barcode", h.GetByBarcode)
		products.GET("/:id", h.GetByID)
		products.PUT("/:id", h.Update)
		products.POST("/:id/activate", h.Activate)
		products.POST("/:id/deactivate", h.Deactivate)
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=200"`
	Barcode      string          `json:"barcode" binding:"max=64"`
	CategoryID   *uuid.UUID      `json:"category_id"`
	SalePrice    decimal.Decimal `json:"sale_price" binding:"required"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	InitialStock int             `json:"initial_stock" binding:"omitempty,min=0"`
	MinStock     int             `json:"min_stock" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Barcode    string          `json:"barcode" binding:"max=64"`
	CategoryID *uuid.UUID      `json:"category_id"`
	SalePrice  decimal.Decimal `json:"sale_price" binding:"required"`
	CostPrice  decimal.Decimal `json:"cost_price"`
	MinStock   int             `json:"min_stock" binding:"omitempty,min=0"`
}

// ListProductsQuery represents product list query parameters
type ListProductsQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive"`
	LowStock   bool   `form:"low_stock"`
}

// Create creates a new product
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), catalogapp.CreateProductRequest{
		Name:         req.Name,
		Barcode:      req.Barcode,
		CategoryID:   req.CategoryID,
		SalePrice:    req.SalePrice,
		CostPrice:    req.CostPrice,
		InitialStock: req.InitialStock,
		MinStock:     req.MinStock,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID retrieves a product by ID
func (h *ProductHandler) GetByID(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// GetByBarcode looks a product up by its barcode. This is the scanner
// path at the counter, so it lives on its own route.
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		h.BadRequest(c, "Barcode is required")
		return
	}

	product, err := h.productService.GetProductByBarcode(c.Request.Context(), barcode)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// List retrieves products with pagination and filtering
func (h *ProductHandler) List(c *gin.Context) {
	var query ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	filter := catalog.ProductFilter{LowStock: query.LowStock}
	if query.CategoryID != "" {
		categoryID, err := uuid.Parse(query.CategoryID)
		if err != nil {
			h.BadRequest(c, "Invalid category ID format")
			return
		}
		filter.CategoryID = &categoryID
	}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	filter.Search = query.Search
	if query.Status != "" {
		status := catalog.ProductStatus(query.Status)
		filter.Status = &status
	}

	result, err := h.productService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListLowStock retrieves active products at or below their minimum stock
func (h *ProductHandler) ListLowStock(c *gin.Context) {
	products, err := h.productService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// Update updates a product
func (h *ProductHandler) Update(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, catalogapp.UpdateProductRequest{
		Name:       req.Name,
		Barcode:    req.Barcode,
		CategoryID: req.CategoryID,
		SalePrice:  req.SalePrice,
		CostPrice:  req.CostPrice,
		MinStock:   req.MinStock,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Activate puts a product back on sale
func (h *ProductHandler) Activate(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.ActivateProduct(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate removes a product from sale without deleting its history
func (h *ProductHandler) Deactivate(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.productService.DeactivateProduct(c.Request.Context(), productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
