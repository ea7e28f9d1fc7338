package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/puestoweb/backend/internal/application/inventory"
	"github.com/puestoweb/backend/internal/domain/inventory"
)

// InventoryHandler handles stock movement API endpoints
type InventoryHandler struct {
	BaseHandler
	movementService *inventoryapp.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movementService *inventoryapp.MovementService) *InventoryHandler {
	return &InventoryHandler{movementService: movementService}
}

// RegisterRoutes registers inventory routes on the given group
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	movements := rg.Group("/inventory/movements")
	{
		movements.POST("", h.Record)
		movements.GET("", h.List)
	}
	rg.GET("/inventory/products/:id/movements", h.ProductHistory)
}

// RecordMovementRequest represents a manual stock adjustment request
type RecordMovementRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Type      string    `json:"type" binding:"required,oneof=ENTRY EXIT ADJUSTMENT"`
	Quantity  int       `json:"quantity" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

// ListMovementsQuery represents movement list query parameters
type ListMovementsQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	ProductID string `form:"product_id" binding:"omitempty,uuid"`
	Type      string `form:"type" binding:"omitempty,oneof=ENTRY EXIT ADJUSTMENT"`
	FromDate  string `form:"from_date"`
	ToDate    string `form:"to_date"`
}

// Record registers a manual stock movement and updates the product stock
func (h *InventoryHandler) Record(c *gin.Context) {
	var req RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movement, err := h.movementService.RecordMovement(c.Request.Context(), inventoryapp.RecordMovementRequest{
		ProductID: req.ProductID,
		Type:      inventory.MovementType(req.Type),
		Quantity:  req.Quantity,
		Reason:    req.Reason,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, movement)
}

// List retrieves stock movements with pagination and filtering
func (h *InventoryHandler) List(c *gin.Context) {
	var query ListMovementsQuery
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

	filter, err := h.movementFilter(query)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.movementService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ProductHistory retrieves the movement trail for one product
func (h *InventoryHandler) ProductHistory(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var query ListMovementsQuery
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

	filter, err := h.movementFilter(query)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	movements, err := h.movementService.ProductHistory(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, movements)
}

func (h *InventoryHandler) movementFilter(query ListMovementsQuery) (inventory.MovementFilter, error) {
	filter := inventory.MovementFilter{}
	if query.ProductID != "" {
		productID, err := uuid.Parse(query.ProductID)
		if err != nil {
			return inventory.MovementFilter{}, err
		}
		filter.ProductID = &productID
	}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	filter.Search = query.Search
	if query.Type != "" {
		movementType := inventory.MovementType(query.Type)
		filter.Type = &movementType
	}
	fromDate, toDate, err := parseDateRange(query.FromDate, query.ToDate)
	if err != nil {
		return inventory.MovementFilter{}, err
	}
	filter.FromDate = fromDate
	filter.ToDate = toDate
	return filter, nil
}
