package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	salesapp "github.com/puestoweb/backend/internal/application/sales"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// SaleHandler handles sale and checkout API endpoints
type SaleHandler struct {
	BaseHandler
	checkoutService *salesapp.CheckoutService
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(checkoutService *salesapp.CheckoutService) *SaleHandler {
	return &SaleHandler{checkoutService: checkoutService}
}

// RegisterRoutes registers sale routes on the given group
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.POST("", h.Checkout)
		sales.GET("", h.List)
		sales.GET("/:id", h.GetByID)
	}
}

// CheckoutLine represents one cart line in a checkout request
type CheckoutLine struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents a request to record a sale
type CheckoutRequest struct {
	CustomerID     *uuid.UUID       `json:"customer_id"`
	Lines          []CheckoutLine   `json:"lines" binding:"required,min=1,dive"`
	Discount       decimal.Decimal  `json:"discount"`
	PaymentType    string           `json:"payment_type" binding:"required,oneof=PAID DEFERRED"`
	AmountReceived *decimal.Decimal `json:"amount_received"`
	Notes          string           `json:"notes"`
}

// ListSalesQuery represents sale list query parameters
type ListSalesQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search      string `form:"search"`
	CustomerID  string `form:"customer_id" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED"`
	PaymentType string `form:"payment_type" binding:"omitempty,oneof=PAID DEFERRED"`
	FromDate    string `form:"from_date"`
	ToDate      string `form:"to_date"`
}

// Checkout records a sale from a cart
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lines := make([]salesapp.CartLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, salesapp.CartLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), salesapp.CheckoutRequest{
		CustomerID:     req.CustomerID,
		Lines:          lines,
		Discount:       req.Discount,
		PaymentType:    ledger.PaymentType(req.PaymentType),
		AmountReceived: req.AmountReceived,
		Notes:          req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// GetByID retrieves a sale by ID
func (h *SaleHandler) GetByID(c *gin.Context) {
	saleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid sale ID format")
		return
	}

	sale, err := h.checkoutService.GetSale(c.Request.Context(), saleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, sale)
}

// List retrieves sales with pagination and filtering
func (h *SaleHandler) List(c *gin.Context) {
	var query ListSalesQuery
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

	filter := ledger.SaleFilter{}
	if query.CustomerID != "" {
		customerID, err := uuid.Parse(query.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		filter.CustomerID = &customerID
	}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	filter.Search = query.Search
	if query.Status != "" {
		status := ledger.SaleStatus(query.Status)
		filter.Status = &status
	}
	if query.PaymentType != "" {
		paymentType := ledger.PaymentType(query.PaymentType)
		filter.PaymentType = &paymentType
	}
	fromDate, toDate, err := parseDateRange(query.FromDate, query.ToDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.FromDate = fromDate
	filter.ToDate = toDate

	result, err := h.checkoutService.ListSales(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// parseDateRange parses optional YYYY-MM-DD bounds. The upper bound is
// pushed to the end of its day so that "to=2026-01-15" includes the 15th.
func parseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var fromDate, toDate *time.Time
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, nil, err
		}
		fromDate = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, nil, err
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		toDate = &end
	}
	return fromDate, toDate, nil
}
