package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/application/collections"
	"github.com/puestoweb/backend/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

// PaymentHandler handles debt payment API endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *collections.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *collections.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers payment routes on the given group
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Register)
		payments.POST("/preview", h.Preview)
		payments.GET("", h.List)
	}
}

// RegisterPaymentRequest represents a request to record a debt payment
type RegisterPaymentRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	SaleID     *uuid.UUID      `json:"sale_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Method     string          `json:"method" binding:"required,oneof=CASH CARD TRANSFER WALLET"`
	Note       string          `json:"note"`
}

// PreviewAllocationRequest represents a dry-run allocation request
type PreviewAllocationRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	SaleID     *uuid.UUID      `json:"sale_id"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// ListPaymentsQuery represents payment list query parameters
type ListPaymentsQuery struct {
	CustomerID string `form:"customer_id" binding:"required,uuid"`
	SaleID     string `form:"sale_id" binding:"omitempty,uuid"`
	Method     string `form:"method" binding:"omitempty,oneof=CASH CARD TRANSFER WALLET"`
	FromDate   string `form:"from_date"`
	ToDate     string `form:"to_date"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// Register records a payment against a customer's debt. Without a sale
// ID the amount settles open sales oldest first; with one it targets
// that sale only.
func (h *PaymentHandler) Register(c *gin.Context) {
	var req RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.paymentService.RegisterPayment(c.Request.Context(), collections.RegisterPaymentRequest{
		CustomerID: req.CustomerID,
		SaleID:     req.SaleID,
		Amount:     req.Amount,
		Method:     ledger.PaymentMethod(req.Method),
		Note:       req.Note,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Preview computes how a payment would be allocated without recording it
func (h *PaymentHandler) Preview(c *gin.Context) {
	var req PreviewAllocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.paymentService.PreviewAllocation(c.Request.Context(), req.CustomerID, req.SaleID, req.Amount)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, plan)
}

// List retrieves a customer's payment history
func (h *PaymentHandler) List(c *gin.Context) {
	var query ListPaymentsQuery
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

	customerID, err := uuid.Parse(query.CustomerID)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter := ledger.PaymentFilter{}
	if query.SaleID != "" {
		saleID, err := uuid.Parse(query.SaleID)
		if err != nil {
			h.BadRequest(c, "Invalid sale ID format")
			return
		}
		filter.SaleID = &saleID
	}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	if query.Method != "" {
		method := ledger.PaymentMethod(query.Method)
		filter.Method = &method
	}
	fromDate, toDate, err := parseDateRange(query.FromDate, query.ToDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	filter.FromDate = fromDate
	filter.ToDate = toDate

	payments, err := h.paymentService.ListPayments(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}
