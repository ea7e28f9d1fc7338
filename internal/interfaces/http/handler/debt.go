package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/puestoweb/backend/internal/application/collections"
)

// DebtHandler handles debt portfolio API endpoints
type DebtHandler struct {
	BaseHandler
	debtService *collections.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *collections.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// RegisterRoutes registers debt routes on the given group
func (h *DebtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	debts := rg.Group("/debts")
	{
		debts.GET("/summary", h.Summary)
		debts.GET("/debtors", h.Debtors)
		debts.GET("/customers/:id/statement", h.Statement)
	}
}

// Summary returns the aggregate debt portfolio figures
func (h *DebtHandler) Summary(c *gin.Context) {
	summary, err := h.debtService.PortfolioSummary(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Debtors lists customers with outstanding debt, largest debt first
func (h *DebtHandler) Debtors(c *gin.Context) {
	debtors, err := h.debtService.ListDebtors(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, debtors)
}

// Statement returns a customer's open sales, payment history and debt
// figures, cross-checked against the stored aggregate.
func (h *DebtHandler) Statement(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	statement, err := h.debtService.Statement(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statement)
}
