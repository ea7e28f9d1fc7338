package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/puestoweb/backend/internal/application/report"
)

// ReportHandler handles reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes on the given group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.Dashboard)
		reports.GET("/sales-by-day", h.SalesByDay)
		reports.GET("/top-products", h.TopProducts)
	}
}

// ReportRangeQuery represents a date range for reports. Both bounds are
// required; reports never scan the whole ledger.
type ReportRangeQuery struct {
	FromDate string `form:"from_date" binding:"required"`
	ToDate   string `form:"to_date" binding:"required"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// Dashboard returns today's sales figures, the low stock count and the
// debt portfolio summary in a single call
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dashboard)
}

// SalesByDay returns per-day sale counts and totals for a date range
func (h *ReportHandler) SalesByDay(c *gin.Context) {
	from, to, ok := h.bindRange(c)
	if !ok {
		return
	}

	days, err := h.reportService.SalesByDay(c.Request.Context(), from, to)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, days)
}

// TopProducts returns the best selling products for a date range
func (h *ReportHandler) TopProducts(c *gin.Context) {
	var query ReportRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	from, to, err := parseDateRange(query.FromDate, query.ToDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	products, err := h.reportService.TopProducts(c.Request.Context(), *from, *to, query.Limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

func (h *ReportHandler) bindRange(c *gin.Context) (time.Time, time.Time, bool) {
	var query ReportRangeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}

	from, to, err := parseDateRange(query.FromDate, query.ToDate)
	if err != nil {
		h.BadRequest(c, err.Error())
		return time.Time{}, time.Time{}, false
	}

	return *from, *to, true
}
