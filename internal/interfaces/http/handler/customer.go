package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	partnerapp "github.com/puestoweb/backend/internal/application/partner"
	"github.com/puestoweb/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// RegisterRoutes registers customer routes on the given group
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	customers := rg.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.List)
		customers.GET("/:id", h.GetByID)
		customers.PUT("/:id", h.Update)
		customers.PUT("/:id/credit-limit", h.SetCreditLimit)
		customers.POST("/:id/reactivate", h.Reactivate)
		customers.DELETE("/:id", h.Delete)
	}
}

// CreateCustomerRequest represents a request to register a customer
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Surname     string          `json:"surname" binding:"max=100"`
	Phone       string          `json:"phone" binding:"max=20"`
	Email       string          `json:"email" binding:"max=255"`
	Address     string          `json:"address" binding:"max=500"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Notes       string          `json:"notes"`
}

// UpdateCustomerRequest represents a request to update customer contact data
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Surname string `json:"surname" binding:"max=100"`
	Phone   string `json:"phone" binding:"max=20"`
	Email   string `json:"email" binding:"max=255"`
	Address string `json:"address" binding:"max=500"`
	Notes   string `json:"notes"`
}

// SetCreditLimitRequest represents a request to change the credit limit
type SetCreditLimitRequest struct {
	CreditLimit decimal.Decimal `json:"credit_limit" binding:"required"`
}

// ListCustomersQuery represents customer list query parameters
type ListCustomersQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Debtors  bool   `form:"debtors"`
}

// Create registers a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), partnerapp.CreateCustomerRequest{
		Name:        req.Name,
		Surname:     req.Surname,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		CreditLimit: req.CreditLimit,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, customer)
}

// GetByID retrieves a customer by ID
func (h *CustomerHandler) GetByID(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// List retrieves customers with pagination and filtering
func (h *CustomerHandler) List(c *gin.Context) {
	var query ListCustomersQuery
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

	filter := partner.CustomerFilter{Debtors: query.Debtors}
	filter.Page = query.Page
	filter.PageSize = query.PageSize
	filter.Search = query.Search
	if query.Status != "" {
		status := partner.CustomerStatus(query.Status)
		filter.Status = &status
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update updates a customer's contact information
func (h *CustomerHandler) Update(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), customerID, partnerapp.UpdateCustomerRequest{
		Name:    req.Name,
		Surname: req.Surname,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Notes:   req.Notes,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// SetCreditLimit changes a customer's credit limit
func (h *CustomerHandler) SetCreditLimit(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req SetCreditLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.SetCreditLimit(c.Request.Context(), customerID, req.CreditLimit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Reactivate reactivates a deactivated customer
func (h *CustomerHandler) Reactivate(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.ReactivateCustomer(c.Request.Context(), customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete deactivates a customer. Customers with outstanding debt cannot
// be deactivated.
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
