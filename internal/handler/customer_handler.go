package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"intakeflow/internal/service"
)

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
	reconciler      service.ReconciliationService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService, reconciler service.ReconciliationService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService, reconciler: reconciler}
}

// List handles GET /api/v1/customers
// @Summary List customers
// @Description List customers, optionally filtered by a search term on name, email, phone or reference
// @Tags customers
// @Produce json
// @Param search query string false "Search term"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Customer,meta=PagMeta}
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	customers, total, err := h.customerService.List(c.Request.Context(), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/customers/:id
// @Summary Get customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} Response{data=domain.Customer}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Create handles POST /api/v1/customers
// @Summary Create a customer
// @Description Create a customer by hand; values are normalized and validated like ingested ones
// @Tags customers
// @Accept json
// @Produce json
// @Param body body service.CustomerUpdate true "Customer fields"
// @Success 201 {object} Response{data=domain.Customer}
// @Failure 400 {object} ErrorResponseBody "Invalid request body"
// @Failure 409 {object} ErrorResponseBody "Email already used"
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req service.CustomerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	customer, err := h.reconciler.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, customer)
}

// Update handles PUT /api/v1/customers/:id
// @Summary Update a customer
// @Description Apply a partial edit; changed email, phone, city and country are re-validated
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param body body service.CustomerUpdate true "Fields to change"
// @Success 200 {object} Response{data=domain.Customer}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 409 {object} ErrorResponseBody "Email already used"
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	var req service.CustomerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	customer, err := h.reconciler.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Revalidate handles POST /api/v1/customers/:id/revalidate
// @Summary Re-run email and phone checks
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} Response{data=domain.Customer}
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Router /customers/{id}/revalidate [post]
func (h *CustomerHandler) Revalidate(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	customer, err := h.reconciler.Revalidate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
// @Summary Delete a customer
// @Description Delete a customer and its attachments
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "customer")
	if !ok {
		return
	}
	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "customer deleted"})
}

// Export handles GET /api/v1/customers/export
// @Summary Export all customers
// @Tags customers
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Unknown format"
// @Router /customers/export [get]
func (h *CustomerHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	if format != service.ExportCSV && format != service.ExportXLSX {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	export, err := h.customerService.Export(c.Request.Context(), format)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.FileName))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
