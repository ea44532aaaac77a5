package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intakeflow/internal/service"
)

// AuditHandler handles login history endpoints.
type AuditHandler struct {
	auditService service.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// RecordLogin handles POST /api/v1/audit/logins
// @Summary Record a login
// @Description Store a login event for the calling address, geolocated
// @Tags audit
// @Accept json
// @Produce json
// @Param body body RecordLoginRequest true "Login"
// @Success 201 {object} Response{data=domain.LoginEvent}
// @Failure 400 {object} ErrorResponseBody "Invalid request body"
// @Router /audit/logins [post]
func (h *AuditHandler) RecordLogin(c *gin.Context) {
	var req RecordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	event, err := h.auditService.RecordLogin(c.Request.Context(), req.Username, c.ClientIP())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, event)
}

// ListLogins handles GET /api/v1/audit/logins
// @Summary List recent logins
// @Tags audit
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.LoginEvent,meta=PagMeta}
// @Router /audit/logins [get]
func (h *AuditHandler) ListLogins(c *gin.Context) {
	offset, limit := parsePagination(c)
	events, total, err := h.auditService.ListLogins(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, events, PagMeta{Total: total, Offset: offset, Limit: limit})
}
