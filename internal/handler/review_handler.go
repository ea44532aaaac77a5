package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intakeflow/internal/domain"
	"intakeflow/internal/service"
)

// ReviewHandler handles review queue endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
	reconciler    service.ReconciliationService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService, reconciler service.ReconciliationService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, reconciler: reconciler}
}

// List handles GET /api/v1/reviews
// @Summary List review records
// @Tags reviews
// @Produce json
// @Param type query string false "Review type, e.g. Doublon - Mail"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.CustomerReview,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Unknown review type"
// @Router /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	reviews, total, err := h.reviewService.List(c.Request.Context(), domain.ReviewType(c.Query("type")), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, reviews, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/reviews/:id
// @Summary Get review record by ID
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} Response{data=domain.CustomerReview}
// @Failure 404 {object} ErrorResponseBody "Review not found"
// @Router /reviews/{id} [get]
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "review")
	if !ok {
		return
	}
	review, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, review)
}

// Update handles PUT /api/v1/reviews/:id
// @Summary Update a review record
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Param body body service.CustomerUpdate true "Fields to change"
// @Success 200 {object} Response{data=domain.CustomerReview}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Review not found"
// @Router /reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "review")
	if !ok {
		return
	}
	var req service.CustomerUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	review, err := h.reconciler.UpdateReview(c.Request.Context(), id, req)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, review)
}

// Transfer handles POST /api/v1/reviews/:id/transfer
// @Summary Move a review record into the customer table
// @Description Merges into the customer with the same email when one exists, otherwise creates a customer
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} Response{data=service.TransferResult}
// @Failure 404 {object} ErrorResponseBody "Review not found"
// @Router /reviews/{id}/transfer [post]
func (h *ReviewHandler) Transfer(c *gin.Context) {
	id, ok := parseID(c, "review")
	if !ok {
		return
	}
	result, err := h.reconciler.Transfer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/reviews/:id
// @Summary Discard a review record
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Review not found"
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "review")
	if !ok {
		return
	}
	if err := h.reviewService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "review deleted"})
}
