package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intakeflow/internal/domain"
	"intakeflow/internal/service"
)

// FileHandler handles attachment upload and management endpoints.
type FileHandler struct {
	attachmentService service.AttachmentService
}

// NewFileHandler creates a new FileHandler.
func NewFileHandler(attachmentService service.AttachmentService) *FileHandler {
	return &FileHandler{attachmentService: attachmentService}
}

// UploadForCustomer handles POST /api/v1/customers/:id/files
// @Summary Attach a file to a customer
// @Description Upload a file (PDF, JPG, PNG) to a customer record
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param file formData file true "File to upload (PDF, JPG, or PNG)"
// @Success 201 {object} Response{data=domain.CustomerFile} "File uploaded successfully"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /customers/{id}/files [post]
func (h *FileHandler) UploadForCustomer(c *gin.Context) {
	h.upload(c, domain.DestinationCustomer)
}

// UploadForReview handles POST /api/v1/reviews/:id/files
// @Summary Attach a file to a review record
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Param file formData file true "File to upload (PDF, JPG, or PNG)"
// @Success 201 {object} Response{data=domain.CustomerFile} "File uploaded successfully"
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 404 {object} ErrorResponseBody "Review not found"
// @Router /reviews/{id}/files [post]
func (h *FileHandler) UploadForReview(c *gin.Context) {
	h.upload(c, domain.DestinationReview)
}

func (h *FileHandler) upload(c *gin.Context, owner domain.Destination) {
	ownerID, ok := parseID(c, string(owner))
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	meta, err := h.attachmentService.Upload(c.Request.Context(), service.AttachmentUploadInput{
		Owner:   owner,
		OwnerID: ownerID,
		File:    file,
		Header:  header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, meta)
}

// ListForCustomer handles GET /api/v1/customers/:id/files
// @Summary List a customer's files
// @Tags files
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} Response{data=[]domain.CustomerFile}
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Router /customers/{id}/files [get]
func (h *FileHandler) ListForCustomer(c *gin.Context) {
	h.list(c, domain.DestinationCustomer)
}

// ListForReview handles GET /api/v1/reviews/:id/files
// @Summary List a review record's files
// @Tags files
// @Produce json
// @Param id path string true "Review ID (UUID)"
// @Success 200 {object} Response{data=[]domain.CustomerFile}
// @Failure 404 {object} ErrorResponseBody "Review not found"
// @Router /reviews/{id}/files [get]
func (h *FileHandler) ListForReview(c *gin.Context) {
	h.list(c, domain.DestinationReview)
}

func (h *FileHandler) list(c *gin.Context, owner domain.Destination) {
	ownerID, ok := parseID(c, string(owner))
	if !ok {
		return
	}
	files, err := h.attachmentService.List(c.Request.Context(), owner, ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if files == nil {
		files = []domain.CustomerFile{}
	}
	RespondOK(c, files)
}

// Download handles GET /api/v1/files/:id/download
// @Summary Get a presigned download URL for a file
// @Tags files
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	fileID, ok := parseID(c, "file")
	if !ok {
		return
	}
	url, err := h.attachmentService.GetDownloadURL(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, DownloadURLResponse{DownloadURL: url})
}

// Delete handles DELETE /api/v1/files/:id
// @Summary Delete a file
// @Tags files
// @Produce json
// @Param id path string true "File ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "File deleted"
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	fileID, ok := parseID(c, "file")
	if !ok {
		return
	}
	if err := h.attachmentService.Delete(c.Request.Context(), fileID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "file deleted"})
}
