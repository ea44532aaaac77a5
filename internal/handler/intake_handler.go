package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"intakeflow/internal/domain"
	"intakeflow/internal/service"
)

// IntakeHandler handles PDF upload, CSV generation and ingestion endpoints.
type IntakeHandler struct {
	intakeService  service.IntakeService
	maxUploadBytes int64
}

// NewIntakeHandler creates a new IntakeHandler. maxUploadMB <= 0 disables the
// size check.
func NewIntakeHandler(intakeService service.IntakeService, maxUploadMB int64) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService, maxUploadBytes: maxUploadMB * 1024 * 1024}
}

// readUpload reads the "file" form field and the optional max_pages value.
// On failure the error response is already written.
func (h *IntakeHandler) readUpload(c *gin.Context) (service.UploadInput, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return service.UploadInput{}, false
	}
	defer func() { _ = file.Close() }()

	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return service.UploadInput{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return service.UploadInput{}, false
	}

	maxPages := 0
	if raw := c.DefaultPostForm("max_pages", c.Query("max_pages")); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil || n < 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_MAX_PAGES", "max_pages must be a non-negative integer")
			return service.UploadInput{}, false
		}
		maxPages = n
	}

	return service.UploadInput{FileName: header.Filename, Data: data, MaxPages: maxPages}, true
}

// UploadPDF handles POST /api/v1/ocr/upload-pdf
// @Summary Process a scanned PDF
// @Description Split, OCR, classify and extract every page of a PDF
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to process"
// @Param max_pages formData int false "Process at most this many pages"
// @Success 200 {object} Response{data=domain.BatchResult} "Per-page results and summary"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid PDF"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Router /ocr/upload-pdf [post]
func (h *IntakeHandler) UploadPDF(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}
	result, err := h.intakeService.Process(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// UploadPDFToCSV handles POST /api/v1/ocr/upload-pdf-csv
// @Summary Generate a CSV from a scanned PDF
// @Description Process a PDF and store a CSV with one row per target form
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to process"
// @Param max_pages formData int false "Process at most this many pages"
// @Success 201 {object} Response{data=domain.GeneratedFile} "Stored CSV"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid PDF"
// @Failure 404 {object} ErrorResponseBody "No target forms"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Router /ocr/upload-pdf-csv [post]
func (h *IntakeHandler) UploadPDFToCSV(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}
	file, err := h.intakeService.GenerateCSV(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, file)
}

// Ingest handles POST /api/v1/ocr/ingest
// @Summary Ingest a scanned PDF into the customer store
// @Description Route every target form into customers or the review queue
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF to ingest"
// @Param max_pages formData int false "Process at most this many pages"
// @Success 200 {object} Response{data=domain.IngestReport} "Per-page routing outcome"
// @Failure 400 {object} ErrorResponseBody "Missing or invalid PDF"
// @Router /ocr/ingest [post]
func (h *IntakeHandler) Ingest(c *gin.Context) {
	input, ok := h.readUpload(c)
	if !ok {
		return
	}
	report, err := h.intakeService.Ingest(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ListFiles handles GET /api/v1/ocr/files
// @Summary List generated CSV files
// @Tags ocr
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.GeneratedFile,meta=PagMeta}
// @Router /ocr/files [get]
func (h *IntakeHandler) ListFiles(c *gin.Context) {
	offset, limit := parsePagination(c)
	files, total, err := h.intakeService.ListGeneratedFiles(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, files, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// DownloadFile handles GET /api/v1/ocr/files/:id/download
// @Summary Get a download URL for a generated CSV
// @Tags ocr
// @Produce json
// @Param id path string true "Generated file ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid ID"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Router /ocr/files/{id}/download [get]
func (h *IntakeHandler) DownloadFile(c *gin.Context) {
	id, ok := parseID(c, "file")
	if !ok {
		return
	}
	url, err := h.intakeService.GetDownloadURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, DownloadURLResponse{DownloadURL: url})
}
