package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"intakeflow/internal/domain"
	"intakeflow/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrCustomerNotFound, http.StatusNotFound, "CUSTOMER_NOT_FOUND"},
		{domain.ErrReviewNotFound, http.StatusNotFound, "REVIEW_NOT_FOUND"},
		{domain.ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
		{domain.ErrGeneratedFileNotFound, http.StatusNotFound, "GENERATED_FILE_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrNoTargetForms, http.StatusNotFound, "NO_TARGET_FORMS"},
		{domain.ErrDuplicateCustomerEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{domain.ErrInvalidUpload, http.StatusBadRequest, "INVALID_UPLOAD"},
		{domain.ErrMalformedDocument, http.StatusBadRequest, "MALFORMED_DOCUMENT"},
		{domain.ErrInvalidReviewType, http.StatusBadRequest, "INVALID_REVIEW_TYPE"},
		{domain.ErrEmptyUpdate, http.StatusBadRequest, "EMPTY_UPDATE"},
		{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrOCRService, http.StatusBadGateway, "OCR_SERVICE_ERROR"},
		{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, msg := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestMapDomainError_Wrapped(t *testing.T) {
	err := fmt.Errorf("reconciliationService.Transfer: %w", domain.ErrReviewNotFound)
	status, code, _ := handler.MapDomainError(err)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "REVIEW_NOT_FOUND", code)
}
