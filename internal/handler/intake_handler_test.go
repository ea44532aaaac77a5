package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/domain"
	"intakeflow/internal/handler"
	"intakeflow/internal/service"
	"intakeflow/mocks"
)

func multipartPDF(t *testing.T, name string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestIntakeHandler_UploadPDF(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)

	content := []byte("%PDF-1.4 scanned content")
	svc.On("Process", mock.Anything, service.UploadInput{FileName: "scan.pdf", Data: content, MaxPages: 3}).
		Return(&domain.BatchResult{FileName: "scan.pdf", TotalPages: 3}, nil)

	body, ct := multipartPDF(t, "scan.pdf", content, map[string]string{"max_pages": "3"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/upload-pdf", body)
	c.Request.Header.Set("Content-Type", ct)

	h.UploadPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode(t, w).Success)
	svc.AssertExpectations(t)
}

func TestIntakeHandler_UploadPDF_MissingFile(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/upload-pdf", http.NoBody)

	h.UploadPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestIntakeHandler_UploadPDF_InvalidMaxPages(t *testing.T) {
	h := handler.NewIntakeHandler(new(mocks.MockIntakeService), 50)

	body, ct := multipartPDF(t, "scan.pdf", []byte("%PDF"), map[string]string{"max_pages": "-2"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/upload-pdf", body)
	c.Request.Header.Set("Content-Type", ct)

	h.UploadPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_MAX_PAGES", decode(t, w).Error.Code)
}

func TestIntakeHandler_UploadPDF_InvalidUpload(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)
	svc.On("Process", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidUpload)

	body, ct := multipartPDF(t, "scan.txt", []byte("hello"), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/upload-pdf", body)
	c.Request.Header.Set("Content-Type", ct)

	h.UploadPDF(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_UPLOAD", decode(t, w).Error.Code)
}

func TestIntakeHandler_UploadPDFToCSV_NoTargetForms(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)
	svc.On("GenerateCSV", mock.Anything, mock.Anything).Return(nil, domain.ErrNoTargetForms)

	body, ct := multipartPDF(t, "scan.pdf", []byte("%PDF"), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/upload-pdf-csv", body)
	c.Request.Header.Set("Content-Type", ct)

	h.UploadPDFToCSV(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NO_TARGET_FORMS", decode(t, w).Error.Code)
}

func TestIntakeHandler_UploadPDFToCSV_Created(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)
	svc.On("GenerateCSV", mock.Anything, mock.Anything).
		Return(&domain.GeneratedFile{ID: uuid.New(), FileName: "studio_parfums_scan.csv", TargetForms: 4}, nil)

	body, ct := multipartPDF(t, "scan.pdf", []byte("%PDF"), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/upload-pdf-csv", body)
	c.Request.Header.Set("Content-Type", ct)

	h.UploadPDFToCSV(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIntakeHandler_Ingest(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)
	svc.On("Ingest", mock.Anything, mock.AnythingOfType("service.UploadInput")).
		Return(&domain.IngestReport{FileName: "scan.pdf", Customers: 2, Reviews: 1}, nil)

	body, ct := multipartPDF(t, "scan.pdf", []byte("%PDF"), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/ocr/ingest", body)
	c.Request.Header.Set("Content-Type", ct)

	h.Ingest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(2), data["customers_created"])
	assert.Equal(t, float64(1), data["reviews_created"])
}

func TestIntakeHandler_ListFiles_ClampsLimit(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)
	svc.On("ListGeneratedFiles", mock.Anything, 0, 20).Return([]domain.GeneratedFile{}, 0, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/ocr/files?limit=500&offset=-3", http.NoBody)

	h.ListFiles(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 20, resp.Meta.Limit)
	assert.Equal(t, 0, resp.Meta.Offset)
}

func TestIntakeHandler_DownloadFile(t *testing.T) {
	svc := new(mocks.MockIntakeService)
	h := handler.NewIntakeHandler(svc, 50)
	id := uuid.New()
	svc.On("GetDownloadURL", mock.Anything, id).Return("https://signed/x.csv", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/ocr/files/"+id.String()+"/download", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.DownloadFile(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "https://signed/x.csv", data["download_url"])
}

func TestIntakeHandler_DownloadFile_InvalidID(t *testing.T) {
	h := handler.NewIntakeHandler(new(mocks.MockIntakeService), 50)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/ocr/files/nope/download", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}

	h.DownloadFile(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
}
