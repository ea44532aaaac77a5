package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/port"
	"intakeflow/internal/service"
	"intakeflow/mocks"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func pdfUpload(name string, size int64) (multipart.File, *multipart.FileHeader) {
	data := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("0"), 64)...)
	return memFile{bytes.NewReader(data)}, &multipart.FileHeader{Filename: name, Size: size}
}

func setupAttachmentService() (
	service.AttachmentService,
	*mocks.MockCustomerFileRepo,
	*mocks.MockCustomerRepo,
	*mocks.MockCustomerReviewRepo,
	*mocks.MockObjectStorage,
) {
	files := new(mocks.MockCustomerFileRepo)
	customers := new(mocks.MockCustomerRepo)
	reviews := new(mocks.MockCustomerReviewRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := &config.S3Config{Bucket: "intake-bucket", MaxFileSizeMB: 1, PresignExpiry: 600}
	return service.NewAttachmentService(files, customers, reviews, storage, cfg), files, customers, reviews, storage
}

func TestAttachmentService_Upload_Customer(t *testing.T) {
	svc, files, customers, _, storage := setupAttachmentService()
	ownerID := uuid.New()
	customers.On("GetByID", mock.Anything, ownerID).Return(&domain.Customer{ID: ownerID}, nil)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "intake-bucket" &&
			strings.HasPrefix(in.Key, "customer/"+ownerID.String()+"/files/") &&
			strings.HasSuffix(in.Key, "/fiche.pdf") &&
			in.ContentType == "application/pdf" &&
			in.FileName == "fiche.pdf"
	})).Return(&port.UploadOutput{}, nil)
	files.On("Create", mock.Anything, mock.AnythingOfType("*domain.CustomerFile")).Return(nil)

	f, h := pdfUpload("fiche.pdf", 2048)
	got, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
		Owner: domain.DestinationCustomer, OwnerID: ownerID, File: f, Header: h,
	})
	require.NoError(t, err)

	require.NotNil(t, got.CustomerID)
	assert.Equal(t, ownerID, *got.CustomerID)
	assert.Nil(t, got.CustomerReviewID)
	assert.Equal(t, domain.FileTypePDF, got.FileType)
	assert.Equal(t, int64(2048), got.FileSize)
}

func TestAttachmentService_Upload_Rejections(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		svc, _, _, _, _ := setupAttachmentService()
		f, h := pdfUpload("notes.docx", 10)
		_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
			Owner: domain.DestinationCustomer, OwnerID: uuid.New(), File: f, Header: h,
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	})

	t.Run("too large", func(t *testing.T) {
		svc, _, _, _, _ := setupAttachmentService()
		f, h := pdfUpload("fiche.pdf", 2*1024*1024)
		_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
			Owner: domain.DestinationCustomer, OwnerID: uuid.New(), File: f, Header: h,
		})
		assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	})

	t.Run("content does not match extension", func(t *testing.T) {
		svc, _, _, _, _ := setupAttachmentService()
		h := &multipart.FileHeader{Filename: "fiche.pdf", Size: 10}
		_, err := svc.Upload(context.Background(), service.AttachmentUploadInput{
			Owner: domain.DestinationCustomer, OwnerID: uuid.New(),
			File: memFile{bytes.NewReader([]byte("plain text body"))}, Header: h,
		})
		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	})
}

func TestAttachmentService_AttachPage_Review(t *testing.T) {
	svc, files, _, reviews, storage := setupAttachmentService()
	ownerID := uuid.New()
	reviews.On("GetByID", mock.Anything, ownerID).Return(&domain.CustomerReview{ID: ownerID}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	files.On("Create", mock.Anything, mock.AnythingOfType("*domain.CustomerFile")).Return(nil)

	got, err := svc.AttachPage(context.Background(), domain.DestinationReview, ownerID, "scan_page_002.pdf", []byte("%PDF"))
	require.NoError(t, err)

	require.NotNil(t, got.CustomerReviewID)
	assert.Equal(t, ownerID, *got.CustomerReviewID)
	assert.Nil(t, got.CustomerID)
	assert.Equal(t, "scan_page_002.pdf", got.FileName)
}

func TestAttachmentService_RowFailureRemovesObject(t *testing.T) {
	svc, files, customers, _, storage := setupAttachmentService()
	ownerID := uuid.New()
	customers.On("GetByID", mock.Anything, ownerID).Return(&domain.Customer{ID: ownerID}, nil)
	storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	files.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed"))
	storage.On("Delete", mock.Anything, "intake-bucket", mock.AnythingOfType("string")).Return(nil)

	_, err := svc.AttachPage(context.Background(), domain.DestinationCustomer, ownerID, "p.pdf", []byte("%PDF"))
	require.Error(t, err)
	storage.AssertCalled(t, "Delete", mock.Anything, "intake-bucket", mock.AnythingOfType("string"))
}

func TestAttachmentService_UnknownOwner(t *testing.T) {
	svc, _, customers, _, storage := setupAttachmentService()
	ownerID := uuid.New()
	customers.On("GetByID", mock.Anything, ownerID).Return(nil, domain.ErrCustomerNotFound)

	_, err := svc.AttachPage(context.Background(), domain.DestinationCustomer, ownerID, "p.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestAttachmentService_GetDownloadURLAndDelete(t *testing.T) {
	svc, files, _, _, storage := setupAttachmentService()
	id := uuid.New()
	file := &domain.CustomerFile{ID: id, FileName: "p.pdf", S3Bucket: "intake-bucket", S3Key: "customer/x/files/y/p.pdf"}
	files.On("GetByID", mock.Anything, id).Return(file, nil)
	storage.On("PresignDownload", mock.Anything, file.S3Bucket, file.S3Key, "p.pdf", int64(600)).Return("https://signed/p.pdf", nil)
	storage.On("Delete", mock.Anything, file.S3Bucket, file.S3Key).Return(nil)
	files.On("Delete", mock.Anything, id).Return(nil)

	url, err := svc.GetDownloadURL(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://signed/p.pdf", url)

	require.NoError(t, svc.Delete(context.Background(), id))
	files.AssertCalled(t, "Delete", mock.Anything, id)
}
