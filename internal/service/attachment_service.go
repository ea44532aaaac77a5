package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intakeflow/internal/config"
	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

// AttachmentUploadInput is the DTO for attachment upload requests.
type AttachmentUploadInput struct {
	Owner   domain.Destination
	OwnerID uuid.UUID
	File    multipart.File
	Header  *multipart.FileHeader
}

// AttachmentService manages files attached to customers and review records.
type AttachmentService interface {
	Upload(ctx context.Context, input AttachmentUploadInput) (*domain.CustomerFile, error)
	AttachPage(ctx context.Context, owner domain.Destination, ownerID uuid.UUID, name string, pdf []byte) (*domain.CustomerFile, error)
	List(ctx context.Context, owner domain.Destination, ownerID uuid.UUID) ([]domain.CustomerFile, error)
	GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error)
	Delete(ctx context.Context, fileID uuid.UUID) error
}

type attachmentService struct {
	files     port.CustomerFileRepository
	customers port.CustomerRepository
	reviews   port.CustomerReviewRepository
	storage   port.ObjectStorage
	cfg       *config.S3Config
}

// NewAttachmentService creates a new AttachmentService implementation.
func NewAttachmentService(
	files port.CustomerFileRepository,
	customers port.CustomerRepository,
	reviews port.CustomerReviewRepository,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) AttachmentService {
	return &attachmentService{
		files:     files,
		customers: customers,
		reviews:   reviews,
		storage:   storage,
		cfg:       cfg,
	}
}

func (s *attachmentService) Upload(ctx context.Context, input AttachmentUploadInput) (*domain.CustomerFile, error) {
	// Validate file extension
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	if _, valid := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]; !valid {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	return s.store(ctx, input.Owner, input.OwnerID, input.Header.Filename, fileType, input.File, input.Header.Size)
}

// AttachPage stores a single-page PDF produced by the intake pipeline.
func (s *attachmentService) AttachPage(ctx context.Context, owner domain.Destination, ownerID uuid.UUID, name string, pdf []byte) (*domain.CustomerFile, error) {
	return s.store(ctx, owner, ownerID, name, domain.FileTypePDF, bytes.NewReader(pdf), int64(len(pdf)))
}

func (s *attachmentService) store(
	ctx context.Context,
	owner domain.Destination,
	ownerID uuid.UUID,
	name string,
	fileType domain.FileType,
	body io.Reader,
	size int64,
) (*domain.CustomerFile, error) {
	if err := s.checkOwner(ctx, owner, ownerID); err != nil {
		return nil, err
	}

	fileID := uuid.New()
	s3Key := fmt.Sprintf("%s/%s/files/%s/%s", owner, ownerID, fileID, filepath.Base(name))
	contentType := domain.AllowedFileTypes[fileType]

	file := &domain.CustomerFile{
		ID:          fileID,
		FileName:    filepath.Base(name),
		FileType:    fileType,
		FileSize:    size,
		ContentType: contentType,
		S3Bucket:    s.cfg.Bucket,
		S3Key:       s3Key,
	}
	if owner == domain.DestinationCustomer {
		file.CustomerID = &ownerID
	} else {
		file.CustomerReviewID = &ownerID
	}

	zap.L().Info("attachmentService: uploading",
		zap.String("name", file.FileName), zap.String("owner", string(owner)),
		zap.String("owner_id", ownerID.String()), zap.Int64("size", size))

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         s3Key,
		Body:        body,
		ContentType: contentType,
		Size:        size,
		FileName:    file.FileName,
	})
	if err != nil {
		zap.L().Error("attachmentService: S3 upload failed", zap.String("key", s3Key), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	if err := s.files.Create(ctx, file); err != nil {
		_ = s.storage.Delete(ctx, s.cfg.Bucket, s3Key)
		return nil, fmt.Errorf("creating customer file: %w", err)
	}
	return file, nil
}

func (s *attachmentService) checkOwner(ctx context.Context, owner domain.Destination, ownerID uuid.UUID) error {
	switch owner {
	case domain.DestinationCustomer:
		_, err := s.customers.GetByID(ctx, ownerID)
		return err
	case domain.DestinationReview:
		_, err := s.reviews.GetByID(ctx, ownerID)
		return err
	default:
		return fmt.Errorf("unknown attachment owner %q", owner)
	}
}

func (s *attachmentService) List(ctx context.Context, owner domain.Destination, ownerID uuid.UUID) ([]domain.CustomerFile, error) {
	if err := s.checkOwner(ctx, owner, ownerID); err != nil {
		return nil, err
	}
	if owner == domain.DestinationCustomer {
		return s.files.ListByCustomer(ctx, ownerID)
	}
	return s.files.ListByReview(ctx, ownerID)
}

func (s *attachmentService) GetDownloadURL(ctx context.Context, fileID uuid.UUID) (string, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return "", err
	}
	return s.storage.PresignDownload(ctx, file.S3Bucket, file.S3Key, file.FileName, s.cfg.PresignExpiry)
}

func (s *attachmentService) Delete(ctx context.Context, fileID uuid.UUID) error {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, file.S3Bucket, file.S3Key); err != nil {
		zap.L().Error("attachmentService.Delete: failed to delete from S3", zap.Error(err))
		return fmt.Errorf("deleting from storage: %w", err)
	}
	return s.files.Delete(ctx, fileID)
}
