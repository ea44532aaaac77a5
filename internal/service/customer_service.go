package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"intakeflow/internal/csvexport"
	"intakeflow/internal/domain"
	"intakeflow/internal/port"
)

// ExportFormat selects the customer export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportXLSX ExportFormat = "xlsx"
)

// Export is a rendered customer export ready to be served.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

// CustomerService defines read, delete and export operations on customers.
// Edits go through ReconciliationService so they are re-validated.
type CustomerService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context, format ExportFormat) (*Export, error)
}

type customerService struct {
	customers port.CustomerRepository
	files     port.CustomerFileRepository
	storage   port.ObjectStorage
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(
	customers port.CustomerRepository,
	files port.CustomerFileRepository,
	storage port.ObjectStorage,
) CustomerService {
	return &customerService{
		customers: customers,
		files:     files,
		storage:   storage,
	}
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.customers.List(ctx, search, offset, limit)
}

// Delete removes the customer and the stored objects of its attachments. The
// attachment rows go with the customer row.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customers.GetByID(ctx, id); err != nil {
		return err
	}
	files, err := s.files.ListByCustomer(ctx, id)
	if err != nil {
		return fmt.Errorf("customerService.Delete: %w", err)
	}
	purgeObjects(ctx, s.storage, files)
	return s.customers.Delete(ctx, id)
}

func (s *customerService) Export(ctx context.Context, format ExportFormat) (*Export, error) {
	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("customerService.Export: %w", err)
	}

	switch format {
	case ExportXLSX:
		data, err := csvexport.CustomersXLSX(customers)
		if err != nil {
			return nil, fmt.Errorf("customerService.Export: %w", err)
		}
		return &Export{
			FileName:    csvexport.BuildFilename("clients", "xlsx"),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		var buf bytes.Buffer
		buf.Write(csvexport.BOM)
		w := csvexport.NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, fmt.Errorf("customerService.Export: %w", err)
		}
		if err := w.WriteCustomers(customers); err != nil {
			return nil, fmt.Errorf("customerService.Export: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("customerService.Export: %w", err)
		}
		return &Export{
			FileName:    csvexport.BuildFilename("clients", "csv"),
			ContentType: "text/csv; charset=utf-8",
			Data:        buf.Bytes(),
		}, nil
	}
}

// purgeObjects deletes stored objects best-effort. A leftover object is
// harmless once its row is gone.
func purgeObjects(ctx context.Context, storage port.ObjectStorage, files []domain.CustomerFile) {
	for i := range files {
		if err := storage.Delete(ctx, files[i].S3Bucket, files[i].S3Key); err != nil {
			zap.L().Warn("service: failed to delete stored object",
				zap.String("key", files[i].S3Key), zap.Error(err))
		}
	}
}
