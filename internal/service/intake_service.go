package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"intakeflow/internal/classifier"
	"intakeflow/internal/config"
	"intakeflow/internal/csvexport"
	"intakeflow/internal/domain"
	"intakeflow/internal/extractor"
	"intakeflow/internal/port"
)

// UploadInput is one uploaded PDF. MaxPages <= 0 falls back to the
// configured limit, and a configured limit of 0 means every page.
type UploadInput struct {
	FileName string
	Data     []byte
	MaxPages int
}

// IntakeService drives uploaded PDFs through OCR, classification and
// extraction, and hands the results to the CSV export or the customer store.
type IntakeService interface {
	Process(ctx context.Context, input UploadInput) (*domain.BatchResult, error)
	GenerateCSV(ctx context.Context, input UploadInput) (*domain.GeneratedFile, error)
	ListGeneratedFiles(ctx context.Context, offset, limit int) ([]domain.GeneratedFile, int, error)
	GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error)
	Ingest(ctx context.Context, input UploadInput) (*domain.IngestReport, error)
}

// IntakeDeps groups the collaborators of the intake service.
type IntakeDeps struct {
	Splitter    port.PageSplitter
	OCR         port.OCRGateway
	Classifier  *classifier.Classifier
	Extractor   *extractor.Extractor
	Generator   *csvexport.Generator
	Generated   port.GeneratedFileRepository
	Storage     port.ObjectStorage
	Reconciler  ReconciliationService
	Attachments AttachmentService
	Notifier    port.ReviewNotifier
}

type intakeService struct {
	IntakeDeps
	intakeCfg config.IntakeConfig
	ocrCfg    config.OCRConfig
	s3Cfg     *config.S3Config
	now       func() time.Time
}

// NewIntakeService creates a new IntakeService implementation.
func NewIntakeService(deps IntakeDeps, intakeCfg config.IntakeConfig, ocrCfg config.OCRConfig, s3Cfg *config.S3Config) IntakeService {
	return &intakeService{
		IntakeDeps: deps,
		intakeCfg:  intakeCfg,
		ocrCfg:     ocrCfg,
		s3Cfg:      s3Cfg,
		now:        time.Now,
	}
}

func (s *intakeService) Process(ctx context.Context, input UploadInput) (*domain.BatchResult, error) {
	minSize := s.intakeCfg.MinUploadSize
	if minSize <= 0 {
		minSize = 100
	}
	if !strings.HasSuffix(strings.ToLower(input.FileName), ".pdf") || len(input.Data) < minSize {
		return nil, domain.ErrInvalidUpload
	}

	maxPages := input.MaxPages
	if maxPages <= 0 {
		maxPages = s.intakeCfg.MaxPages
	}
	pages, err := s.Splitter.Split(input.Data, maxPages)
	if err != nil {
		return nil, err
	}

	zap.L().Info("intakeService.Process: split",
		zap.String("file", input.FileName), zap.Int("pages", len(pages)))

	processed := make([]domain.ProcessedPage, len(pages))
	failed := make([]bool, len(pages))

	concurrency := s.ocrCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range pages {
		g.Go(func() error {
			processed[i], failed[i] = s.processPage(ctx, i+1, pages[i])
			return nil
		})
	}
	_ = g.Wait()

	summary := domain.BatchSummary{TotalPages: len(pages)}
	for i, p := range processed {
		switch p.DocumentType {
		case domain.DocumentTypeBlankSheet:
			summary.BlankSheets++
		case domain.DocumentTypeTargetForm:
			summary.TargetForms++
		default:
			summary.UnknownSheets++
		}
		if failed[i] {
			summary.ProcessingErrors++
		}
	}

	return &domain.BatchResult{
		FileName:       input.FileName,
		TotalPages:     len(pages),
		ProcessedPages: processed,
		Summary:        summary,
		Pages:          pages,
	}, nil
}

// processPage never fails: an OCR error becomes an UNKNOWN page whose raw
// text carries the error.
func (s *intakeService) processPage(ctx context.Context, number int, page []byte) (domain.ProcessedPage, bool) {
	text, err := s.OCR.Recognize(ctx, page)
	if err != nil {
		zap.L().Warn("intakeService.processPage: OCR failed", zap.Int("page", number), zap.Error(err))
		return domain.ProcessedPage{
			PageNumber:    number,
			DocumentType:  domain.DocumentTypeUnknown,
			Confidence:    0,
			RawText:       "Error: " + err.Error(),
			ExtractedData: map[string]any{},
		}, true
	}

	docType, confidence := s.Classifier.Classify(text)
	return domain.ProcessedPage{
		PageNumber:    number,
		DocumentType:  docType,
		Confidence:    confidence,
		RawText:       text,
		ExtractedData: s.Extractor.Extract(text, docType),
	}, false
}

func (s *intakeService) GenerateCSV(ctx context.Context, input UploadInput) (*domain.GeneratedFile, error) {
	result, err := s.Process(ctx, input)
	if err != nil {
		return nil, err
	}

	data, rows, err := s.Generator.Generate(result.ProcessedPages)
	if err != nil {
		return nil, fmt.Errorf("intakeService.GenerateCSV: %w", err)
	}
	if rows == 0 {
		return nil, domain.ErrNoTargetForms
	}

	id := uuid.New()
	name := csvexport.GeneratedCSVName(input.FileName, s.now(), id)
	key := "exports/" + name
	if _, err := s.Storage.Upload(ctx, port.UploadInput{
		Bucket:      s.s3Cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: "text/csv; charset=utf-8",
		Size:        int64(len(data)),
		FileName:    name,
	}); err != nil {
		zap.L().Error("intakeService.GenerateCSV: upload failed", zap.String("key", key), zap.Error(err))
		return nil, domain.ErrUploadFailed
	}

	file := &domain.GeneratedFile{
		ID:          id,
		FileName:    name,
		SourceName:  input.FileName,
		TargetForms: rows,
		SizeBytes:   int64(len(data)),
		S3Bucket:    s.s3Cfg.Bucket,
		S3Key:       key,
	}
	if err := s.Generated.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("intakeService.GenerateCSV: %w", err)
	}

	zap.L().Info("intakeService.GenerateCSV: stored",
		zap.String("name", name), zap.Int("rows", rows))
	return file, nil
}

func (s *intakeService) ListGeneratedFiles(ctx context.Context, offset, limit int) ([]domain.GeneratedFile, int, error) {
	return s.Generated.List(ctx, offset, limit)
}

func (s *intakeService) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, error) {
	file, err := s.Generated.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.Storage.PresignDownload(ctx, file.S3Bucket, file.S3Key, file.FileName, s.s3Cfg.PresignExpiry)
}

// Ingest routes every target-form page into the store, one transaction per
// page. A failing page is reported in its outcome and does not stop the rest.
func (s *intakeService) Ingest(ctx context.Context, input UploadInput) (*domain.IngestReport, error) {
	result, err := s.Process(ctx, input)
	if err != nil {
		return nil, err
	}

	report := &domain.IngestReport{
		FileName: input.FileName,
		Summary:  result.Summary,
		Outcomes: []domain.IngestOutcome{},
	}
	digest := domain.ReviewDigest{SourceFile: input.FileName, Counts: map[domain.ReviewType]int{}}
	base := strings.TrimSuffix(filepath.Base(input.FileName), filepath.Ext(input.FileName))

	for i, page := range result.ProcessedPages {
		if page.DocumentType != domain.DocumentTypeTargetForm {
			continue
		}
		outcome := domain.IngestOutcome{PageNumber: page.PageNumber}

		routed, err := s.Reconciler.Ingest(ctx, page.ExtractedData)
		if err != nil {
			zap.L().Error("intakeService.Ingest: page failed",
				zap.Int("page", page.PageNumber), zap.Error(err))
			outcome.Error = err.Error()
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}
		outcome.RecordID = routed.ID
		outcome.Destination = routed.Destination
		outcome.ReviewType = routed.ReviewType

		if routed.Destination == domain.DestinationReview {
			report.Reviews++
			digest.Counts[routed.ReviewType]++
			digest.Total++
		} else {
			report.Customers++
		}

		if i < len(result.Pages) {
			name := fmt.Sprintf("%s_page_%03d.pdf", base, page.PageNumber)
			if _, err := s.Attachments.AttachPage(ctx, routed.Destination, routed.ID, name, result.Pages[i]); err != nil {
				zap.L().Warn("intakeService.Ingest: page attachment failed",
					zap.Int("page", page.PageNumber), zap.Error(err))
			}
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if digest.Total > 0 {
		if err := s.Notifier.NotifyReviewQueue(ctx, digest); err != nil {
			zap.L().Warn("intakeService.Ingest: review notification failed", zap.Error(err))
		}
	}

	zap.L().Info("intakeService.Ingest: done",
		zap.String("file", input.FileName),
		zap.Int("customers", report.Customers), zap.Int("reviews", report.Reviews))
	return report, nil
}
