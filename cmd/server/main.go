package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "intakeflow/docs"
	"intakeflow/internal/classifier"
	"intakeflow/internal/config"
	"intakeflow/internal/csvexport"
	"intakeflow/internal/email/noop"
	"intakeflow/internal/email/ses"
	"intakeflow/internal/extractor"
	"intakeflow/internal/geolocation"
	"intakeflow/internal/handler"
	"intakeflow/internal/ocr"
	"intakeflow/internal/pdfsplit"
	"intakeflow/internal/port"
	"intakeflow/internal/repository/postgres"
	"intakeflow/internal/router"
	"intakeflow/internal/service"
	s3storage "intakeflow/internal/storage/s3"
)

// @title intakeflow API
// @version 1.0
// @description Scanned intake form processing and customer reconciliation.
// @BasePath /api/v1

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	customerRepo := postgres.NewCustomerRepo(db)
	reviewRepo := postgres.NewCustomerReviewRepo(db)
	fileRepo := postgres.NewCustomerFileRepo(db)
	generatedRepo := postgres.NewGeneratedFileRepo(db)
	loginRepo := postgres.NewLoginEventRepo(db)
	uow := postgres.NewUnitOfWork(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	notifier, err := newNotifier(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Initialize services
	reconciler := service.NewReconciliationService(uow, customerRepo, reviewRepo, service.NewValidators(cfg.Validation))
	attachmentSvc := service.NewAttachmentService(fileRepo, customerRepo, reviewRepo, s3Client, &cfg.S3)
	customerSvc := service.NewCustomerService(customerRepo, fileRepo, s3Client)
	reviewSvc := service.NewReviewService(reviewRepo, fileRepo, s3Client)
	auditSvc := service.NewAuditService(loginRepo, geolocation.NewIPAPILocator(cfg.Geolocation))
	intakeSvc := service.NewIntakeService(service.IntakeDeps{
		Splitter:    pdfsplit.New(),
		OCR:         ocr.NewMistralOCR(cfg.OCR),
		Classifier:  classifier.New(),
		Extractor:   extractor.New(),
		Generator:   csvexport.NewGenerator(),
		Generated:   generatedRepo,
		Storage:     s3Client,
		Reconciler:  reconciler,
		Attachments: attachmentSvc,
		Notifier:    notifier,
	}, cfg.Intake, cfg.OCR, &cfg.S3)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Revalidation.Enabled {
		worker := service.NewRevalidationWorker(customerRepo, reconciler, service.RevalidationConfig{
			PollInterval: cfg.Revalidation.PollInterval,
			BatchSize:    cfg.Revalidation.BatchSize,
			Concurrency:  cfg.Revalidation.Concurrency,
		})
		go worker.Start(ctx)
	}

	// Initialize handlers
	r := router.Setup(router.Handlers{
		Health:    handler.NewHealthHandler(db),
		Intake:    handler.NewIntakeHandler(intakeSvc, cfg.Intake.MaxUploadMB),
		Customers: handler.NewCustomerHandler(customerSvc, reconciler),
		Reviews:   handler.NewReviewHandler(reviewSvc, reconciler),
		Files:     handler.NewFileHandler(attachmentSvc),
		Audit:     handler.NewAuditHandler(auditSvc),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newNotifier(cfg *config.EmailConfig) (port.ReviewNotifier, error) {
	if cfg.Provider == "ses" {
		return ses.NewSESNotifier(cfg)
	}
	zap.L().Info("review notifications disabled, using noop notifier")
	return noop.NewNoopNotifier(cfg.FrontendURL), nil
}
