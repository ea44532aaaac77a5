package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"intakeflow/internal/handler"
	"intakeflow/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health    *handler.HealthHandler
	Intake    *handler.IntakeHandler
	Customers *handler.CustomerHandler
	Reviews   *handler.ReviewHandler
	Files     *handler.FileHandler
	Audit     *handler.AuditHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	ocr := v1.Group("/ocr")
	ocr.POST("/upload-pdf", h.Intake.UploadPDF)
	ocr.POST("/upload-pdf-csv", h.Intake.UploadPDFToCSV)
	ocr.POST("/ingest", h.Intake.Ingest)
	ocr.GET("/files", h.Intake.ListFiles)
	ocr.GET("/files/:id/download", h.Intake.DownloadFile)

	customers := v1.Group("/customers")
	customers.GET("", h.Customers.List)
	customers.POST("", h.Customers.Create)
	customers.GET("/export", h.Customers.Export)
	customers.GET("/:id", h.Customers.GetByID)
	customers.PUT("/:id", h.Customers.Update)
	customers.DELETE("/:id", h.Customers.Delete)
	customers.POST("/:id/revalidate", h.Customers.Revalidate)
	customers.POST("/:id/files", h.Files.UploadForCustomer)
	customers.GET("/:id/files", h.Files.ListForCustomer)

	reviews := v1.Group("/reviews")
	reviews.GET("", h.Reviews.List)
	reviews.GET("/:id", h.Reviews.GetByID)
	reviews.PUT("/:id", h.Reviews.Update)
	reviews.DELETE("/:id", h.Reviews.Delete)
	reviews.POST("/:id/transfer", h.Reviews.Transfer)
	reviews.POST("/:id/files", h.Files.UploadForReview)
	reviews.GET("/:id/files", h.Files.ListForReview)

	files := v1.Group("/files")
	files.GET("/:id/download", h.Files.Download)
	files.DELETE("/:id", h.Files.Delete)

	audit := v1.Group("/audit")
	audit.POST("/logins", h.Audit.RecordLogin)
	audit.GET("/logins", h.Audit.ListLogins)

	return r
}
