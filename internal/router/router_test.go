package router_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"intakeflow/internal/domain"
	"intakeflow/internal/handler"
	"intakeflow/internal/router"
	"intakeflow/mocks"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(pingErr error, reviews *mocks.MockReviewService) *gin.Engine {
	recon := new(mocks.MockReconciliationService)
	return router.Setup(router.Handlers{
		Health:    handler.NewHealthHandler(fakePinger{err: pingErr}),
		Intake:    handler.NewIntakeHandler(new(mocks.MockIntakeService), 50),
		Customers: handler.NewCustomerHandler(new(mocks.MockCustomerService), recon),
		Reviews:   handler.NewReviewHandler(reviews, recon),
		Files:     handler.NewFileHandler(new(mocks.MockAttachmentService)),
		Audit:     handler.NewAuditHandler(new(mocks.MockAuditService)),
	}, []string{"http://localhost:3000"})
}

func TestRouter_Health(t *testing.T) {
	r := setupRouter(nil, new(mocks.MockReviewService))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ReadinessDatabaseDown(t *testing.T) {
	r := setupRouter(errors.New("connection refused"), new(mocks.MockReviewService))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_ReviewRouteBindsID(t *testing.T) {
	reviews := new(mocks.MockReviewService)
	r := setupRouter(nil, reviews)
	id := uuid.New()
	reviews.On("GetByID", mock.Anything, id).Return(&domain.CustomerReview{ID: id}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reviews/"+id.String(), http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	reviews.AssertExpectations(t)
}

func TestRouter_UnknownRoute(t *testing.T) {
	r := setupRouter(nil, new(mocks.MockReviewService))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/tenants", http.NoBody))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
