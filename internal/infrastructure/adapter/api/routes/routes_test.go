package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	usecasemocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/usecase"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()
	payments := usecasemocks.NewMockPaymentUseCase(t)
	schema, err := middleware.NewSchemaValidator(middleware.InitiatePaymentSchema, log)
	require.NoError(t, err)

	router := gin.New()
	SetupMiddlewares(router, log, MiddlewareOptions{ServiceName: "payment-gateway-test"})
	SetupRoutes(router, Handlers{
		Payments: handler.NewPaymentHandler(payments, log, entity.LocaleEN),
		Health:   handler.NewHealthHandler(okPinger{}, nil, log),
		Schema:   schema,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		MetricsPath: "/metrics",
	})

	payments.On("Get", mock.Anything, uint64(5)).Return(&entity.Transaction{ID: 5, Status: entity.StatusPending}, nil).Once()
	payments.On("Complete", mock.Anything, mock.Anything).Return(&entity.Transaction{ID: 5, Status: entity.StatusSettled}, nil).Once()

	t.Run("Static callback route and id route coexist", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/5", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/payments/callback?transaction_id=5", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Initiate is guarded by the schema", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"gateway":"mellat"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Health and metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, "# metrics", rec.Body.String())
	})
}
