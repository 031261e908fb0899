package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Payments *handler.PaymentHandler
	Health   *handler.HealthHandler
	Schema   *middleware.SchemaValidator
	// Metrics is mounted on MetricsPath when set
	Metrics     http.Handler
	MetricsPath string
}

// MiddlewareOptions configures the global middleware chain
type MiddlewareOptions struct {
	ServiceName    string
	AllowedOrigins []string
	// Observer receives request latencies; nil disables them
	Observer middleware.RequestObserver
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)

	if h.Metrics != nil {
		path := h.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(h.Metrics))
	}

	payments := router.Group("/payments")
	{
		// POST /payments
		if h.Schema != nil {
			payments.POST("", h.Schema.ValidateJSONSchema(), h.Payments.Initiate)
		} else {
			payments.POST("", h.Payments.Initiate)
		}

		// GET|POST /payments/callback
		payments.GET("/callback", h.Payments.Callback)
		payments.POST("/callback", h.Payments.Callback)

		// GET /payments/:id
		payments.GET("/:id", h.Payments.Get)

		// POST /payments/:id/verify and /payments/:id/settle
		payments.POST("/:id/verify", h.Payments.Verify)
		payments.POST("/:id/settle", h.Payments.Settle)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, opts MiddlewareOptions) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestIDMiddleware())
	if opts.ServiceName != "" {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}
	router.Use(middleware.Logger(logger, opts.Observer))
	router.Use(middleware.CORS(opts.AllowedOrigins...))
}
