package handler

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/dto"
)

// DatabasePinger checks the database connection
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// PoolStatsProvider exposes connection pool statistics
type PoolStatsProvider interface {
	Stats() sql.DBStats
}

// HealthHandler serves the liveness probe
type HealthHandler struct {
	db     DatabasePinger
	pool   PoolStatsProvider
	logger coreport.Logger
}

// NewHealthHandler creates a health handler. pool may be nil.
func NewHealthHandler(db DatabasePinger, pool PoolStatsProvider, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{db: db, pool: pool, logger: logger}
}

// Health handles the GET /health endpoint
func (h *HealthHandler) Health(c *gin.Context) {
	resp := dto.HealthResponse{Status: "ok", Database: "up"}

	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Error("Health check failed", map[string]any{
			"error": err.Error(),
		})
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}

	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = map[string]int{
			"open":     stats.OpenConnections,
			"in_use":   stats.InUse,
			"idle":     stats.Idle,
			"max_open": stats.MaxOpenConnections,
		}
	}

	c.JSON(http.StatusOK, resp)
}
