package database

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

// ConnectionPoolMonitor periodically samples the pool and warns when it is nearly exhausted
type ConnectionPoolMonitor struct {
	db        *Manager
	logger    coreport.Logger
	lastStats *sql.DBStats
	mutex     sync.RWMutex
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewConnectionPoolMonitor creates a new connection pool monitor
func NewConnectionPoolMonitor(db *Manager, logger coreport.Logger) *ConnectionPoolMonitor {
	return &ConnectionPoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start samples once and then every interval until Stop
func (m *ConnectionPoolMonitor) Start(interval time.Duration) error {
	if err := m.collect(); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := m.collect(); err != nil {
					m.logger.Error("Failed to collect connection pool stats", map[string]any{
						"error": err.Error(),
					})
				}
			case <-m.stopChan:
				return
			}
		}
	}()

	return nil
}

// Stop stops the monitoring
func (m *ConnectionPoolMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// Stats returns the current pool statistics, or the last sample if the pool is gone
func (m *ConnectionPoolMonitor) Stats() sql.DBStats {
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		if m.lastStats == nil {
			return sql.DBStats{}
		}
		return *m.lastStats
	}
	return sqlDB.Stats()
}

func (m *ConnectionPoolMonitor) collect() error {
	sqlDB, err := m.db.DB().DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}

	stats := sqlDB.Stats()

	m.mutex.Lock()
	m.lastStats = &stats
	m.mutex.Unlock()

	if nearlyExhausted(stats) {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.Idle,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}

	return nil
}

// nearlyExhausted reports more than 80% of the allowed connections in use
func nearlyExhausted(stats sql.DBStats) bool {
	if stats.MaxOpenConnections <= 0 {
		return false
	}
	return float64(stats.InUse) > float64(stats.MaxOpenConnections)*0.8
}
