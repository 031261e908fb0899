package migration

import (
	"context"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"gorm.io/gorm"
)

// IndexManager creates the indexes AutoMigrate cannot express
type IndexManager struct {
	db     *gorm.DB
	driver string
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, driver string, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		driver: driver,
		logger: logger,
	}
}

type indexStatement struct {
	name string
	sql  string
}

// postgresIndexes are partial and BRIN indexes only postgres supports
var postgresIndexes = []indexStatement{
	{
		name: "idx_transactions_open",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_open
			ON transactions (updated_at)
			WHERE status IN ('pending', 'ref_id_obtained', 'callback_received', 'verified')`,
	},
	{
		name: "idx_transactions_created_at_brin",
		sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
			ON transactions USING BRIN (created_at)
			WITH (pages_per_range = 32)`,
	},
	{
		name: "idx_transaction_logs_txn_date",
		sql: `CREATE INDEX IF NOT EXISTS idx_transaction_logs_txn_date
			ON transaction_logs (transaction_id, log_date)`,
	},
}

// CreateIndexes creates the sweep indexes for the configured driver.
// mysql relies on the composite status index declared on the model.
func (m *IndexManager) CreateIndexes(ctx context.Context) error {
	if m.driver != "postgres" {
		m.logger.Info("Skipping dialect-specific indexes", map[string]any{"driver": m.driver})
		return nil
	}

	for _, idx := range postgresIndexes {
		if err := m.db.WithContext(ctx).Exec(idx.sql).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"index": idx.name,
				"error": err.Error(),
			})
			return err
		}
	}

	if err := m.db.WithContext(ctx).Exec(`ALTER TABLE transactions SET (fillfactor = 90)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for transactions table", map[string]any{
			"error": err.Error(),
		})
	}

	m.logger.Info("Postgres indexes created", map[string]any{"count": len(postgresIndexes)})
	return nil
}
