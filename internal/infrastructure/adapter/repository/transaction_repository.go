package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/model"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// Ensure TransactionRepository implements the persistence.TransactionRepository interface
var _ persistence.TransactionRepository = (*TransactionRepository)(nil)

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func entityToModel(txn *entity.Transaction) model.Transaction {
	m := model.Transaction{
		ID:           txn.ID,
		GatewayName:  txn.GatewayName,
		Amount:       txn.Amount,
		RefID:        txn.RefID,
		TrackingCode: txn.TrackingCode,
		CardNumber:   txn.CardNumber,
		Status:       string(txn.Status),
		CallbackURL:  txn.CallbackURL,
		CreatedAt:    txn.CreatedAt,
		UpdatedAt:    txn.UpdatedAt,
	}
	for _, entry := range txn.Log {
		m.Logs = append(m.Logs, logToModel(txn.ID, entry))
	}
	return m
}

func logToModel(transactionID uint64, entry entity.LogEntry) model.TransactionLog {
	return model.TransactionLog{
		TransactionID: transactionID,
		ResultCode:    entry.Code,
		ResultMessage: entry.Message,
		Status:        string(entry.Status),
		LogDate:       entry.Timestamp,
	}
}

// modelToEntity converts a transaction model and its preloaded logs to an entity
func modelToEntity(m *model.Transaction) *entity.Transaction {
	txn := &entity.Transaction{
		ID:           m.ID,
		GatewayName:  m.GatewayName,
		Amount:       m.Amount,
		RefID:        m.RefID,
		TrackingCode: m.TrackingCode,
		CardNumber:   m.CardNumber,
		Status:       entity.Status(m.Status),
		CallbackURL:  m.CallbackURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		Log:          make([]entity.LogEntry, 0, len(m.Logs)),
	}
	for _, l := range m.Logs {
		txn.Log = append(txn.Log, entity.LogEntry{
			Code:      l.ResultCode,
			Message:   l.ResultMessage,
			Status:    entity.Status(l.Status),
			Timestamp: l.LogDate,
		})
	}
	return txn
}

// Create saves a new transaction together with its initial log entries
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"transaction_id": txn.ID,
		"gateway":        txn.GatewayName,
	})

	m := entityToModel(txn)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if r.errorClassifier.IsDuplicateKeyError(err) {
			r.logger.Warn("Duplicate transaction detected", map[string]any{
				"transaction_id": txn.ID,
			})
			return fmt.Errorf("%w: %d", errs.ErrDuplicateTransaction, txn.ID)
		}
		r.logger.Error("Failed to create transaction", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	r.logger.Debug("Transaction created", map[string]any{
		"transaction_id": txn.ID,
	})
	return nil
}

// GetByID retrieves a transaction and its full log
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var m model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Logs", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&m).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.logger.Debug("Transaction not found", map[string]any{
				"transaction_id": id,
			})
			return nil, fmt.Errorf("%w: %d", errs.ErrTransactionNotFound, id)
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	return modelToEntity(&m), nil
}

// UpdateStatus performs the compare-and-set write of a transition
func (r *TransactionRepository) UpdateStatus(ctx context.Context, txn *entity.Transaction, expected entity.Status) error {
	r.logger.Debug("Updating transaction status", map[string]any{
		"transaction_id": txn.ID,
		"from":           expected,
		"to":             txn.Status,
	})

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status = ?", txn.ID, string(expected)).
		Updates(map[string]any{
			"status":        string(txn.Status),
			"ref_id":        txn.RefID,
			"tracking_code": txn.TrackingCode,
			"card_number":   txn.CardNumber,
			"updated_at":    txn.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update transaction status", map[string]any{
			"transaction_id": txn.ID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Where("id = ?", txn.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}
		if count == 0 {
			return fmt.Errorf("%w: %d", errs.ErrTransactionNotFound, txn.ID)
		}
		r.logger.Warn("Transaction status changed concurrently", map[string]any{
			"transaction_id": txn.ID,
			"expected":       expected,
		})
		return fmt.Errorf("%w: transaction %d is no longer %s", errs.ErrStatePrecondition, txn.ID, expected)
	}

	return nil
}

// AppendLog adds one entry to the transaction's history
func (r *TransactionRepository) AppendLog(ctx context.Context, transactionID uint64, entry entity.LogEntry) error {
	m := logToModel(transactionID, entry)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		r.logger.Error("Failed to append transaction log", map[string]any{
			"transaction_id": transactionID,
			"code":           entry.Code,
			"error":          err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// ListByStatus returns the oldest transactions in status not updated since updatedBefore
func (r *TransactionRepository) ListByStatus(ctx context.Context, status entity.Status, updatedBefore time.Time, limit int) ([]*entity.Transaction, error) {
	var models []model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Logs", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("status = ? AND updated_at < ?", string(status), updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&models).Error

	if err != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"status": status,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	txns := make([]*entity.Transaction, 0, len(models))
	for i := range models {
		txns = append(txns, modelToEntity(&models[i]))
	}

	r.logger.Debug("Listed transactions", map[string]any{
		"status": status,
		"count":  len(txns),
	})
	return txns, nil
}
