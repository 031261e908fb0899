package persistence

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
)

// TransactionRepository defines the methods used to persist payment attempts
type TransactionRepository interface {
	// Create saves a new transaction together with its initial log entries
	//
	// Possible errors:
	// - ErrDuplicateTransaction: If a transaction with the same ID already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, txn *entity.Transaction) error

	// GetByID retrieves a transaction and its full log
	//
	// Possible errors:
	// - ErrTransactionNotFound: If no transaction has the given ID
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// UpdateStatus writes status, reference and tracking fields only if the stored
	// status still equals expected. This is the compare-and-set every transition uses.
	//
	// Possible errors:
	// - ErrStatePrecondition: If the stored status differs from expected
	// - ErrTransactionNotFound: If no transaction has the given ID
	// - ErrDatabaseConnection: If database connection fails
	UpdateStatus(ctx context.Context, txn *entity.Transaction, expected entity.Status) error

	// AppendLog adds one entry to the transaction's history
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	AppendLog(ctx context.Context, transactionID uint64, entry entity.LogEntry) error

	// ListByStatus returns up to limit transactions in status whose last update is before updatedBefore
	//
	// Possible errors:
	// - ErrDatabaseConnection: If database connection fails
	ListByStatus(ctx context.Context, status entity.Status, updatedBefore time.Time, limit int) ([]*entity.Transaction, error)
}
