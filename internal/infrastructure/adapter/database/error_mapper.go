package database

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	// EntityTypeTransaction represents the transaction entity
	EntityTypeTransaction EntityType = "transaction"
	// EntityTypeGateway represents the gateway settings entity
	EntityTypeGateway EntityType = "gateway"
	// EntityTypeLease represents the lease entity
	EntityTypeLease EntityType = "lease"
)

// ErrorMapper maps driver errors that escape the repositories to domain errors
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation: %w", errs.ErrDatabaseConnection, operation, err)
	}

	switch m.classifier.Classify(err) {
	case repository.DuplicateKeyError:
		return fmt.Errorf("%w: %s", errs.ErrDuplicateTransaction, err.Error())
	case repository.LockError, repository.TransientError, repository.ConnectionError:
		return fmt.Errorf("%w: %s operation: %s", errs.ErrDatabaseConnection, operation, err.Error())
	case repository.ConstraintError:
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	default:
		return fmt.Errorf("%w: %s operation: %s", errs.ErrInternalServer, operation, err.Error())
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeTransaction:
			return errs.ErrTransactionNotFound
		case EntityTypeGateway:
			return errs.ErrUnknownGateway
		default:
			return errs.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}
