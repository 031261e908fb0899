package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorMapper(t *testing.T) {
	mapper := NewErrorMapper()

	testCases := []struct {
		name     string
		err      error
		expected error
	}{
		{"Not found", gorm.ErrRecordNotFound, errs.ErrNotFound},
		{"Postgres duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "transactions_pkey" (SQLSTATE 23505)`), errs.ErrDuplicateTransaction},
		{"MySQL duplicate", errors.New("Error 1062 (23000): Duplicate entry '7' for key 'PRIMARY'"), errs.ErrDuplicateTransaction},
		{"Deadlock", errors.New("Error 1213: Deadlock found when trying to get lock"), errs.ErrDatabaseConnection},
		{"Connection refused", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), errs.ErrDatabaseConnection},
		{"Context deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), errs.ErrDatabaseConnection},
		{"Foreign key", errors.New("Error 1452: Cannot add or update a child row: a foreign key constraint fails"), errs.ErrConstraintViolation},
		{"Anything else", errors.New("syntax error at or near"), errs.ErrInternalServer},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tc.err, "test"), tc.expected)
		})
	}

	assert.NoError(t, mapper.MapError(nil, "test"))
	assert.Equal(t, errs.ErrTransactionNotFound, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeTransaction))
	assert.Equal(t, errs.ErrUnknownGateway, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeGateway))
	assert.Equal(t, errs.ErrNotFound, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeLease))
}
