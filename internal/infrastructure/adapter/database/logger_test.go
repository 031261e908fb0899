package database

import (
	"context"
	"errors"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestExtractors(t *testing.T) {
	testCases := []struct {
		sql       string
		queryType string
		table     string
	}{
		{`SELECT * FROM "transactions" WHERE id = 1`, "SELECT", "transactions"},
		{"INSERT INTO `transaction_logs` (`transaction_id`) VALUES (1)", "INSERT", "transaction_logs"},
		{`UPDATE "transactions" SET "status"='verified'`, "UPDATE", "transactions"},
		{`DELETE FROM leases WHERE name = 'x'`, "DELETE", "leases"},
		{`BEGIN`, "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.sql, func(t *testing.T) {
			assert.Equal(t, tc.queryType, extractQueryType(tc.sql))
			assert.Equal(t, tc.table, extractTableName(tc.sql))
		})
	}
}

func TestDatabaseLoggerTrace(t *testing.T) {
	begin := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	query := func() (string, int64) { return `SELECT * FROM "transactions"`, 1 }

	t.Run("Errors are logged", func(t *testing.T) {
		mockLogger := coremocks.NewMockLogger(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Since(begin).Return(coreport.Millisecond)
		mockLogger.On("Error", "SQL Error", mock.MatchedBy(func(f map[string]any) bool {
			return f["table"] == "transactions" && f["error"] == "boom"
		})).Once()

		l := NewDatabaseLogger(mockLogger, mockTime, "warn")
		l.Trace(context.Background(), begin, query, errors.New("boom"))
	})

	t.Run("Slow queries are logged at warn", func(t *testing.T) {
		mockLogger := coremocks.NewMockLogger(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Since(begin).Return(coreport.Second)
		mockLogger.On("Warn", "Slow SQL Query", mock.Anything).Once()

		l := NewDatabaseLogger(mockLogger, mockTime, "warn")
		l.Trace(context.Background(), begin, query, nil)
	})

	t.Run("Fast queries are quiet at warn", func(t *testing.T) {
		mockLogger := coremocks.NewMockLogger(t)
		mockTime := coremocks.NewMockTimeProvider(t)
		mockTime.EXPECT().Since(begin).Return(coreport.Millisecond)

		l := NewDatabaseLogger(mockLogger, mockTime, "warn")
		l.Trace(context.Background(), begin, query, nil)
	})

	t.Run("Silent logs nothing", func(t *testing.T) {
		mockLogger := coremocks.NewMockLogger(t)
		mockTime := coremocks.NewMockTimeProvider(t)

		l := NewDatabaseLogger(mockLogger, mockTime, "silent")
		l.Trace(context.Background(), begin, query, errors.New("boom"))
	})
}
