package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

// TestDBManager provides utilities for tests that need a real database.
// Tests using it are skipped unless TEST_DB_HOST is set.
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a new test database manager
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv("TEST_DB_HOST")
	if !ok || host == "" {
		t.Skip("TEST_DB_HOST not set, skipping database test")
	}

	driver := getEnvOrDefault("TEST_DB_DRIVER", DriverPostgres)
	defaultPort := 5432
	if driver == DriverMySQL {
		defaultPort = 3306
	}

	config := &Config{
		Driver:          driver,
		Host:            host,
		Port:            getEnvIntOrDefault("TEST_DB_PORT", defaultPort),
		Username:        getEnvOrDefault("TEST_DB_USERNAME", "postgres"),
		Password:        getEnvOrDefault("TEST_DB_PASSWORD", "postgres"),
		Database:        getEnvOrDefault("TEST_DB_DATABASE", "payment_gateway_test"),
		SSLMode:         getEnvOrDefault("TEST_DB_SSL_MODE", "disable"),
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
		RetryAttempts:   1,
		RetryDelay:      time.Second,
	}

	timeProvider := timeprovider.NewRealTimeProvider(time.UTC)

	return &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// Connect connects to the test database and registers Close as cleanup
func (m *TestDBManager) Connect(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := m.Manager.Connect()
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() { m.Close(t) })

	return db
}

// Close closes the test database connection
func (m *TestDBManager) Close(t *testing.T) {
	t.Helper()

	if err := m.Manager.Close(); err != nil {
		t.Logf("Warning: Failed to close test database connection: %v", err)
	}
}

// SetupTestDB recreates every table from scratch through the migration manager
func (m *TestDBManager) SetupTestDB(t *testing.T) {
	t.Helper()

	db := m.Manager.DB()
	tables := append([]any{&model.MigrationVersion{}}, migration.Models...)
	if err := db.Migrator().DropTable(tables...); err != nil {
		t.Fatalf("Failed to drop tables: %v", err)
	}

	if err := m.Manager.Migrate(context.Background(), nil); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
}

// TruncateAllTables removes every row while keeping the schema
func (m *TestDBManager) TruncateAllTables(t *testing.T) {
	t.Helper()

	db := m.Manager.DB().Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, table := range []any{&model.TransactionLog{}, &model.Transaction{}, &model.Lease{}, &model.Gateway{}} {
		if err := db.Delete(table).Error; err != nil {
			t.Fatalf("Failed to truncate tables: %v", err)
		}
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}
