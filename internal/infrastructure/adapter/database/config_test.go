package database

import (
	"testing"
	"time"

	appconfig "github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Driver:        DriverPostgres,
		Host:          "localhost",
		Port:          5432,
		Username:      "payments",
		Password:      "secret",
		Database:      "payments",
		SSLMode:       "disable",
		MaxOpenConns:  10,
		MaxIdleConns:  5,
		QueryTimeout:  5 * time.Second,
		LogLevel:      "warn",
		RetryAttempts: 3,
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(c *Config)
		expectedErr string
	}{
		{"Valid postgres", func(c *Config) {}, ""},
		{"Valid mysql ignores ssl mode", func(c *Config) { c.Driver = DriverMySQL; c.SSLMode = "" }, ""},
		{"Missing host", func(c *Config) { c.Host = "" }, "database host is required"},
		{"Bad port", func(c *Config) { c.Port = 70000 }, "invalid port number"},
		{"Missing user", func(c *Config) { c.Username = "" }, "database username is required"},
		{"Missing name", func(c *Config) { c.Database = "" }, "database name is required"},
		{"Unknown driver", func(c *Config) { c.Driver = "sqlite" }, "unsupported database driver"},
		{"Bad ssl mode", func(c *Config) { c.SSLMode = "maybe" }, "invalid SSL mode"},
		{"Zero pool", func(c *Config) { c.MaxOpenConns = 0 }, "max open connections"},
		{"Zero timeout", func(c *Config) { c.QueryTimeout = 0 }, "query timeout"},
		{"No attempts", func(c *Config) { c.RetryAttempts = 0 }, "retry attempts"},
		{"Bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validConfig()
			tc.mutate(c)

			err := c.Validate()
			if tc.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestConfigDSN(t *testing.T) {
	c := validConfig()
	assert.Equal(t,
		"host=localhost port=5432 user=payments password=secret dbname=payments sslmode=disable TimeZone=UTC",
		c.DSN())

	c.Driver = DriverMySQL
	c.Port = 3306
	assert.Equal(t,
		"payments:secret@tcp(localhost:3306)/payments?charset=utf8mb4&parseTime=True&loc=UTC",
		c.DSN())

	dialector, err := c.Dialector()
	require.NoError(t, err)
	assert.Equal(t, "mysql", dialector.Name())

	c.Driver = "oracle"
	_, err = c.Dialector()
	assert.Error(t, err)
}

func TestFromAppConfig(t *testing.T) {
	c, err := FromAppConfig(appconfig.DatabaseConfig{
		Driver:        DriverPostgres,
		Host:          "db",
		Port:          "6543",
		QueryTimeout:  3 * time.Second,
		RetryAttempts: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 6543, c.Port)
	assert.Equal(t, 3*time.Second, c.QueryTimeout)

	_, err = FromAppConfig(appconfig.DatabaseConfig{Port: "abc"})
	assert.Error(t, err)
}
