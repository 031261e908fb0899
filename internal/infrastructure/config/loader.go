package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment override, e.g. PG_DATABASE_HOST
const EnvPrefix = "PG"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// envBindings lists nested keys that AutomaticEnv cannot discover on its own
// because they have no default and may be missing from the YAML file
var envBindings = []string{
	"database.host",
	"database.username",
	"database.password",
	"database.database",
	"redis.password",
	"gateways.mellat.credentials.terminalid",
	"gateways.mellat.credentials.username",
	"gateways.mellat.credentials.password",
	"gateways.sadad.credentials.merchant",
	"gateways.sadad.credentials.transactionkey",
	"gateways.sadad.credentials.terminalid",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	// A missing .env file is normal outside development
	_ = loadDotEnvFile()

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return decode(v, env)
}

// LoadFromViper decodes an already populated viper instance
func LoadFromViper(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)
	return decode(v, env)
}

func decode(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envBindings {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)
	normalizeGateways(&config)

	return &config, nil
}

// loadDotEnvFile loads the first .env file found in the search paths
func loadDotEnvFile() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 45)      // seconds, covers one verify and one settle call
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 15)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 2) // seconds
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("logger.level", "info")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("lock.driver", "database")
	v.SetDefault("lock.leaseSeconds", 60)

	v.SetDefault("transport.timeoutSeconds", 20)
	v.SetDefault("transport.retryCount", 0)
	v.SetDefault("transport.userAgent", "payment-gateway/1.0")

	v.SetDefault("payment.configSource", "file")
	v.SetDefault("payment.defaultLocale", "fa")
	v.SetDefault("payment.timeZone", "Asia/Tehran")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.verifyRetrySpec", "@every 5m")
	v.SetDefault("scheduler.settleRetrySpec", "@every 5m")
	v.SetDefault("scheduler.expirySpec", "@every 10m")
	v.SetDefault("scheduler.expireAfterMinutes", 30)
	v.SetDefault("scheduler.verifyRetryAfterMinutes", 5)
	v.SetDefault("scheduler.settleRetryAfterMinutes", 10)
	v.SetDefault("scheduler.batchSize", 100)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.serviceName", "payment-gateway")
}

// getEnvironment determines the environment to use based on PG_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout *= time.Second
	config.Server.WriteTimeout *= time.Second
	config.Server.IdleTimeout *= time.Second
	config.Server.ReadHeaderTimeout *= time.Second
	config.Server.ShutdownTimeout *= time.Second

	config.Database.ConnMaxLifetime *= time.Minute
	config.Database.ConnMaxIdleTime *= time.Minute
	config.Database.QueryTimeout *= time.Second
	config.Database.RetryDelay *= time.Second

	config.Transport.Timeout *= time.Second

	config.Scheduler.ExpireAfter *= time.Minute
	config.Scheduler.VerifyRetryAfter *= time.Minute
	config.Scheduler.SettleRetryAfter *= time.Minute
}

// normalizeGateways lowercases gateway names so lookups ignore case
func normalizeGateways(config *Config) {
	gateways := make(map[string]GatewayConfig, len(config.Gateways))
	for name, gw := range config.Gateways {
		gateways[strings.ToLower(name)] = gw
	}
	config.Gateways = gateways
}
