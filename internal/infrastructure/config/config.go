package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string                   `mapstructure:"environment"`
	Server      ServerConfig             `mapstructure:"server"`
	Database    DatabaseConfig           `mapstructure:"database"`
	Logger      LoggerConfig             `mapstructure:"logger"`
	Redis       RedisConfig              `mapstructure:"redis"`
	Lock        LockConfig               `mapstructure:"lock"`
	Transport   TransportConfig          `mapstructure:"transport"`
	Gateways    map[string]GatewayConfig `mapstructure:"gateways"`
	Payment     PaymentConfig            `mapstructure:"payment"`
	Scheduler   SchedulerConfig          `mapstructure:"scheduler"`
	Metrics     MetricsConfig            `mapstructure:"metrics"`
	Tracing     TracingConfig            `mapstructure:"tracing"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
	AllowedOrigins    []string      `mapstructure:"allowedOrigins"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or mysql
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
	LogLevel        string        `mapstructure:"logLevel"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
}

// RedisConfig contains the redis connection used for lease locks
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LockConfig selects the lease lock backend
type LockConfig struct {
	Driver       string `mapstructure:"driver"` // database or redis
	LeaseSeconds int    `mapstructure:"leaseSeconds"`
}

// TransportConfig contains bank call settings
type TransportConfig struct {
	Timeout    time.Duration `mapstructure:"timeoutSeconds"` // seconds
	RetryCount int           `mapstructure:"retryCount"`
	UserAgent  string        `mapstructure:"userAgent"`
}

// GatewayConfig contains the settings of one bank gateway
type GatewayConfig struct {
	Enabled     bool              `mapstructure:"enabled"`
	Endpoint    string            `mapstructure:"endpoint"`
	StartPayURL string            `mapstructure:"startPayUrl"`
	CallbackURL string            `mapstructure:"callbackUrl"`
	Credentials map[string]string `mapstructure:"credentials"`
}

// PaymentConfig contains lifecycle settings
type PaymentConfig struct {
	ConfigSource  string `mapstructure:"configSource"` // file or database
	DefaultLocale string `mapstructure:"defaultLocale"`
	TimeZone      string `mapstructure:"timeZone"`
}

// SchedulerConfig contains the maintenance job settings
type SchedulerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	VerifyRetrySpec  string        `mapstructure:"verifyRetrySpec"`
	SettleRetrySpec  string        `mapstructure:"settleRetrySpec"`
	ExpirySpec       string        `mapstructure:"expirySpec"`
	ExpireAfter      time.Duration `mapstructure:"expireAfterMinutes"`      // minutes
	VerifyRetryAfter time.Duration `mapstructure:"verifyRetryAfterMinutes"` // minutes
	SettleRetryAfter time.Duration `mapstructure:"settleRetryAfterMinutes"` // minutes
	BatchSize        int           `mapstructure:"batchSize"`
}

// MetricsConfig contains prometheus settings
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TracingConfig contains opentelemetry settings
type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"serviceName"`
}
