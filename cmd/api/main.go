package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	gatewayport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/usecase/normalizer"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/usecase/payment"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/gateway/mellat"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/gateway/sadad"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/idgen"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/lock"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/scheduler"
	timeProvider "github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/tracing"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/transport/soap"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/config"
)

// maintenanceJobTimeout bounds one sweep of a maintenance job
const maintenanceJobTimeout = 2 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(logger.Options{
		Production:  cfg.Environment == config.Production,
		Level:       cfg.Logger.Level,
		ServiceName: cfg.Tracing.ServiceName,
	})
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider(timeProvider.LoadLocation(cfg.Payment.TimeZone))

	shutdownTracing, err := tracing.Setup(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: cfg.Tracing.ServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		fatal(appLogger, "Failed to set up tracing", err)
	}

	var appMetrics coreport.Metrics = metrics.NewNoopMetrics()
	var promMetrics *metrics.PrometheusMetrics
	if cfg.Metrics.Enabled {
		promMetrics = metrics.NewPrometheusMetrics()
		appMetrics = promMetrics
	}

	// Connect to the database
	dbConfig, err := database.FromAppConfig(cfg.Database)
	if err != nil {
		fatal(appLogger, "Invalid database configuration", err)
	}
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		fatal(appLogger, "Failed to connect to database", err)
	}
	defer func() { _ = dbManager.Close() }()

	seeds := gatewaySettings(cfg)
	if err := dbManager.Migrate(context.Background(), seeds); err != nil {
		fatal(appLogger, "Failed to run migrations", err)
	}

	if promMetrics != nil {
		sqlDB, err := dbManager.DB().DB()
		if err == nil {
			err = promMetrics.RegisterDBStats(sqlDB, cfg.Database.Database)
		}
		if err != nil {
			appLogger.Warn("Database pool metrics unavailable", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Gateways
	soapClient := soap.NewClient(soap.Config{
		Timeout:    cfg.Transport.Timeout,
		RetryCount: cfg.Transport.RetryCount,
		UserAgent:  cfg.Transport.UserAgent,
	}, appLogger, appMetrics)

	mellatCfg := cfg.Gateways[entity.GatewayMellat]
	sadadCfg := cfg.Gateways[entity.GatewaySadad]
	registry := gateway.NewRegistry(
		mellat.New(mellat.Config{Endpoint: mellatCfg.Endpoint, StartPayURL: mellatCfg.StartPayURL}, soapClient, tp, appLogger),
		sadad.New(sadad.Config{Endpoint: sadadCfg.Endpoint}, soapClient, appLogger),
	)

	staticSettings := gateway.NewStaticSettingsProvider(seeds)
	var settings gatewayport.SettingsProvider = staticSettings
	if strings.EqualFold(cfg.Payment.ConfigSource, "database") {
		settings = gateway.NewDatabaseSettingsProvider(
			repository.NewGatewayRepository(dbManager.DB(), appLogger),
			staticSettings,
			appLogger,
		)
	}

	// Use cases
	paymentService := payment.NewPaymentService(
		dbManager.CreateUnitOfWork(),
		registry,
		settings,
		normalizer.NewNormalizer(registry.CodeTables()),
		idgen.NewUUIDGenerator(tp),
		tp,
		appLogger,
		appMetrics,
	)

	leases, closeLeases, err := newLeaseRepository(cfg, dbManager, tp, appLogger)
	if err != nil {
		fatal(appLogger, "Failed to set up lease locks", err)
	}
	defer closeLeases()

	maintenance := payment.NewMaintenanceService(paymentService, leases, tp, appLogger, payment.MaintenanceConfig{
		VerifyRetryAfter: cfg.Scheduler.VerifyRetryAfter,
		SettleRetryAfter: cfg.Scheduler.SettleRetryAfter,
		ExpireAfter:      cfg.Scheduler.ExpireAfter,
		BatchSize:        cfg.Scheduler.BatchSize,
		LeaseDuration:    time.Duration(cfg.Lock.LeaseSeconds) * time.Second,
		Owner:            instanceName(),
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(scheduler.Config{
			VerifyRetrySpec: cfg.Scheduler.VerifyRetrySpec,
			SettleRetrySpec: cfg.Scheduler.SettleRetrySpec,
			ExpirySpec:      cfg.Scheduler.ExpirySpec,
			JobTimeout:      maintenanceJobTimeout,
		}, maintenance, appLogger)
		if err != nil {
			fatal(appLogger, "Failed to create scheduler", err)
		}
		sched.Start()
	}

	// HTTP API
	schemaValidator, err := middleware.NewSchemaValidator(middleware.InitiatePaymentSchema, appLogger)
	if err != nil {
		fatal(appLogger, "Failed to compile request schema", err)
	}

	router := gin.New()

	opts := routes.MiddlewareOptions{AllowedOrigins: cfg.Server.AllowedOrigins}
	if cfg.Tracing.Enabled {
		opts.ServiceName = cfg.Tracing.ServiceName
	}
	handlers := routes.Handlers{
		Payments: handler.NewPaymentHandler(paymentService, appLogger, entity.ParseLocale(cfg.Payment.DefaultLocale, entity.LocaleFA)),
		Health:   handler.NewHealthHandler(dbManager, dbManager.PoolMonitor(), appLogger),
		Schema:   schemaValidator,
	}
	if promMetrics != nil {
		opts.Observer = promMetrics
		handlers.Metrics = promMetrics.Handler()
		handlers.MetricsPath = cfg.Metrics.Path
	}

	routes.SetupMiddlewares(router, appLogger, opts)
	routes.SetupRoutes(router, handlers)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":     server.Addr,
			"env":      cfg.Environment,
			"gateways": registry.Names(),
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(appLogger, "Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if sched != nil {
		if err := sched.Stop(ctx); err != nil {
			appLogger.Warn("Maintenance jobs did not stop in time", map[string]any{
				"error": err.Error(),
			})
		}
	}

	if err := shutdownTracing(ctx); err != nil {
		appLogger.Warn("Failed to flush traces", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

func fatal(appLogger coreport.Logger, message string, err error) {
	appLogger.Error(message, map[string]any{
		"error": err.Error(),
	})
	_ = appLogger.Flush()
	os.Exit(1)
}

// gatewaySettings turns the configured gateways into settings records
func gatewaySettings(cfg *config.Config) []entity.GatewaySettings {
	settings := make([]entity.GatewaySettings, 0, len(cfg.Gateways))
	for name, g := range cfg.Gateways {
		settings = append(settings, entity.GatewaySettings{
			Name:            name,
			Enabled:         g.Enabled,
			Credentials:     entity.Credentials(g.Credentials),
			CallbackBaseURL: g.CallbackURL,
		})
	}
	return settings
}

// newLeaseRepository picks the lease backend. The returned func releases its resources.
func newLeaseRepository(
	cfg *config.Config,
	dbManager *database.Manager,
	tp coreport.TimeProvider,
	appLogger coreport.Logger,
) (persistence.LeaseRepository, func(), error) {
	if !strings.EqualFold(cfg.Lock.Driver, "redis") {
		return repository.NewLeaseRepository(dbManager.DB(), tp, appLogger), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := lock.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() {
		if err := client.Close(); err != nil {
			appLogger.Warn("Failed to close redis client", map[string]any{
				"error": err.Error(),
			})
		}
	}
	return lock.NewRedisLockRepository(client, appLogger), closeClient, nil
}

// instanceName identifies this process in lease records
func instanceName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "payment-gateway"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Database settings may come from PG_DATABASE_* environment variables
	required := map[string]string{
		"database.host":     cfg.Database.Host,
		"database.port":     cfg.Database.Port,
		"database.username": cfg.Database.Username,
		"database.database": cfg.Database.Database,
	}
	for key, value := range required {
		if value == "" {
			missingConfigs = append(missingConfigs, fmt.Sprintf("%s (or PG_%s environment variable)",
				key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))))
		}
	}
	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(cfg.Gateways) == 0 {
		missingConfigs = append(missingConfigs, "gateways")
	}
	for name, g := range cfg.Gateways {
		if name != entity.GatewayMellat && name != entity.GatewaySadad {
			return fmt.Errorf("unsupported gateway %q in configuration", name)
		}
		if g.Enabled && g.CallbackURL == "" {
			missingConfigs = append(missingConfigs, "gateways."+name+".callbackUrl")
		}
	}

	switch strings.ToLower(cfg.Lock.Driver) {
	case "database", "":
	case "redis":
		if cfg.Redis.Addr == "" {
			missingConfigs = append(missingConfigs, "redis.addr")
		}
	default:
		return fmt.Errorf("invalid lock driver: %s, must be database or redis", cfg.Lock.Driver)
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if cfg.Database.Driver != database.DriverMySQL && sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Transport.Timeout > cfg.Server.WriteTimeout {
			warnings = append(warnings, "transport.timeoutSeconds exceeds server.writeTimeout; callbacks may be cut off mid-verification")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
