// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditHTTP "github.com/lifekey/lifekey/internal/audit/http"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	"github.com/lifekey/lifekey/internal/blob"
	claimHTTP "github.com/lifekey/lifekey/internal/claims/http"
	claimUseCase "github.com/lifekey/lifekey/internal/claims/usecase"
	"github.com/lifekey/lifekey/internal/config"
	"github.com/lifekey/lifekey/internal/database"
	"github.com/lifekey/lifekey/internal/http"
	"github.com/lifekey/lifekey/internal/metrics"
	releaseHTTP "github.com/lifekey/lifekey/internal/release/http"
	releaseService "github.com/lifekey/lifekey/internal/release/service"
	releaseUseCase "github.com/lifekey/lifekey/internal/release/usecase"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
	userService "github.com/lifekey/lifekey/internal/user/service"
	userUseCase "github.com/lifekey/lifekey/internal/user/usecase"
	vaultHTTP "github.com/lifekey/lifekey/internal/vault/http"
	vaultService "github.com/lifekey/lifekey/internal/vault/service"
	vaultUseCase "github.com/lifekey/lifekey/internal/vault/usecase"
	willHTTP "github.com/lifekey/lifekey/internal/will/http"
	willUseCase "github.com/lifekey/lifekey/internal/will/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	documentStore   *blob.BucketStore

	// Services
	passwordService   userService.PasswordService
	sessionCodec      userService.SessionTokenCodec
	payloadCipher     vaultService.PayloadCipher
	releaseTokenCodec releaseService.ReleaseTokenCodec

	// Repositories
	userRepo       userUseCase.UserRepository
	auditEventRepo auditUseCase.AuditEventRepository
	vaultItemRepo  vaultUseCase.VaultItemRepository
	recipientRepo  willUseCase.RecipientRepository
	policyRepo     willUseCase.PolicyRepository
	assignmentRepo willUseCase.AssignmentRepository
	claimRepo      claimUseCase.ClaimRepository
	releaseRepo    releaseUseCase.ReleaseRepository

	// Use cases
	userUC    userUseCase.UserUseCase
	auditUC   auditUseCase.AuditUseCase
	vaultUC   vaultUseCase.VaultUseCase
	willUC    willUseCase.WillUseCase
	claimUC   claimUseCase.ClaimUseCase
	releaseUC releaseUseCase.ReleaseUseCase

	// Handlers
	userHandler    *userHTTP.UserHandler
	vaultHandler   *vaultHTTP.VaultItemHandler
	willHandler    *willHTTP.WillHandler
	claimHandler   *claimHTTP.ClaimHandler
	releaseHandler *releaseHTTP.ReleaseHandler
	auditHandler   *auditHTTP.AuditEventHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	txManagerInit         sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	documentStoreInit     sync.Once
	passwordServiceInit   sync.Once
	sessionCodecInit      sync.Once
	payloadCipherInit     sync.Once
	releaseTokenCodecInit sync.Once
	userRepoInit          sync.Once
	auditEventRepoInit    sync.Once
	vaultItemRepoInit     sync.Once
	recipientRepoInit     sync.Once
	policyRepoInit        sync.Once
	assignmentRepoInit    sync.Once
	claimRepoInit         sync.Once
	releaseRepoInit       sync.Once
	userUCInit            sync.Once
	auditUCInit           sync.Once
	vaultUCInit           sync.Once
	willUCInit            sync.Once
	claimUCInit           sync.Once
	releaseUCInit         sync.Once
	userHandlerInit       sync.Once
	vaultHandlerInit      sync.Once
	willHandlerInit       sync.Once
	claimHandlerInit      sync.Once
	releaseHandlerInit    sync.Once
	auditHandlerInit      sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry metrics provider.
// Returns nil without error when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// DocumentStore returns the blob store for uploaded claim documents.
func (c *Container) DocumentStore() (*blob.BucketStore, error) {
	c.documentStoreInit.Do(func() {
		store, err := blob.OpenStore(context.Background(), c.config.BlobStoreURL)
		if err != nil {
			c.initErrors["documentStore"] = fmt.Errorf("failed to open document store: %w", err)
			return
		}
		c.documentStore = store
	})
	if storedErr, exists := c.initErrors["documentStore"]; exists {
		return nil, storedErr
	}
	return c.documentStore, nil
}

// HTTPServer returns the API HTTP server with all routes wired.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server.
// Returns nil without error when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.documentStore != nil {
		if err := c.documentStore.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("document store close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a structured logger based on the configured log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer creates the API server with all its handlers.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	vaultHandler, err := c.VaultItemHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault item handler for http server: %w", err)
	}

	willHandler, err := c.WillHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get will handler for http server: %w", err)
	}

	claimHandler, err := c.ClaimHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get claim handler for http server: %w", err)
	}

	releaseHandler, err := c.ReleaseHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get release handler for http server: %w", err)
	}

	auditHandler, err := c.AuditEventHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event handler for http server: %w", err)
	}

	userUC, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	handlers := http.Handlers{
		User:    userHandler,
		Vault:   vaultHandler,
		Will:    willHandler,
		Claim:   claimHandler,
		Release: releaseHandler,
		Audit:   auditHandler,
		Session: userHTTP.SessionMiddleware(c.SessionTokenCodec(), userUC, c.Logger()),
	}

	return http.NewServer(c.config, db, c.Logger(), metricsProvider, handlers), nil
}
