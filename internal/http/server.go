// Package http provides the API server: routing, shared middleware, and
// lifecycle management.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditHTTP "github.com/lifekey/lifekey/internal/audit/http"
	claimHTTP "github.com/lifekey/lifekey/internal/claims/http"
	"github.com/lifekey/lifekey/internal/config"
	"github.com/lifekey/lifekey/internal/metrics"
	releaseHTTP "github.com/lifekey/lifekey/internal/release/http"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
	vaultHTTP "github.com/lifekey/lifekey/internal/vault/http"
	willHTTP "github.com/lifekey/lifekey/internal/will/http"
)

// Handlers bundles the module handlers mounted on the API server.
type Handlers struct {
	User    *userHTTP.UserHandler
	Vault   *vaultHTTP.VaultItemHandler
	Will    *willHTTP.WillHandler
	Claim   *claimHTTP.ClaimHandler
	Release *releaseHTTP.ReleaseHandler
	Audit   *auditHTTP.AuditEventHandler

	// Session authenticates owner endpoints.
	Session gin.HandlerFunc
}

// Server represents the API HTTP server.
type Server struct {
	config          *config.Config
	db              *sql.DB
	logger          *slog.Logger
	metricsProvider *metrics.Provider
	handlers        Handlers
	router          *gin.Engine
	server          *http.Server
}

// NewServer creates a new API server. SetupRouter must be called before Start.
func NewServer(
	cfg *config.Config,
	db *sql.DB,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
	handlers Handlers,
) *Server {
	return &Server{
		config:          cfg,
		db:              db,
		logger:          logger,
		metricsProvider: metricsProvider,
		handlers:        handlers,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the route table and shared middleware chain.
func (s *Server) SetupRouter() *gin.Engine {
	gin.SetMode(s.config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if s.metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(s.metricsProvider.MeterProvider(), s.config.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	// Unauthenticated endpoints. The claim and redemption routes are the
	// public attack surface, so they are rate limited per IP.
	publicLimit := s.publicRateLimit()

	v1 := router.Group("/v1")
	v1.POST("/auth/register", s.handlers.User.RegisterHandler)
	v1.POST("/auth/login", s.handlers.User.LoginHandler)
	v1.POST("/claims", append(publicLimit, s.handlers.Claim.SubmitHandler)...)

	router.GET("/release/:token", append(publicLimit, s.handlers.Release.ViewHandler)...)

	// Owner endpoints behind the session middleware.
	authenticated := v1.Group("", s.handlers.Session)
	authenticated.GET("/users/me", s.handlers.User.MeHandler)

	authenticated.POST("/vault-items", s.handlers.Vault.CreateHandler)
	authenticated.GET("/vault-items", s.handlers.Vault.ListHandler)
	authenticated.GET("/vault-items/:id", s.handlers.Vault.GetHandler)
	authenticated.DELETE("/vault-items/:id", s.handlers.Vault.DeleteHandler)

	authenticated.POST("/recipients", s.handlers.Will.AddRecipientHandler)
	authenticated.GET("/recipients", s.handlers.Will.ListRecipientsHandler)

	authenticated.POST("/policies", s.handlers.Will.CreatePolicyHandler)
	authenticated.GET("/policies", s.handlers.Will.ListPoliciesHandler)
	authenticated.PATCH("/policies/:id/status", s.handlers.Will.UpdatePolicyStatusHandler)
	authenticated.GET("/policies/:id/assignments", s.handlers.Will.ListAssignmentsHandler)

	authenticated.POST("/assignments", s.handlers.Will.CreateAssignmentHandler)

	authenticated.GET("/claims/:id", s.handlers.Claim.GetHandler)
	authenticated.POST("/claims/:id/approve", s.handlers.Claim.ApproveHandler)
	authenticated.POST("/claims/:id/deny", s.handlers.Claim.DenyHandler)
	authenticated.POST("/claims/:id/issue-releases", s.handlers.Release.IssueHandler)

	authenticated.GET("/audit-events", s.handlers.Audit.ListHandler)

	s.router = router
	s.server.Handler = router
	return router
}

// publicRateLimit returns the middleware chain prefix for unauthenticated
// endpoints. Empty when rate limiting is disabled.
func (s *Server) publicRateLimit() []gin.HandlerFunc {
	if !s.config.RateLimitEnabled {
		return nil
	}
	return []gin.HandlerFunc{
		RateLimitMiddleware(s.config.RateLimitRequestsPerSec, s.config.RateLimitBurst, s.logger),
	}
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can reach its dependencies.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{"database": "ok"}

	ready := true
	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the API server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		s.SetupRouter()
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
