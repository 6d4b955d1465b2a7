package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/config"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/version"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config
	Logger *zap.Logger

	// Core infrastructure
	DB              *store.Store
	MetricsRecorder core.Recorder

	// Services
	Services serviceSet
	Cookies  middleware.CookieConfig

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	// Phase 3: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 4: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// RunCleanup performs a single sweep of expired sessions, handshake states
// and old audit logs, then exits
func RunCleanup(cfg *config.Config) error {
	app, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBInitTimeout)
	defer cancel()

	sweepErr := runSweep(ctx, app.Services, cfg, app.Logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.AuditShutdownTimeout)
	defer shutdownCancel()
	if err := app.Services.audit.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("audit service shutdown failed", zap.Error(err))
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Warn("failed to close database", zap.Error(err))
	}

	return sweepErr
}

// newApplication validates configuration and builds infrastructure and services
func newApplication(cfg *config.Config) (*Application, error) {
	// Phase 1: Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("starting", zap.String("version", version.String()))

	app := &Application{
		Config: cfg,
		Logger: logger,
	}

	// Phase 2: Initialize infrastructure and business layer
	if err := app.initializeInfrastructure(); err != nil {
		return nil, err
	}
	app.initializeBusinessLayer()

	return app, nil
}

// newLogger builds the process logger and installs it as the zap global
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

// initializeInfrastructure sets up database and metrics
func (app *Application) initializeInfrastructure() error {
	var err error

	// Database
	app.DB, err = initializeDatabase(context.Background(), app.Config)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config, app.Logger)

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.Services = initializeServices(app.Config, app.DB, app.MetricsRecorder, app.Logger)
	app.Cookies = middleware.NewCookieConfig(app.Config.CookieSecure, app.Services.sessions.Lifetime())
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	// OAuth setup
	oauthProviders := initializeOAuthProviders(app.Config, app.Logger)
	logOAuthProvidersStatus(oauthProviders, app.Logger)
	oauthHTTPClient, err := createOAuthHTTPClient(app.Config, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create OAuth HTTP client: %w", err)
	}

	// Handlers
	app.HandlerSet = initializeHandlers(
		app.Services,
		app.Cookies,
		oauthProviders,
		oauthHTTPClient,
		app.MetricsRecorder,
		app.Logger,
	)

	// Router
	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.HandlerSet,
		app.Services,
		app.Cookies,
		app.MetricsRecorder,
		app.Logger,
	)

	// HTTP Server
	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	// Add jobs
	addServerRunningJob(m, app.Server, app.Logger)
	addServerShutdownJob(m, app.Server, app.Config, app.Logger)
	addSessionCleanupJob(m, app.Config, app.Services, app.Logger)
	addAuditServiceShutdownJob(m, app.Services.audit, app.Config, app.Logger)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.Logger)
	addDatabaseCloseJob(m, app.DB, app.Logger)

	// Wait for graceful shutdown
	<-m.Done()
}
