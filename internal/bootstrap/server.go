package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/config"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/appleboy/graceful"
	"go.uber.org/zap"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server, logger *zap.Logger) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			logger.Info("server listening", zap.String("addr", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("failed to start server", zap.Error(err))
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(
	m *graceful.Manager,
	srv *http.Server,
	cfg *config.Config,
	logger *zap.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ServerShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
			return err
		}

		logger.Info("server exited")
		return nil
	})
}

// addAuditServiceShutdownJob flushes buffered audit events on shutdown
func addAuditServiceShutdownJob(
	m *graceful.Manager,
	auditService *services.AuditService,
	cfg *config.Config,
	logger *zap.Logger,
) {
	m.AddShutdownJob(func() error {
		logger.Info("shutting down audit service")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.AuditShutdownTimeout)
		defer cancel()

		if err := auditService.Shutdown(ctx); err != nil {
			logger.Error("error shutting down audit service", zap.Error(err))
			return err
		}
		return nil
	})
}

// addDatabaseCloseJob closes the database pool on shutdown
func addDatabaseCloseJob(m *graceful.Manager, db *store.Store, logger *zap.Logger) {
	m.AddShutdownJob(func() error {
		if err := db.Close(); err != nil {
			logger.Error("error closing database", zap.Error(err))
			return err
		}
		logger.Info("database connection closed")
		return nil
	})
}

// addSessionCleanupJob sweeps expired sessions, handshake states and old
// audit logs once at start-up and then on every cleanup interval
func addSessionCleanupJob(
	m *graceful.Manager,
	cfg *config.Config,
	svc serviceSet,
	logger *zap.Logger,
) {
	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.SessionCleanupInterval)
		defer ticker.Stop()

		// Run cleanup immediately on startup
		_ = runSweep(ctx, svc, cfg, logger)

		for {
			select {
			case <-ticker.C:
				_ = runSweep(ctx, svc, cfg, logger)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// runSweep deletes expired rows. Each step runs even when an earlier one
// fails; the first error is returned.
func runSweep(ctx context.Context, svc serviceSet, cfg *config.Config, logger *zap.Logger) error {
	var errs []error

	if deleted, err := svc.sessions.CleanupExpiredSessions(ctx); err != nil {
		logger.Error("failed to clean up expired sessions", zap.Error(err))
		errs = append(errs, err)
	} else if deleted > 0 {
		logger.Info("cleaned up expired sessions", zap.Int64("count", deleted))
	}

	if deleted, err := svc.handshakes.CleanupExpired(ctx); err != nil {
		logger.Error("failed to clean up expired oauth states", zap.Error(err))
		errs = append(errs, err)
	} else if deleted > 0 {
		logger.Info("cleaned up expired oauth states", zap.Int64("count", deleted))
	}

	if cfg.EnableAuditLogging && cfg.AuditLogRetention > 0 {
		if deleted, err := svc.audit.CleanupOldLogs(ctx, cfg.AuditLogRetention); err != nil {
			logger.Error("failed to clean up old audit logs", zap.Error(err))
			errs = append(errs, err)
		} else if deleted > 0 {
			logger.Info("cleaned up old audit logs", zap.Int64("count", deleted))
		}
	}

	return errors.Join(errs...)
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db core.MetricsStore,
	prometheusMetrics core.Recorder,
	logger *zap.Logger,
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return
	}

	errLogger := newErrorLogger(logger)

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		// Update immediately on startup
		updateGaugeMetrics(ctx, db, prometheusMetrics, errLogger)

		for {
			select {
			case <-ticker.C:
				updateGaugeMetrics(ctx, db, prometheusMetrics, errLogger)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// errorLogger handles rate-limited error logging
type errorLogger struct {
	mu              sync.Mutex
	logger          *zap.Logger
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
	now             func() time.Time
}

// newErrorLogger creates a new error logger with rate limiting
func newErrorLogger(logger *zap.Logger) *errorLogger {
	return &errorLogger{
		logger:          logger,
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: 5 * time.Minute, // Log at most once per 5 minutes per operation
		now:             time.Now,
	}
}

// logIfNeeded logs an error only if rate limit allows. It reports whether it logged.
func (e *errorLogger) logIfNeeded(operation string, err error) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	lastTime, exists := e.lastErrorTimes[operation]
	if exists && now.Sub(lastTime) < e.rateLimitWindow {
		return false
	}

	e.logger.Error("database query failed",
		zap.String("operation", operation),
		zap.Duration("suppressed_for", e.rateLimitWindow),
		zap.Error(err),
	)
	e.lastErrorTimes[operation] = now
	return true
}

// updateGaugeMetrics refreshes the active sessions gauge
func updateGaugeMetrics(
	ctx context.Context,
	db core.MetricsStore,
	m core.Recorder,
	errLogger *errorLogger,
) {
	activeSessions, err := db.CountActiveSessions(ctx, time.Now().UTC())
	if err != nil {
		m.RecordDatabaseQueryError("count_active_sessions")
		errLogger.logIfNeeded("count_active_sessions", err)
		return
	}
	m.SetActiveSessionsCount(int(activeSessions))
}
