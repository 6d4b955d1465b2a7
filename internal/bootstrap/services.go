package bootstrap

import (
	"github.com/pawafulu7/bonsai-cho-sub000/internal/config"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/services"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"go.uber.org/zap"
)

// serviceSet holds the business services shared by handlers and jobs
type serviceSet struct {
	audit      *services.AuditService
	sessions   *services.SessionService
	handshakes *services.OAuthStateService
	accounts   *services.AccountStatusService
	users      *services.UserService
}

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	prometheusMetrics core.Recorder,
	logger *zap.Logger,
) serviceSet {
	// Audit service (required by other services)
	auditService := services.NewAuditService(
		db,
		logger,
		cfg.EnableAuditLogging,
		cfg.AuditLogBufferSize,
	)

	sessionService := services.NewSessionService(db, cfg.SessionLifetime, prometheusMetrics, logger)

	return serviceSet{
		audit:    auditService,
		sessions: sessionService,
		handshakes: services.NewOAuthStateService(
			db,
			cfg.AppSecret,
			cfg.OAuthStateTTL,
			prometheusMetrics,
			logger,
		),
		accounts: services.NewAccountStatusService(
			db,
			sessionService,
			auditService,
			prometheusMetrics,
			logger,
		),
		users: services.NewUserService(db, cfg.AdminEmails, logger),
	}
}
