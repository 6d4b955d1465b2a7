package bootstrap

import (
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/auth"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/handlers"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"

	"go.uber.org/zap"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth        *handlers.AuthHandler
	oauth       *handlers.OAuthHandler
	session     *handlers.SessionHandler
	adminStatus *handlers.AdminStatusHandler
	adminAudit  *handlers.AdminAuditHandler
	providers   map[string]*auth.OAuthProvider
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	svc serviceSet,
	cookies middleware.CookieConfig,
	oauthProviders map[string]*auth.OAuthProvider,
	oauthHTTPClient *http.Client,
	prometheusMetrics core.Recorder,
	logger *zap.Logger,
) handlerSet {
	return handlerSet{
		auth:    handlers.NewAuthHandler(svc.sessions, svc.audit, cookies, logger),
		session: handlers.NewSessionHandler(svc.sessions, svc.audit, cookies, logger),
		oauth: handlers.NewOAuthHandler(
			oauthProviders,
			svc.handshakes,
			svc.users,
			svc.sessions,
			svc.audit,
			cookies,
			oauthHTTPClient,
			prometheusMetrics,
			logger,
		),
		adminStatus: handlers.NewAdminStatusHandler(svc.accounts, logger),
		adminAudit:  handlers.NewAdminAuditHandler(svc.audit, logger),
		providers:   oauthProviders,
	}
}
