package bootstrap

import (
	"net/http"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/config"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/handlers"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/metrics"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/middleware"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	h handlerSet,
	svc serviceSet,
	cookies middleware.CookieConfig,
	prometheusMetrics core.Recorder,
	logger *zap.Logger,
) *gin.Engine {
	// Setup Gin mode
	setupGinMode(cfg, logger)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Recovery())
	r.Use(util.IPMiddleware())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.SessionMiddleware(svc.sessions, cookies, logger))

	// Health check endpoint
	r.GET("/health", handlers.HealthCheck(db))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg, logger)

	// Swagger documentation (development only)
	if !cfg.IsProduction {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		logger.Info("swagger UI enabled at /swagger/index.html")
	}

	csrf := middleware.CSRFMiddleware(cookies, prometheusMetrics, svc.audit, logger)

	// Setup all routes
	setupAllRoutes(r, h, csrf)

	logger.Info("server configured",
		zap.String("addr", cfg.ServerAddr),
		zap.String("base_url", cfg.BaseURL),
		zap.String("database_driver", cfg.DatabaseDriver),
		zap.Bool("secure_cookies", cfg.CookieSecure),
	)

	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config, logger *zap.Logger) {
	switch {
	case !cfg.MetricsEnabled:
		// Nothing to expose
	case cfg.MetricsToken != "":
		logger.Info("prometheus metrics enabled at /metrics with bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		logger.Info("prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(r *gin.Engine, h handlerSet, csrf gin.HandlerFunc) {
	// Sign-in routes (public). The callback is a top-level GET navigation
	// from the provider and is protected by the single-use state instead.
	authGroup := r.Group("/auth")
	{
		if len(h.providers) > 0 {
			authGroup.GET("/:provider/login", h.oauth.LoginWithProvider)
			authGroup.GET("/:provider/callback", h.oauth.OAuthCallback)
		}
		authGroup.POST("/logout", csrf, h.auth.Logout)
		authGroup.GET("/me", middleware.RequireAuth(), h.auth.Me)
	}

	// Account routes (require login)
	account := r.Group("/account")
	account.Use(middleware.RequireAuth(), csrf)
	{
		account.GET("/sessions", h.session.ListSessions)
		account.DELETE("/sessions/:id", h.session.RevokeSession)
		account.POST("/sessions/revoke-all", h.session.RevokeAllSessions)
	}

	// Admin routes (require admin role)
	admin := r.Group("/admin")
	admin.Use(
		middleware.RequireAuth(),
		middleware.RequireAdmin(),
		csrf,
	)
	{
		admin.POST("/users/:id/ban", h.adminStatus.BanUser)
		admin.POST("/users/:id/suspend", h.adminStatus.SuspendUser)
		admin.POST("/users/:id/unban", h.adminStatus.UnbanUser)
		admin.GET("/users/:id/status", h.adminStatus.GetUserStatus)
		admin.GET("/users/:id/status/history", h.adminStatus.GetUserStatusHistory)
		admin.GET("/audit", h.adminAudit.ListAuditLogs)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "Route not found",
		})
	})
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config, logger *zap.Logger) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	logger.Info("gin mode", zap.String("mode", ginModeLogMessage[cfg.IsProduction]))
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}
