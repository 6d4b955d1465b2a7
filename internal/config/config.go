package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Database driver constants
const (
	DatabaseDriverSQLite   = "sqlite"
	DatabaseDriverPostgres = "postgres"
)

// MinProductionSecretLength is the shortest APP_SECRET accepted in production
const MinProductionSecretLength = 32

const defaultAppSecret = "bonsai-dev-secret-change-in-production"

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string // Database connection string (DSN or path)

	// Timeouts
	DBInitTimeout         time.Duration
	DBCloseTimeout        time.Duration
	ServerShutdownTimeout time.Duration
	AuditShutdownTimeout  time.Duration

	// AppSecret encrypts PKCE verifiers held in the handshake store
	AppSecret string

	// Session settings
	SessionLifetime        time.Duration
	OAuthStateTTL          time.Duration
	CookieSecure           bool // Secure cookies with the __Host- prefix
	SessionCleanupInterval time.Duration

	// GitHub OAuth
	GitHubOAuthEnabled     bool
	GitHubClientID         string
	GitHubClientSecret     string
	GitHubOAuthRedirectURL string
	GitHubOAuthScopes      []string

	// Google OAuth
	GoogleOAuthEnabled     bool
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleOAuthRedirectURL string
	GoogleOAuthScopes      []string

	// OAuth HTTP Client Settings
	OAuthTimeout            time.Duration // HTTP client timeout for OAuth requests (default: 15s)
	OAuthInsecureSkipVerify bool          // Skip TLS verification for OAuth (dev/testing only, default: false)

	// Admin bootstrap: these emails get the admin role on first sign-in
	AdminEmails []string

	// Prometheus Metrics settings
	MetricsEnabled             bool
	MetricsToken               string // Bearer token for /metrics; empty means no auth
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration

	// Audit Logging settings
	EnableAuditLogging bool
	AuditLogBufferSize int
	AuditLogRetention  time.Duration // 0 keeps logs forever
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	// Determine database driver and DSN
	driver := getEnv("DATABASE_DRIVER", DatabaseDriverSQLite)
	var dsn string
	if driver == DatabaseDriverSQLite {
		dsn = getEnv("DATABASE_DSN", getEnv("DATABASE_PATH", "bonsai.db"))
	} else {
		dsn = getEnv("DATABASE_DSN", "")
	}

	baseURL := getEnv("BASE_URL", "http://localhost:8080")

	return &Config{
		ServerAddr:     getEnv("SERVER_ADDR", ":8080"),
		BaseURL:        baseURL,
		IsProduction:   getEnv("ENVIRONMENT", "development") == "production",
		DatabaseDriver: driver,
		DatabaseDSN:    dsn,

		DBInitTimeout:         getEnvDuration("DB_INIT_TIMEOUT", 30*time.Second),
		DBCloseTimeout:        getEnvDuration("DB_CLOSE_TIMEOUT", 5*time.Second),
		ServerShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		AuditShutdownTimeout:  getEnvDuration("AUDIT_SHUTDOWN_TIMEOUT", 10*time.Second),

		AppSecret: getEnv("APP_SECRET", defaultAppSecret),

		SessionLifetime:        getEnvDuration("SESSION_LIFETIME", 14*24*time.Hour),
		OAuthStateTTL:          getEnvDuration("OAUTH_STATE_TTL", 10*time.Minute),
		CookieSecure:           getEnvBool("COOKIE_SECURE", true),
		SessionCleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", time.Hour),

		// GitHub OAuth
		GitHubOAuthEnabled: getEnvBool("GITHUB_OAUTH_ENABLED", false),
		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		GitHubOAuthRedirectURL: getEnv(
			"GITHUB_REDIRECT_URL",
			baseURL+"/auth/github/callback",
		),
		GitHubOAuthScopes: getEnvSlice("GITHUB_SCOPES", []string{"read:user", "user:email"}),

		// Google OAuth
		GoogleOAuthEnabled: getEnvBool("GOOGLE_OAUTH_ENABLED", false),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleOAuthRedirectURL: getEnv(
			"GOOGLE_REDIRECT_URL",
			baseURL+"/auth/google/callback",
		),
		GoogleOAuthScopes: getEnvSlice("GOOGLE_SCOPES", []string{"openid", "email", "profile"}),

		// OAuth HTTP Client Settings
		OAuthTimeout:            getEnvDuration("OAUTH_TIMEOUT", 15*time.Second),
		OAuthInsecureSkipVerify: getEnvBool("OAUTH_INSECURE_SKIP_VERIFY", false),

		AdminEmails: getEnvSlice("ADMIN_EMAILS", nil),

		// Prometheus Metrics settings
		MetricsEnabled:             getEnvBool("METRICS_ENABLED", false),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", 5*time.Minute),

		// Audit Logging settings
		EnableAuditLogging: getEnvBool("AUDIT_ENABLED", true),
		AuditLogBufferSize: getEnvInt("AUDIT_BUFFER_SIZE", 1000),
		AuditLogRetention:  getEnvDuration("AUDIT_RETENTION", 90*24*time.Hour),
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DatabaseDriverSQLite:
	case DatabaseDriverPostgres:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf(
			"invalid DATABASE_DRIVER value: %q (must be %q or %q)",
			c.DatabaseDriver, DatabaseDriverSQLite, DatabaseDriverPostgres,
		)
	}

	if c.AppSecret == "" {
		return errors.New("APP_SECRET must not be empty")
	}
	if c.IsProduction {
		if c.AppSecret == defaultAppSecret {
			return errors.New("APP_SECRET must be changed in production")
		}
		if len(c.AppSecret) < MinProductionSecretLength {
			return fmt.Errorf(
				"APP_SECRET must be at least %d characters in production",
				MinProductionSecretLength,
			)
		}
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}
	if c.OAuthStateTTL <= 0 {
		return fmt.Errorf("OAUTH_STATE_TTL must be positive, got %s", c.OAuthStateTTL)
	}
	if c.SessionCleanupInterval <= 0 {
		return fmt.Errorf(
			"SESSION_CLEANUP_INTERVAL must be positive, got %s",
			c.SessionCleanupInterval,
		)
	}
	if c.AuditLogBufferSize < 1 {
		return fmt.Errorf("AUDIT_BUFFER_SIZE must be at least 1, got %d", c.AuditLogBufferSize)
	}
	if c.MetricsEnabled && c.MetricsGaugeUpdateEnabled && c.MetricsGaugeUpdateInterval <= 0 {
		return fmt.Errorf(
			"METRICS_GAUGE_UPDATE_INTERVAL must be positive, got %s",
			c.MetricsGaugeUpdateInterval,
		)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var i int
		if _, err := fmt.Sscanf(value, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		if parts := splitAndTrim(value, ","); len(parts) > 0 {
			return parts
		}
	}
	return defaultValue
}

func splitAndTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
