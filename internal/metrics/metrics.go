package metrics

import (
	"sync"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements core.Recorder at compile time
var _ core.Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Session Metrics
	SessionsActive           prometheus.Gauge
	SessionsCreatedTotal     prometheus.Counter
	SessionValidationTotal   *prometheus.CounterVec
	SessionsRefreshedTotal   prometheus.Counter
	SessionsInvalidatedTotal *prometheus.CounterVec
	SessionsExpiredTotal     prometheus.Counter

	// CSRF Metrics
	CSRFFailuresTotal *prometheus.CounterVec

	// OAuth Metrics
	OAuthHandshakeTotal    *prometheus.CounterVec
	AuthOAuthCallbackTotal *prometheus.CounterVec

	// Account Status Metrics
	StatusChangesTotal *prometheus.CounterVec

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPDeniedTotal      *prometheus.CounterVec

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) core.Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		// Session Metrics
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sessions_active",
				Help: "Current number of unexpired sessions",
			},
		),
		SessionsCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_created_total",
				Help: "Total number of sessions created",
			},
		),
		SessionValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "session_validation_total",
				Help: "Total number of session token validations",
			},
			[]string{"result"}, // valid, missing, expired, inactive_user
		),
		SessionsRefreshedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_refreshed_total",
				Help: "Total number of sliding session extensions",
			},
		),
		SessionsInvalidatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessions_invalidated_total",
				Help: "Total number of sessions invalidated",
			},
			[]string{"reason"}, // logout, user_revoke, revoke_all, status_change
		),
		SessionsExpiredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sessions_expired_total",
				Help: "Total number of expired sessions removed by cleanup",
			},
		),

		// CSRF Metrics
		CSRFFailuresTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "csrf_failures_total",
				Help: "Total number of requests rejected by the CSRF guard",
			},
			[]string{"reason"}, // missing_cookie, missing_token, mismatch
		),

		// OAuth Metrics
		OAuthHandshakeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oauth_handshake_total",
				Help: "Total number of OAuth handshake state operations",
			},
			[]string{
				"stage",
				"result",
			}, // stage: begin, complete; result: success, invalid, error
		),
		AuthOAuthCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_oauth_callback_total",
				Help: "Total number of OAuth callback attempts",
			},
			[]string{
				"provider",
				"result",
			}, // provider: github, google; result: success, error
		),

		// Account Status Metrics
		StatusChangesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "account_status_changes_total",
				Help: "Total number of account status transitions",
			},
			[]string{"new_status"}, // active, suspended, banned
		),

		// HTTP Request Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "group", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "route"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),
		HTTPDeniedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_denied_total",
				Help: "Total number of requests answered with 401 or 403",
			},
			[]string{"group", "status"},
		),

		// Database Query Metrics
		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"}, // count_active_sessions
		),
	}

	return m
}

// RecordSessionCreated records a newly issued session
func (m *Metrics) RecordSessionCreated() {
	m.SessionsCreatedTotal.Inc()
	m.SessionsActive.Inc()
}

// RecordSessionValidation records the outcome of resolving a session token
func (m *Metrics) RecordSessionValidation(result string) {
	m.SessionValidationTotal.WithLabelValues(result).Inc()
}

// RecordSessionRefreshed records a sliding expiry extension
func (m *Metrics) RecordSessionRefreshed() {
	m.SessionsRefreshedTotal.Inc()
}

// RecordSessionInvalidated records count sessions removed for reason
func (m *Metrics) RecordSessionInvalidated(reason string, count int) {
	if count <= 0 {
		return
	}
	m.SessionsInvalidatedTotal.WithLabelValues(reason).Add(float64(count))
	m.SessionsActive.Sub(float64(count))
}

// RecordSessionsExpired records sessions swept by the cleanup job
func (m *Metrics) RecordSessionsExpired(count int) {
	if count <= 0 {
		return
	}
	m.SessionsExpiredTotal.Add(float64(count))
}

// RecordCSRFFailure records a rejected state-changing request
func (m *Metrics) RecordCSRFFailure(reason string) {
	m.CSRFFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordOAuthHandshake records an OAuth state begin/complete outcome
func (m *Metrics) RecordOAuthHandshake(stage, result string) {
	m.OAuthHandshakeTotal.WithLabelValues(stage, result).Inc()
}

// RecordOAuthCallback records OAuth callback
func (m *Metrics) RecordOAuthCallback(provider string, success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.AuthOAuthCallbackTotal.WithLabelValues(provider, result).Inc()
}

// RecordStatusChange records an account status transition
func (m *Metrics) RecordStatusChange(newStatus string) {
	m.StatusChangesTotal.WithLabelValues(newStatus).Inc()
}

// SetActiveSessionsCount sets the current count of active sessions (for periodic updates)
func (m *Metrics) SetActiveSessionsCount(count int) {
	m.SessionsActive.Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
