package core

import (
	"context"
	"time"
)

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Session lifecycle
	RecordSessionCreated()
	RecordSessionValidation(result string)
	RecordSessionRefreshed()
	RecordSessionInvalidated(reason string, count int)
	RecordSessionsExpired(count int)

	// CSRF
	RecordCSRFFailure(reason string)

	// OAuth handshake
	RecordOAuthHandshake(stage, result string)
	RecordOAuthCallback(provider string, success bool)

	// Account status
	RecordStatusChange(newStatus string)

	// Gauge Setters (for periodic updates)
	SetActiveSessionsCount(count int)

	// Database Operations
	RecordDatabaseQueryError(operation string)
}

// MetricsStore defines the DB operations needed for periodic gauge updates.
type MetricsStore interface {
	CountActiveSessions(ctx context.Context, now time.Time) (int64, error)
}
