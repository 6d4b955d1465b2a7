package metrics

import "github.com/pawafulu7/bonsai-cho-sub000/internal/core"

// NoopMetrics is a no-operation implementation of core.Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements core.Recorder at compile time
var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() core.Recorder {
	return &NoopMetrics{}
}

// Session lifecycle - noop implementations
func (n *NoopMetrics) RecordSessionCreated()                             {}
func (n *NoopMetrics) RecordSessionValidation(result string)             {}
func (n *NoopMetrics) RecordSessionRefreshed()                           {}
func (n *NoopMetrics) RecordSessionInvalidated(reason string, count int) {}
func (n *NoopMetrics) RecordSessionsExpired(count int)                   {}

// CSRF - noop implementation
func (n *NoopMetrics) RecordCSRFFailure(reason string) {}

// OAuth - noop implementations
func (n *NoopMetrics) RecordOAuthHandshake(stage, result string)         {}
func (n *NoopMetrics) RecordOAuthCallback(provider string, success bool) {}

// Account status - noop implementation
func (n *NoopMetrics) RecordStatusChange(newStatus string) {}

// Gauge Setters - noop implementations
func (n *NoopMetrics) SetActiveSessionsCount(count int) {}

// Database Operations - noop implementations
func (n *NoopMetrics) RecordDatabaseQueryError(operation string) {}
