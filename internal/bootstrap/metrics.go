package bootstrap

import (
	"github.com/pawafulu7/bonsai-cho-sub000/internal/config"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/metrics"

	"go.uber.org/zap"
)

// initializeMetrics returns the Prometheus recorder, or a no-op one when metrics are disabled
func initializeMetrics(cfg *config.Config, logger *zap.Logger) core.Recorder {
	if !cfg.MetricsEnabled {
		logger.Info("prometheus metrics disabled")
	}
	return metrics.Init(cfg.MetricsEnabled)
}
