package store

import (
	"context"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
)

// CreateAuditLog writes one audit log entry
func (s *Store) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

// CreateAuditLogBatch writes audit log entries in batches of 100
func (s *Store) CreateAuditLogBatch(ctx context.Context, logs []*models.AuditLog) error {
	if len(logs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}

// DeleteOldAuditLogs deletes audit logs created before cutoff
func (s *Store) DeleteOldAuditLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return result.RowsAffected, result.Error
}

// ListAuditLogsByEvent returns the newest audit logs of one event type
func (s *Store) ListAuditLogsByEvent(
	ctx context.Context,
	eventType models.EventType,
	limit int,
) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := s.db.WithContext(ctx).
		Where("event_type = ?", eventType).
		Order("event_time DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
