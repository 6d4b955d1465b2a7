package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/core"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusChangeResult reports the status a user had before a change request
// and whether the request was applied. Success is false only when the target
// user does not exist.
type StatusChangeResult struct {
	PreviousStatus models.UserStatus `json:"previous_status"`
	Success        bool              `json:"success"`
}

// StatusChangeOptions carries the optional audit context of a status change
type StatusChangeOptions struct {
	Reason    string
	ChangedBy string
	IPAddress string
}

// StatusHistoryPage is one page of a user's status history, newest first
type StatusHistoryPage struct {
	Entries    []models.UserStatusHistory `json:"entries"`
	HasMore    bool                       `json:"has_more"`
	NextCursor string                     `json:"next_cursor,omitempty"`
}

// AccountStatusService is the only writer of users.status. Every transition
// appends a history row; entering suspended or banned revokes all sessions.
type AccountStatusService struct {
	store    core.AccountStatusStore
	sessions core.SessionRevoker
	audit    *AuditService
	metrics  core.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewAccountStatusService creates a new account status service
func NewAccountStatusService(
	s core.AccountStatusStore,
	sessions core.SessionRevoker,
	audit *AuditService,
	m core.Recorder,
	logger *zap.Logger,
) *AccountStatusService {
	if logger == nil {
		logger = zap.L()
	}
	return &AccountStatusService{
		store:    s,
		sessions: sessions,
		audit:    audit,
		metrics:  m,
		logger:   logger.Named("account_status"),
		now:      time.Now,
	}
}

// ChangeUserStatus moves userID to newStatus. Asking for the current status is
// a successful no-op. A missing user is reported as Success=false, not an error.
func (s *AccountStatusService) ChangeUserStatus(
	ctx context.Context,
	userID string,
	newStatus models.UserStatus,
	opts StatusChangeOptions,
) (StatusChangeResult, error) {
	if !newStatus.IsValid() {
		return StatusChangeResult{}, ErrInvalidStatus
	}

	previous, err := s.store.GetUserStatus(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return StatusChangeResult{Success: false}, nil
		}
		return StatusChangeResult{}, fmt.Errorf("failed to load user status: %w", err)
	}

	if previous == newStatus {
		return StatusChangeResult{PreviousStatus: previous, Success: true}, nil
	}

	entry := &models.UserStatusHistory{
		ID:             uuid.New().String(),
		UserID:         userID,
		PreviousStatus: previous,
		NewStatus:      newStatus,
		Reason:         optionalString(opts.Reason),
		ChangedBy:      optionalString(opts.ChangedBy),
		IPAddress:      optionalString(opts.IPAddress),
		ChangedAt:      s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.store.ApplyUserStatusChange(ctx, entry); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return StatusChangeResult{PreviousStatus: previous, Success: false}, nil
		}
		return StatusChangeResult{}, fmt.Errorf("failed to apply status change: %w", err)
	}

	var revoked int64
	if newStatus.RevokesSessions() {
		revoked, err = s.sessions.InvalidateAllUserSessions(ctx, userID)
		if err != nil {
			return StatusChangeResult{}, fmt.Errorf("failed to revoke sessions: %w", err)
		}
	}

	s.logger.Info("user status changed",
		zap.String("user_id", userID),
		zap.String("previous_status", string(previous)),
		zap.String("new_status", string(newStatus)),
		zap.String("changed_by", opts.ChangedBy),
		zap.Int64("sessions_revoked", revoked),
	)
	s.metrics.RecordStatusChange(string(newStatus))
	s.audit.Log(ctx, AuditLogEntry{
		EventType:    models.EventUserStatusChanged,
		Severity:     statusChangeSeverity(newStatus),
		ActorUserID:  opts.ChangedBy,
		ActorIP:      opts.IPAddress,
		ResourceType: models.ResourceUser,
		ResourceID:   userID,
		Action:       fmt.Sprintf("Status changed from %s to %s", previous, newStatus),
		Details: models.AuditDetails{
			"previous_status":  string(previous),
			"new_status":       string(newStatus),
			"reason":           opts.Reason,
			"sessions_revoked": revoked,
		},
		Success: true,
	})

	return StatusChangeResult{PreviousStatus: previous, Success: true}, nil
}

// BanUser moves userID to banned
func (s *AccountStatusService) BanUser(
	ctx context.Context,
	userID string,
	opts StatusChangeOptions,
) (StatusChangeResult, error) {
	return s.ChangeUserStatus(ctx, userID, models.UserStatusBanned, opts)
}

// SuspendUser moves userID to suspended
func (s *AccountStatusService) SuspendUser(
	ctx context.Context,
	userID string,
	opts StatusChangeOptions,
) (StatusChangeResult, error) {
	return s.ChangeUserStatus(ctx, userID, models.UserStatusSuspended, opts)
}

// UnbanUser moves userID back to active. Revoked sessions stay revoked.
func (s *AccountStatusService) UnbanUser(
	ctx context.Context,
	userID string,
	opts StatusChangeOptions,
) (StatusChangeResult, error) {
	return s.ChangeUserStatus(ctx, userID, models.UserStatusActive, opts)
}

// GetUserStatus returns the status of userID or ErrUserNotFound
func (s *AccountStatusService) GetUserStatus(
	ctx context.Context,
	userID string,
) (models.UserStatus, error) {
	status, err := s.store.GetUserStatus(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to load user status: %w", err)
	}
	return status, nil
}

// GetUserStatusHistory returns one page of history, newest first. It fetches
// one extra row to decide HasMore without counting.
func (s *AccountStatusService) GetUserStatusHistory(
	ctx context.Context,
	userID string,
	params store.CursorParams,
) (*StatusHistoryPage, error) {
	params = store.NewCursorParams(params.Limit, params.Cursor)
	after, err := store.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	entries, err := s.store.ListUserStatusHistory(ctx, userID, limit+1, after)
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	page := &StatusHistoryPage{Entries: entries}
	if len(entries) > limit {
		page.Entries = entries[:limit]
		page.HasMore = true
		last := page.Entries[len(page.Entries)-1]
		page.NextCursor = store.EncodeCursor(last.ChangedAt, last.ID)
	}
	if page.Entries == nil {
		page.Entries = []models.UserStatusHistory{}
	}
	return page, nil
}

func statusChangeSeverity(status models.UserStatus) models.EventSeverity {
	if status.RevokesSessions() {
		return models.SeverityWarning
	}
	return models.SeverityInfo
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
