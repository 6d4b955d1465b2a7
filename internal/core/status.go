package core

import (
	"context"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
	"github.com/pawafulu7/bonsai-cho-sub000/internal/store"
)

// AccountStatusStore is the persistence the account status service needs.
// *store.Store satisfies it.
type AccountStatusStore interface {
	// GetUserStatus returns store.ErrRecordNotFound for unknown users.
	GetUserStatus(ctx context.Context, userID string) (models.UserStatus, error)
	ApplyUserStatusChange(ctx context.Context, entry *models.UserStatusHistory) error
	ListUserStatusHistory(
		ctx context.Context,
		userID string,
		limit int,
		after *store.Cursor,
	) ([]models.UserStatusHistory, error)
}

// SessionRevoker drops every session of a user.
type SessionRevoker interface {
	InvalidateAllUserSessions(ctx context.Context, userID string) (int64, error)
}
