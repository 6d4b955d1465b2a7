package store

import (
	"context"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"
)

// CreateSession persists a new session row
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	return s.db.WithContext(ctx).Create(session).Error
}

// GetActiveSession returns the session with the given hash together with its
// owner, provided the session has not expired at now and the owner is not
// soft-deleted. Any miss is ErrRecordNotFound.
func (s *Store) GetActiveSession(
	ctx context.Context,
	id string,
	now time.Time,
) (*models.Session, *models.User, error) {
	var session models.Session
	err := s.db.WithContext(ctx).
		Joins("JOIN users ON users.id = sessions.user_id AND users.deleted_at IS NULL").
		Where("sessions.id = ? AND sessions.expires_at > ?", id, now).
		First(&session).Error
	if err != nil {
		return nil, nil, translateError(err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", session.UserID).First(&user).Error; err != nil {
		return nil, nil, translateError(err)
	}

	return &session, &user, nil
}

// GetSession returns a session by hash regardless of expiry
func (s *Store) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&session).Error; err != nil {
		return nil, translateError(err)
	}
	return &session, nil
}

// UpdateSessionExpiry moves a session's expiry to expiresAt
func (s *Store) UpdateSessionExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		Update("expires_at", expiresAt).Error
}

// DeleteSession deletes a session by hash. Deleting a missing row is not an error.
func (s *Store) DeleteSession(ctx context.Context, id string) (int64, error) {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// DeleteSessionForUser deletes a session only if it belongs to userID
func (s *Store) DeleteSessionForUser(ctx context.Context, id, userID string) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// DeleteSessionsByUserID deletes every session of a user
func (s *Store) DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error) {
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// DeleteExpiredSessions removes all sessions that expired before now
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// ListActiveSessions returns a user's unexpired sessions, newest first
func (s *Store) ListActiveSessions(
	ctx context.Context,
	userID string,
	now time.Time,
) ([]models.Session, error) {
	var sessions []models.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND expires_at > ?", userID, now).
		Order("created_at DESC").
		Find(&sessions).Error
	return sessions, err
}

// CountActiveSessions counts unexpired sessions across all users
func (s *Store) CountActiveSessions(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("expires_at > ?", now).
		Count(&count).Error
	return count, err
}
