package store

import (
	"context"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"

	"gorm.io/gorm"
)

// GetUserStatus returns the status column of a user
func (s *Store) GetUserStatus(ctx context.Context, userID string) (models.UserStatus, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Select("id", "status").
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		return "", translateError(err)
	}
	return user.Status, nil
}

// ApplyUserStatusChange writes the new status and appends the history entry
// in one transaction.
func (s *Store) ApplyUserStatusChange(ctx context.Context, entry *models.UserStatusHistory) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", entry.UserID).
			Update("status", entry.NewStatus)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return tx.Create(entry).Error
	})
}

// ListUserStatusHistory returns up to limit history rows for a user ordered by
// changed_at DESC, id DESC, starting strictly after cursor when given.
func (s *Store) ListUserStatusHistory(
	ctx context.Context,
	userID string,
	limit int,
	after *Cursor,
) ([]models.UserStatusHistory, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if after != nil {
		query = query.Where(
			"(changed_at < ? OR (changed_at = ? AND id < ?))",
			after.Time, after.Time, after.ID,
		)
	}

	var entries []models.UserStatusHistory
	err := query.
		Order("changed_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
