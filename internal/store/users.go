package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"

	"gorm.io/gorm"
)

// GetUserByID returns a user that is not soft-deleted
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// GetUserByUsername returns a user by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

// CreateUser creates a new user
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameConflict
	}
	return err
}

// UpdateUserProfile updates the profile columns of a user. Status and role
// are left untouched.
func (s *Store) UpdateUserProfile(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"email":      user.Email,
			"full_name":  user.FullName,
			"avatar_url": user.AvatarURL,
		}).Error
}

// SoftDeleteUser marks a user as deleted
func (s *Store) SoftDeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error
}

// GetOAuthConnection finds an OAuth connection by provider and provider user ID
func (s *Store) GetOAuthConnection(
	ctx context.Context,
	provider, providerUserID string,
) (*models.OAuthConnection, error) {
	var conn models.OAuthConnection
	err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&conn).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &conn, nil
}

// UpdateOAuthConnection updates an existing OAuth connection
func (s *Store) UpdateOAuthConnection(ctx context.Context, conn *models.OAuthConnection) error {
	return s.db.WithContext(ctx).Save(conn).Error
}

// CreateUserWithConnection creates a user and its first OAuth connection atomically
func (s *Store) CreateUserWithConnection(
	ctx context.Context,
	user *models.User,
	conn *models.OAuthConnection,
) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameConflict
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		conn.UserID = user.ID
		if err := tx.Create(conn).Error; err != nil {
			return fmt.Errorf("failed to create oauth connection: %w", err)
		}
		return nil
	})
}
