package store

import (
	"context"
	"time"

	"github.com/pawafulu7/bonsai-cho-sub000/internal/models"

	"gorm.io/gorm"
)

// CreateOAuthState persists a handshake row keyed by its state value
func (s *Store) CreateOAuthState(ctx context.Context, state *models.OAuthState) error {
	return s.db.WithContext(ctx).Create(state).Error
}

// ConsumeOAuthState reads and deletes the handshake row in one transaction.
// Only the caller whose DELETE removes the row gets it back; a concurrent or
// repeated consumer sees ErrRecordNotFound.
func (s *Store) ConsumeOAuthState(ctx context.Context, id string) (*models.OAuthState, error) {
	var state models.OAuthState
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&state).Error; err != nil {
			return translateError(err)
		}

		result := tx.Where("id = ?", id).Delete(&models.OAuthState{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// DeleteExpiredOAuthStates removes handshake rows that expired before now
func (s *Store) DeleteExpiredOAuthStates(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&models.OAuthState{})
	return result.RowsAffected, result.Error
}
