package models

import (
	"time"
)

// OAuthConnection links a user to an account at an OAuth provider
type OAuthConnection struct {
	ID             string `gorm:"primaryKey"`
	UserID         string `gorm:"not null;uniqueIndex:idx_oauth_user_provider,priority:1"`
	Provider       string `gorm:"not null;uniqueIndex:idx_oauth_provider_user,priority:1;uniqueIndex:idx_oauth_user_provider,priority:2"` // "github", "google"
	ProviderUserID string `gorm:"not null;uniqueIndex:idx_oauth_provider_user,priority:2"`

	// Provider profile snapshot
	ProviderUsername string
	ProviderEmail    string
	AvatarURL        string

	LastUsedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (OAuthConnection) TableName() string {
	return "oauth_connections"
}
