package models

import "time"

// OAuthState is a single-use OAuth handshake record keyed by the state value
// sent to the provider. CodeVerifier holds the encrypted PKCE verifier.
type OAuthState struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`
	CodeVerifier string    `gorm:"type:text;not null"`
	Provider     string    `gorm:"type:varchar(32);not null"`
	ReturnTo     *string   `gorm:"type:text"`
	Nonce        *string   `gorm:"type:varchar(64)"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (OAuthState) TableName() string {
	return "oauth_states"
}

// IsExpired checks if the handshake state is expired at now
func (s *OAuthState) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
