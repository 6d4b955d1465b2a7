package models

import "time"

// Session is a server-side login session. ID is the SHA-256 hash of the bearer
// token; the raw token is never stored.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (Session) TableName() string {
	return "sessions"
}

// IsExpired checks if the session is expired at now
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
