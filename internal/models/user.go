package models

import (
	"time"

	"gorm.io/gorm"
)

// UserStatus is the account state of a user.
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"
)

// IsValid reports whether s is one of the known statuses.
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusSuspended, UserStatusBanned:
		return true
	default:
		return false
	}
}

// RevokesSessions reports whether entering s must cut off every live session.
func (s UserStatus) RevokesSessions() bool {
	return s == UserStatusSuspended || s == UserStatusBanned
}

type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"uniqueIndex;not null"`
	Email     string `gorm:"index"`
	Role      string `gorm:"not null;default:'user'"` // "admin" or "user"
	FullName  string
	AvatarURL string

	// Only the account status service writes this column.
	Status UserStatus `gorm:"type:varchar(20);not null;default:'active';index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

// IsActive returns true if the account may hold sessions
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == UserStatusActive
}
