package models

import "time"

// UserStatusHistory is an append-only record of one account status transition.
// Rows are never updated.
type UserStatusHistory struct {
	ID     string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID string `gorm:"type:varchar(36);not null;index:idx_status_history_user_time,priority:1" json:"user_id"`

	PreviousStatus UserStatus `gorm:"type:varchar(20);not null" json:"previous_status"`
	NewStatus      UserStatus `gorm:"type:varchar(20);not null" json:"new_status"`

	Reason    *string   `gorm:"type:text"        json:"reason,omitempty"`
	ChangedBy *string   `gorm:"type:varchar(36)" json:"changed_by,omitempty"`
	IPAddress *string   `gorm:"type:varchar(45)" json:"ip_address,omitempty"` // Support IPv6
	ChangedAt time.Time `gorm:"not null;index:idx_status_history_user_time,priority:2" json:"changed_at"`
}

// TableName specifies the table name for GORM
func (UserStatusHistory) TableName() string {
	return "user_status_history"
}
