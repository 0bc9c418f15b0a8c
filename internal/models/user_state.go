package models

import (
	"time"
)

// UserState holds the signed-in account and the anonymous tracking id.
// There is a single row with ID "default".
type UserState struct {
	ID         string    `gorm:"primaryKey;size:64" json:"id"`
	Email      string    `gorm:"size:255" json:"email"`
	AuthToken  string    `gorm:"type:text" json:"-"`
	TrackingID string    `gorm:"size:64" json:"tracking_id"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (UserState) TableName() string {
	return "user_state"
}

// IsSignedIn returns true if an auth token is stored.
func (s *UserState) IsSignedIn() bool {
	return s.AuthToken != ""
}
