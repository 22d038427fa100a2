package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the club member identity row. It is owned by the auth service
// (OAuth login, profile edit live there); this service reads it for
// rankings and writes only the points counter via attendance check-in.
type User struct {
	ID            string  `json:"id" gorm:"primaryKey;type:uuid"`
	Email         string  `json:"email" gorm:"uniqueIndex;not null"`
	Nickname      string  `json:"nickname" gorm:"index;not null"`
	ProfileImage  *string `json:"profile_image,omitempty"`
	OAuthProvider string  `json:"oauth_provider,omitempty" gorm:"type:varchar(32)"`
	OAuthID       string  `json:"oauth_id,omitempty" gorm:"index"`

	// Attendance points (daily check-in)
	Points int64 `json:"points" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
