package models

import "time"

// Attendance is one daily check-in. The (user, date) unique index makes a
// second check-in on the same day a constraint conflict, not a second row.
type Attendance struct {
	ID             string  `json:"id" gorm:"primaryKey;type:uuid"`
	UserID         string  `json:"user_id" gorm:"uniqueIndex:idx_user_day;not null"`
	GroupID        *string `json:"group_id,omitempty" gorm:"index"`
	AttendanceDate string  `json:"attendance_date" gorm:"uniqueIndex:idx_user_day;type:varchar(10);not null"` // YYYY-MM-DD

	Points      int64 `json:"points" gorm:"default:0"`
	BonusPoints int64 `json:"bonus_points" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
