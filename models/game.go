package models

import (
	"time"

	"gorm.io/gorm"
)

// Game is a board game in the club catalog.
type Game struct {
	ID          string `json:"id" gorm:"primaryKey;type:uuid"`
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Genre       string `json:"genre" gorm:"index;type:varchar(64)"`
	Description string `json:"description"`

	MinPlayers  int `json:"min_players" gorm:"default:1"`
	MaxPlayers  int `json:"max_players" gorm:"default:4"`
	AvgPlaytime int `json:"avg_playtime" gorm:"default:0"` // minutes

	// 🖼️ Cover image (R2 CDN URL)
	ImageURL string `json:"image_url,omitempty" gorm:"type:text"`

	CreatedBy string `json:"created_by" gorm:"index"`

	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
