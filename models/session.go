package models

import "time"

// Session records one completed play of a game. Rows are immutable once
// created; there is no update path.
type Session struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	GameID      string    `json:"game_id" gorm:"index;not null"`
	GroupID     *string   `json:"group_id,omitempty" gorm:"index"`
	SessionDate time.Time `json:"session_date" gorm:"index;not null"`
	Duration    int       `json:"duration" gorm:"default:0"` // minutes
	IsTeamGame  bool      `json:"is_team_game" gorm:"default:false"`
	CreatedBy   string    `json:"created_by" gorm:"index;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Participation is one player's result within a session. Exactly one row
// per (session, user) pair.
type Participation struct {
	ID        string `json:"id" gorm:"primaryKey;type:uuid"`
	SessionID string `json:"session_id" gorm:"uniqueIndex:idx_session_user;not null"`
	UserID    string `json:"user_id" gorm:"uniqueIndex:idx_session_user;not null"`

	Score    int64   `json:"score" gorm:"default:0"`
	Rank     *int    `json:"rank,omitempty"` // nil = unranked; 1 is best
	Team     *string `json:"team,omitempty" gorm:"type:varchar(64)"`
	IsWinner bool    `json:"is_winner" gorm:"default:false"`
	MvpBadge *string `json:"mvp_badge,omitempty" gorm:"type:varchar(64)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
