package models

import "time"

// UserStats holds cumulative per-(user, game) counters, created lazily on
// first participation and updated in place inside the recording
// transaction. AvgScore is stored for cheap reads but must always equal
// TotalScore / TotalPlays.
type UserStats struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid"`
	UserID string `json:"user_id" gorm:"uniqueIndex:idx_user_game;not null"`
	GameID string `json:"game_id" gorm:"uniqueIndex:idx_user_game;not null"`

	TotalPlays    int64   `json:"total_plays" gorm:"default:0"`
	Wins          int64   `json:"wins" gorm:"default:0"`
	Losses        int64   `json:"losses" gorm:"default:0"`
	TotalScore    int64   `json:"total_score" gorm:"default:0"`
	AvgScore      float64 `json:"avg_score" gorm:"default:0"`
	TotalPlaytime int64   `json:"total_playtime" gorm:"default:0"` // minutes
	BestRank      *int    `json:"best_rank,omitempty"`             // min rank ever; nil until first ranked play
	MvpCount      int64   `json:"mvp_count" gorm:"default:0"`

	LastPlayedAt time.Time `json:"last_played_at"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Apply folds one participation into the counters. now becomes
// LastPlayedAt; duration is the session length in minutes.
func (s *UserStats) Apply(p *Participation, duration int, now time.Time) {
	s.TotalPlays++
	if p.IsWinner {
		s.Wins++
	} else {
		// No draw state: every non-winner counts as a loss.
		s.Losses++
	}
	s.TotalScore += p.Score
	s.AvgScore = float64(s.TotalScore) / float64(s.TotalPlays)
	s.TotalPlaytime += int64(duration)
	if p.Rank != nil && (s.BestRank == nil || *p.Rank < *s.BestRank) {
		r := *p.Rank
		s.BestRank = &r
	}
	if p.MvpBadge != nil && *p.MvpBadge != "" {
		s.MvpCount++
	}
	s.LastPlayedAt = now
}
