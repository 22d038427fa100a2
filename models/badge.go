package models

import "time"

// Badge is an awarded achievement. A (user, badge_name) pair exists at
// most once; the unique index backs the idempotence guarantee under
// concurrent evaluation.
type Badge struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex:idx_user_badge;not null"`
	BadgeType   string    `json:"badge_type" gorm:"type:varchar(32);default:'achievement'"`
	BadgeName   string    `json:"badge_name" gorm:"uniqueIndex:idx_user_badge;not null"`
	BadgeIcon   string    `json:"badge_icon"`
	Description string    `json:"description"`
	EarnedAt    time.Time `json:"earned_at" gorm:"autoCreateTime"`
}

// Badge metrics evaluated against a user's summed stats.
const (
	BadgeMetricPlays = "total_plays"
	BadgeMetricWins  = "total_wins"
)

// BadgeRule: static trigger config. Rules are plain data so adding one
// never touches the evaluation loop.
type BadgeRule struct {
	Metric      string // BadgeMetricPlays or BadgeMetricWins
	Threshold   int64
	Type        string
	Name        string
	Icon        string
	Description string
}

// BadgeRules is evaluated in order; a single evaluation can award several
// badges at once.
var BadgeRules = []BadgeRule{
	{
		Metric:      BadgeMetricPlays,
		Threshold:   1,
		Type:        "achievement",
		Name:        "First Game",
		Icon:        "🎲",
		Description: "Played your first board game.",
	},
	{
		Metric:      BadgeMetricWins,
		Threshold:   1,
		Type:        "achievement",
		Name:        "First Win",
		Icon:        "👑",
		Description: "Took your first victory.",
	},
	{
		Metric:      BadgeMetricWins,
		Threshold:   10,
		Type:        "achievement",
		Name:        "Ten Wins",
		Icon:        "🏆",
		Description: "Reached ten total wins.",
	},
}
