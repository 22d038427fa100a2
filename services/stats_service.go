package services

import (
	"context"
	"fmt"
	"time"

	"board-club-system/models"

	"gorm.io/gorm"
)

// StatsService serves the read side of the statistics pipeline: per-user
// summaries, club-wide rankings and head-to-head records. Reads consult
// the cache first and fall back to recomputation from user_stats.
type StatsService struct {
	DB    *gorm.DB
	Cache *Cache
}

func NewStatsService(db *gorm.DB, cache *Cache) *StatsService {
	return &StatsService{DB: db, Cache: cache}
}

// OverallStats are a user's counters summed across all games.
type OverallStats struct {
	TotalPlays    int64 `json:"total_plays"`
	TotalWins     int64 `json:"total_wins"`
	TotalLosses   int64 `json:"total_losses"`
	TotalPlaytime int64 `json:"total_playtime"`
	TotalMvp      int64 `json:"total_mvp"`
}

// GameStats is one per-game stats row joined with the game.
type GameStats struct {
	models.UserStats
	GameName  string `json:"game_name"`
	GameImage string `json:"game_image,omitempty"`
}

type UserStatsView struct {
	Overall OverallStats `json:"overall"`
	Games   []GameStats  `json:"games"`
}

func (s *StatsService) GetUserStats(ctx context.Context, userID string) (*UserStatsView, error) {
	cacheKey := UserStatsKey(userID)
	var cached UserStatsView
	if s.Cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	var view UserStatsView
	err := s.DB.WithContext(ctx).Model(&models.UserStats{}).
		Select(`COALESCE(SUM(total_plays), 0) AS total_plays,
			COALESCE(SUM(wins), 0) AS total_wins,
			COALESCE(SUM(losses), 0) AS total_losses,
			COALESCE(SUM(total_playtime), 0) AS total_playtime,
			COALESCE(SUM(mvp_count), 0) AS total_mvp`).
		Where("user_id = ?", userID).
		Scan(&view.Overall).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	err = s.DB.WithContext(ctx).
		Table("user_stats us").
		Select("us.*, g.name AS game_name, g.image_url AS game_image").
		Joins("JOIN games g ON g.id = us.game_id").
		Where("us.user_id = ?", userID).
		Order("us.total_plays DESC").
		Scan(&view.Games).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	s.Cache.Set(ctx, cacheKey, &view, UserStatsTTL)
	return &view, nil
}

// RankingEntry is one row of a club-wide leaderboard.
type RankingEntry struct {
	UserID        string  `json:"user_id"`
	Nickname      string  `json:"nickname"`
	ProfileImage  *string `json:"profile_image,omitempty"`
	TotalPlays    int64   `json:"total_plays"`
	TotalWins     int64   `json:"total_wins"`
	TotalScore    int64   `json:"total_score"`
	TotalPlaytime int64   `json:"total_playtime"`
	TotalMvp      int64   `json:"total_mvp"`
}

// rankingOrder is the allow-list of ranking metrics. The ORDER BY clause
// is taken from here, never from request input.
var rankingOrder = map[string]string{
	"wins":     "total_wins DESC",
	"score":    "total_score DESC",
	"playtime": "total_playtime DESC",
	"mvp":      "total_mvp DESC",
}

func (s *StatsService) GetRankings(ctx context.Context, metric string, limit int) ([]RankingEntry, error) {
	orderBy, ok := rankingOrder[metric]
	if !ok {
		return nil, fmt.Errorf("%w: unknown ranking metric %q", ErrValidation, metric)
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	cacheKey := RankingsKey(metric, limit)
	var cached []RankingEntry
	if s.Cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	var entries []RankingEntry
	err := s.DB.WithContext(ctx).
		Table("users u").
		Select(`u.id AS user_id, u.nickname, u.profile_image,
			COALESCE(SUM(us.total_plays), 0) AS total_plays,
			COALESCE(SUM(us.wins), 0) AS total_wins,
			COALESCE(SUM(us.total_score), 0) AS total_score,
			COALESCE(SUM(us.total_playtime), 0) AS total_playtime,
			COALESCE(SUM(us.mvp_count), 0) AS total_mvp`).
		Joins("JOIN user_stats us ON us.user_id = u.id").
		Group("u.id, u.nickname, u.profile_image").
		Order(orderBy).
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	s.Cache.Set(ctx, cacheKey, entries, RankingsTTL)
	return entries, nil
}

// WarmRankings recomputes every ranking metric straight into the cache.
// Called by the scheduler so the long-TTL entries survive invalidation
// bursts without a cold read.
func (s *StatsService) WarmRankings(ctx context.Context, limit int) {
	for metric := range rankingOrder {
		s.Cache.Invalidate(ctx, RankingsKey(metric, limit))
		_, _ = s.GetRankings(ctx, metric, limit)
	}
}

// HeadToHeadMatch is one shared session between two users.
type HeadToHeadMatch struct {
	SessionID   string    `json:"session_id"`
	SessionDate time.Time `json:"session_date"`
	GameName    string    `json:"game_name"`
	Score1      int64     `json:"score1"`
	Rank1       *int      `json:"rank1,omitempty"`
	Winner1     bool      `json:"winner1"`
	Score2      int64     `json:"score2"`
	Rank2       *int      `json:"rank2,omitempty"`
	Winner2     bool      `json:"winner2"`
}

type HeadToHeadSummary struct {
	TotalMatches int `json:"total_matches"`
	Wins1        int `json:"wins1"`
	Wins2        int `json:"wins2"`
	Draws        int `json:"draws"`
}

type HeadToHeadView struct {
	Summary HeadToHeadSummary `json:"summary"`
	Matches []HeadToHeadMatch `json:"matches"`
}

// GetHeadToHead compares two users over every session both played. Lower
// rank wins a match; equal or missing ranks count as a draw. Note the
// deliberate asymmetry with the aggregate counters, which have no draw
// state at all.
func (s *StatsService) GetHeadToHead(ctx context.Context, userID1, userID2 string) (*HeadToHeadView, error) {
	if userID1 == "" || userID2 == "" || userID1 == userID2 {
		return nil, fmt.Errorf("%w: head-to-head needs two distinct users", ErrValidation)
	}

	var matches []HeadToHeadMatch
	err := s.DB.WithContext(ctx).
		Table("sessions s").
		Select(`s.id AS session_id, s.session_date, g.name AS game_name,
			p1.score AS score1, p1.rank AS rank1, p1.is_winner AS winner1,
			p2.score AS score2, p2.rank AS rank2, p2.is_winner AS winner2`).
		Joins("JOIN games g ON g.id = s.game_id").
		Joins("JOIN participations p1 ON p1.session_id = s.id AND p1.user_id = ?", userID1).
		Joins("JOIN participations p2 ON p2.session_id = s.id AND p2.user_id = ?", userID2).
		Order("s.session_date DESC").
		Scan(&matches).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	view := &HeadToHeadView{Matches: matches}
	view.Summary.TotalMatches = len(matches)
	for _, m := range matches {
		switch {
		case m.Rank1 != nil && m.Rank2 != nil && *m.Rank1 < *m.Rank2:
			view.Summary.Wins1++
		case m.Rank1 != nil && m.Rank2 != nil && *m.Rank2 < *m.Rank1:
			view.Summary.Wins2++
		default:
			view.Summary.Draws++
		}
	}
	return view, nil
}
