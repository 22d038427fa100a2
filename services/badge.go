package services

import (
	"context"
	"errors"
	"time"

	"board-club-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeService struct {
	DB *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{DB: db}
}

// badgeTotals is the input the rule set is evaluated against: counters
// summed across every game the user has played.
type badgeTotals struct {
	TotalPlays int64
	TotalWins  int64
}

func (t badgeTotals) metric(name string) int64 {
	switch name {
	case models.BadgeMetricPlays:
		return t.TotalPlays
	case models.BadgeMetricWins:
		return t.TotalWins
	default:
		return 0
	}
}

// Evaluate checks every badge rule against the user's summed stats and
// awards whatever is newly earned, returning only the new badges. Already
// held badges are skipped; a concurrent evaluation that wins the insert
// race is treated as "already awarded", not an error, via the
// (user, badge_name) unique index and ON CONFLICT DO NOTHING.
func (s *BadgeService) Evaluate(ctx context.Context, userID string) ([]models.Badge, error) {
	var totals badgeTotals
	err := s.DB.WithContext(ctx).Model(&models.UserStats{}).
		Select("COALESCE(SUM(total_plays), 0) AS total_plays, COALESCE(SUM(wins), 0) AS total_wins").
		Where("user_id = ?", userID).
		Scan(&totals).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}

	var held []models.Badge
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&held).Error; err != nil {
		return nil, classifyStoreErr(err)
	}
	heldNames := make(map[string]bool, len(held))
	for _, b := range held {
		heldNames[b.BadgeName] = true
	}

	var awarded []models.Badge
	for _, rule := range models.BadgeRules {
		if totals.metric(rule.Metric) < rule.Threshold || heldNames[rule.Name] {
			continue
		}
		badge := models.Badge{
			ID:          uuid.NewString(),
			UserID:      userID,
			BadgeType:   rule.Type,
			BadgeName:   rule.Name,
			BadgeIcon:   rule.Icon,
			Description: rule.Description,
			EarnedAt:    time.Now(),
		}
		res := s.DB.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&badge)
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
				continue // lost the race, someone else awarded it
			}
			return awarded, classifyStoreErr(res.Error)
		}
		if res.RowsAffected == 0 {
			continue // conflict resolved by DO NOTHING
		}
		awarded = append(awarded, badge)
	}
	return awarded, nil
}

// ListUserBadges returns a user's badges, newest first.
func (s *BadgeService) ListUserBadges(ctx context.Context, userID string) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&badges).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return badges, nil
}
