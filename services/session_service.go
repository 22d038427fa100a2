package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"board-club-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ParticipantInput is one player's result in a session being recorded.
type ParticipantInput struct {
	UserID   string  `json:"user_id"`
	Score    int64   `json:"score"`
	Rank     *int    `json:"rank,omitempty"`
	Team     *string `json:"team,omitempty"`
	IsWinner bool    `json:"is_winner"`
	MvpBadge *string `json:"mvp_badge,omitempty"`
}

type RecordSessionRequest struct {
	GameID       string             `json:"game_id"`
	GroupID      *string            `json:"group_id,omitempty"`
	SessionDate  time.Time          `json:"session_date"`
	Duration     int                `json:"duration"` // minutes
	IsTeamGame   bool               `json:"is_team_game"`
	Participants []ParticipantInput `json:"participants"`
}

type RecordSessionResult struct {
	Session        models.Session         `json:"session"`
	Participations []models.Participation `json:"participations"`
	NewBadges      []models.Badge         `json:"new_badges"`
}

// afterCommitHook runs once the recording transaction has committed.
// Hook failures are logged and never unwind the committed session; a
// failing hook does not stop the hooks after it.
type afterCommitHook struct {
	name string
	run  func(ctx context.Context, res *RecordSessionResult) error
}

// SessionService is the session recorder: it persists a finished session
// and its participations, folds each result into the per-(user, game)
// stats row inside one transaction, then evaluates badges and purges
// derived caches after commit.
type SessionService struct {
	DB    *gorm.DB
	Cache *Cache
	Badge *BadgeService

	hooks []afterCommitHook
}

func NewSessionService(db *gorm.DB, cache *Cache, badge *BadgeService) *SessionService {
	s := &SessionService{DB: db, Cache: cache, Badge: badge}
	s.hooks = []afterCommitHook{
		{name: "badge_evaluation", run: s.awardBadgesHook},
		{name: "cache_invalidation", run: s.invalidateCachesHook},
	}
	return s
}

// lockForUpdate serializes the read-modify-write on a stats row under
// concurrent recorders. SQLite (tests) has no row locks; its single
// writer gives the same guarantee.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func (s *SessionService) validate(ctx context.Context, req *RecordSessionRequest) error {
	if len(req.Participants) == 0 {
		return fmt.Errorf("%w: participants must not be empty", ErrValidation)
	}
	if req.Duration < 0 {
		return fmt.Errorf("%w: duration must be >= 0", ErrValidation)
	}
	if req.GameID == "" {
		return fmt.Errorf("%w: game_id is required", ErrValidation)
	}
	seen := make(map[string]bool, len(req.Participants))
	for i, p := range req.Participants {
		if p.UserID == "" {
			return fmt.Errorf("%w: participant %d has no user_id", ErrValidation, i)
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: duplicate participant %s", ErrValidation, p.UserID)
		}
		seen[p.UserID] = true
		if p.Rank != nil && *p.Rank < 1 {
			return fmt.Errorf("%w: rank must be a positive integer", ErrValidation)
		}
		if req.IsTeamGame && (p.Team == nil || *p.Team == "") {
			return fmt.Errorf("%w: team is required for every participant in a team game", ErrValidation)
		}
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Game{}).
		Where("id = ?", req.GameID).Count(&count).Error; err != nil {
		return classifyStoreErr(err)
	}
	if count == 0 {
		return fmt.Errorf("%w: game %s does not exist", ErrValidation, req.GameID)
	}
	return nil
}

// RecordSession validates, then runs the atomic unit (session +
// participations + stats updates), then runs the after-commit hooks.
// Either every persisted change of the atomic unit applies or none do.
func (s *SessionService) RecordSession(ctx context.Context, createdBy string, req *RecordSessionRequest) (*RecordSessionResult, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	res := &RecordSessionResult{}
	now := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session := models.Session{
			ID:          uuid.NewString(),
			GameID:      req.GameID,
			GroupID:     req.GroupID,
			SessionDate: req.SessionDate,
			Duration:    req.Duration,
			IsTeamGame:  req.IsTeamGame,
			CreatedBy:   createdBy,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}
		res.Session = session

		for _, in := range req.Participants {
			part := models.Participation{
				ID:        uuid.NewString(),
				SessionID: session.ID,
				UserID:    in.UserID,
				Score:     in.Score,
				Rank:      in.Rank,
				Team:      in.Team,
				IsWinner:  in.IsWinner,
				MvpBadge:  in.MvpBadge,
			}
			if err := tx.Create(&part).Error; err != nil {
				return err
			}
			res.Participations = append(res.Participations, part)

			if err := s.applyToStats(tx, &part, req.GameID, req.Duration, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		res.Participations = nil
		return nil, classifyStoreErr(err)
	}

	s.runAfterCommit(ctx, res)
	return res, nil
}

// applyToStats does the locked read-or-create and incremental update of
// one participant's (user, game) stats row.
func (s *SessionService) applyToStats(tx *gorm.DB, part *models.Participation, gameID string, duration int, now time.Time) error {
	var stats models.UserStats
	err := lockForUpdate(tx).
		Where("user_id = ? AND game_id = ?", part.UserID, gameID).
		First(&stats).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stats = models.UserStats{
			ID:     uuid.NewString(),
			UserID: part.UserID,
			GameID: gameID,
		}
		stats.Apply(part, duration, now)
		return tx.Create(&stats).Error
	case err != nil:
		return err
	default:
		stats.Apply(part, duration, now)
		return tx.Save(&stats).Error
	}
}

func (s *SessionService) runAfterCommit(ctx context.Context, res *RecordSessionResult) {
	for _, h := range s.hooks {
		if err := h.run(ctx, res); err != nil {
			log.Printf("[SESSION] after-commit hook %s failed for session %s: %v",
				h.name, res.Session.ID, err)
		}
	}
}

func (s *SessionService) awardBadgesHook(ctx context.Context, res *RecordSessionResult) error {
	var firstErr error
	for _, part := range res.Participations {
		badges, err := s.Badge.Evaluate(ctx, part.UserID)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("evaluate %s: %w", part.UserID, err)
			}
			continue
		}
		res.NewBadges = append(res.NewBadges, badges...)
	}
	return firstErr
}

func (s *SessionService) invalidateCachesHook(ctx context.Context, res *RecordSessionResult) error {
	keys := make([]string, 0, len(res.Participations))
	for _, part := range res.Participations {
		keys = append(keys, UserStatsKey(part.UserID))
	}
	s.Cache.Invalidate(ctx, keys...)
	// Rankings are global: any write can reorder them.
	s.Cache.InvalidateByPrefix(ctx, "rankings:*")
	return nil
}

// SessionSummary is a session row joined with its game for list views.
type SessionSummary struct {
	ID          string    `json:"id"`
	GameID      string    `json:"game_id"`
	GameName    string    `json:"game_name"`
	GameImage   string    `json:"game_image,omitempty"`
	GroupID     *string   `json:"group_id,omitempty"`
	SessionDate time.Time `json:"session_date"`
	Duration    int       `json:"duration"`
	IsTeamGame  bool      `json:"is_team_game"`
	CreatedBy   string    `json:"created_by"`
}

func (s *SessionService) GetRecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var out []SessionSummary
	err := s.DB.WithContext(ctx).
		Table("sessions s").
		Select("s.id, s.game_id, g.name AS game_name, g.image_url AS game_image, s.group_id, s.session_date, s.duration, s.is_team_game, s.created_by").
		Joins("JOIN games g ON g.id = s.game_id").
		Order("s.session_date DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return out, nil
}

func (s *SessionService) GetSessionsByGame(ctx context.Context, gameID string, limit int) ([]SessionSummary, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var out []SessionSummary
	err := s.DB.WithContext(ctx).
		Table("sessions s").
		Select("s.id, s.game_id, g.name AS game_name, g.image_url AS game_image, s.group_id, s.session_date, s.duration, s.is_team_game, s.created_by").
		Joins("JOIN games g ON g.id = s.game_id").
		Where("s.game_id = ?", gameID).
		Order("s.session_date DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return out, nil
}

// ParticipationDetail joins a participation with the player for session
// detail views.
type ParticipationDetail struct {
	models.Participation
	Nickname     string  `json:"nickname"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

type SessionDetail struct {
	SessionSummary
	Participations []ParticipationDetail `json:"participations"`
}

func (s *SessionService) GetSessionDetail(ctx context.Context, id string) (*SessionDetail, error) {
	var head SessionSummary
	err := s.DB.WithContext(ctx).
		Table("sessions s").
		Select("s.id, s.game_id, g.name AS game_name, g.image_url AS game_image, s.group_id, s.session_date, s.duration, s.is_team_game, s.created_by").
		Joins("JOIN games g ON g.id = s.game_id").
		Where("s.id = ?", id).
		Scan(&head).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	if head.ID == "" {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}

	var parts []ParticipationDetail
	err = s.DB.WithContext(ctx).
		Table("participations p").
		Select("p.*, u.nickname, u.profile_image").
		Joins("JOIN users u ON u.id = p.user_id").
		Where("p.session_id = ?", id).
		Order("p.rank ASC, p.score DESC").
		Scan(&parts).Error
	if err != nil {
		return nil, classifyStoreErr(err)
	}
	return &SessionDetail{SessionSummary: head, Participations: parts}, nil
}
