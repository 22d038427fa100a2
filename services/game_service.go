package services

import (
	"context"
	"fmt"

	"board-club-system/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type GameService struct {
	DB *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{DB: db}
}

type GameFilters struct {
	Genre  string
	Search string
}

func (s *GameService) ListGames(ctx context.Context, filters GameFilters) ([]models.Game, error) {
	q := s.DB.WithContext(ctx).Model(&models.Game{})
	if filters.Genre != "" {
		q = q.Where("genre = ?", filters.Genre)
	}
	if filters.Search != "" {
		q = q.Where("name LIKE ?", "%"+filters.Search+"%")
	}
	var games []models.Game
	if err := q.Order("name ASC").Find(&games).Error; err != nil {
		return nil, classifyStoreErr(err)
	}
	return games, nil
}

func (s *GameService) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&game).Error; err != nil {
		return nil, classifyStoreErr(err)
	}
	return &game, nil
}

type CreateGameRequest struct {
	Name        string `json:"name"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	MinPlayers  int    `json:"min_players"`
	MaxPlayers  int    `json:"max_players"`
	AvgPlaytime int    `json:"avg_playtime"`
	ImageURL    string `json:"image_url"`
}

func (s *GameService) CreateGame(ctx context.Context, createdBy string, req *CreateGameRequest) (*models.Game, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.MinPlayers > 0 && req.MaxPlayers > 0 && req.MinPlayers > req.MaxPlayers {
		return nil, fmt.Errorf("%w: min_players exceeds max_players", ErrValidation)
	}
	game := models.Game{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Slug:        slug.Make(req.Name),
		Genre:       req.Genre,
		Description: req.Description,
		MinPlayers:  req.MinPlayers,
		MaxPlayers:  req.MaxPlayers,
		AvgPlaytime: req.AvgPlaytime,
		ImageURL:    req.ImageURL,
		CreatedBy:   createdBy,
	}
	if game.MinPlayers == 0 {
		game.MinPlayers = 1
	}
	if err := s.DB.WithContext(ctx).Create(&game).Error; err != nil {
		return nil, classifyStoreErr(err)
	}
	return &game, nil
}

// gameUpdatable is the explicit allow-list of patchable fields and their
// column names. Anything not listed is silently dropped.
var gameUpdatable = map[string]string{
	"name":         "name",
	"genre":        "genre",
	"description":  "description",
	"min_players":  "min_players",
	"max_players":  "max_players",
	"avg_playtime": "avg_playtime",
	"image_url":    "image_url",
}

// UpdateGame applies a partial update from the allow-list. Renaming a
// game regenerates its slug.
func (s *GameService) UpdateGame(ctx context.Context, id string, fields map[string]interface{}) (*models.Game, error) {
	updates := make(map[string]interface{}, len(fields))
	for key, val := range fields {
		col, ok := gameUpdatable[key]
		if !ok {
			continue
		}
		updates[col] = val
	}
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrValidation)
	}
	if name, ok := updates["name"].(string); ok && name != "" {
		updates["slug"] = slug.Make(name)
	}

	res := s.DB.WithContext(ctx).Model(&models.Game{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, classifyStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: game %s", ErrNotFound, id)
	}
	return s.GetGame(ctx, id)
}

func (s *GameService) DeleteGame(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Game{})
	if res.Error != nil {
		return classifyStoreErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: game %s", ErrNotFound, id)
	}
	return nil
}
