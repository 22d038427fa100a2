package services

import (
	"context"
	"errors"
	"testing"

	"board-club-system/models"
)

func TestCreateGameGeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")

	game, err := svc.CreateGame(ctx, creator, &CreateGameRequest{
		Name:       "Ticket to Ride: Europe",
		Genre:      "strategy",
		MinPlayers: 2,
		MaxPlayers: 5,
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	if game.Slug != "ticket-to-ride-europe" {
		t.Fatalf("slug = %q", game.Slug)
	}
	if game.CreatedBy != creator {
		t.Fatalf("created_by = %q", game.CreatedBy)
	}
}

func TestCreateGameValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	ctx := context.Background()

	if _, err := svc.CreateGame(ctx, "u", &CreateGameRequest{}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name: %v", err)
	}
	if _, err := svc.CreateGame(ctx, "u", &CreateGameRequest{
		Name: "Bad", MinPlayers: 5, MaxPlayers: 2,
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("min>max: %v", err)
	}
}

func TestUpdateGameAllowList(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	ctx := context.Background()
	creator := seedUser(t, db, "alice")

	game, err := svc.CreateGame(ctx, creator, &CreateGameRequest{Name: "Catan"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateGame(ctx, game.ID, map[string]interface{}{
		"genre":      "strategy",
		"created_by": "someone-else", // not on the allow-list
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Genre != "strategy" {
		t.Fatalf("genre = %q", updated.Genre)
	}
	if updated.CreatedBy != creator {
		t.Fatal("field outside the allow-list was written")
	}

	// Renaming regenerates the slug.
	updated, err = svc.UpdateGame(ctx, game.ID, map[string]interface{}{"name": "Catan: Seafarers"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if updated.Slug != "catan-seafarers" {
		t.Fatalf("slug = %q", updated.Slug)
	}

	if _, err := svc.UpdateGame(ctx, game.ID, map[string]interface{}{"created_by": "x"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("only disallowed fields must be rejected, got %v", err)
	}
	if _, err := svc.UpdateGame(ctx, "missing", map[string]interface{}{"genre": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing game: %v", err)
	}
}

func TestListGamesFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	ctx := context.Background()

	for _, g := range []struct{ name, genre string }{
		{"Catan", "strategy"},
		{"Azul", "abstract"},
		{"Carcassonne", "strategy"},
	} {
		if _, err := svc.CreateGame(ctx, "u", &CreateGameRequest{Name: g.name, Genre: g.genre}); err != nil {
			t.Fatalf("create %s: %v", g.name, err)
		}
	}

	strategy, err := svc.ListGames(ctx, GameFilters{Genre: "strategy"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(strategy) != 2 {
		t.Fatalf("strategy games = %d", len(strategy))
	}
	// Alphabetical order.
	if strategy[0].Name != "Carcassonne" {
		t.Fatalf("order: %s first", strategy[0].Name)
	}

	search, err := svc.ListGames(ctx, GameFilters{Search: "Az"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(search) != 1 || search[0].Name != "Azul" {
		t.Fatalf("search: %+v", search)
	}
}

func TestDeleteGame(t *testing.T) {
	db := newTestDB(t)
	svc := NewGameService(db)
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, "u", &CreateGameRequest{Name: "Catan"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.DeleteGame(ctx, game.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteGame(ctx, game.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}

	var n int64
	if err := db.Model(&models.Game{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("game rows = %d", n)
	}
}
