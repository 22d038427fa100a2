// handlers/game.go
package handlers

import (
	"path/filepath"

	"board-club-system/middleware"
	"board-club-system/services"
	"board-club-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func SetupGameRoutes(app *fiber.App, gameService *services.GameService) {
	// 🔓 Public catalog reads — Gateway auth only
	app.Get("/games", func(c *fiber.Ctx) error {
		games, err := gameService.ListGames(c.Context(), services.GameFilters{
			Genre:  c.Query("genre"),
			Search: c.Query("search"),
		})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(games)
	})

	app.Get("/games/:id", func(c *fiber.Ctx) error {
		game, err := gameService.GetGame(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(game)
	})

	// 🔐 Catalog writes require user context
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/games", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req services.CreateGameRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		game, err := gameService.CreateGame(c.Context(), userID, &req)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(game)
	})

	secured.Post("/games/:id/cover", func(c *fiber.Ctx) error {
		cover, err := c.FormFile("cover")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cover file is required"})
		}
		if !utils.R2Enabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "image storage is not configured"})
		}
		key := "covers/" + uuid.NewString() + filepath.Ext(cover.Filename)
		url, err := utils.UploadFileToR2(cover, key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload cover image"})
		}
		game, err := gameService.UpdateGame(c.Context(), c.Params("id"), map[string]interface{}{"image_url": url})
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(game)
	})

	update := func(c *fiber.Ctx) error {
		var fields map[string]interface{}
		if err := c.BodyParser(&fields); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		game, err := gameService.UpdateGame(c.Context(), c.Params("id"), fields)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(game)
	}
	secured.Put("/games/:id", update)
	secured.Patch("/games/:id", update)

	secured.Delete("/games/:id", func(c *fiber.Ctx) error {
		if err := gameService.DeleteGame(c.Context(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "game deleted"})
	})
}
