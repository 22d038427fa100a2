// handlers/session.go
package handlers

import (
	"strconv"

	"board-club-system/middleware"
	"board-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupSessionRoutes(app *fiber.App, sessionService *services.SessionService) {
	// 🔓 Read routes — Gateway auth only
	app.Get("/sessions", func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit", "10"))
		gameID := c.Query("game_id")

		var (
			sessions []services.SessionSummary
			err      error
		)
		if gameID != "" {
			sessions, err = sessionService.GetSessionsByGame(c.Context(), gameID, limit)
		} else {
			sessions, err = sessionService.GetRecentSessions(c.Context(), limit)
		}
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(sessions)
	})

	app.Get("/sessions/:id", func(c *fiber.Ctx) error {
		detail, err := sessionService.GetSessionDetail(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(detail)
	})

	// 🔐 Recording requires an authenticated member
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/sessions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req services.RecordSessionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		result, err := sessionService.RecordSession(c.Context(), userID, &req)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":        "Session recorded successfully",
			"session":        result.Session,
			"participations": result.Participations,
			"new_badges":     result.NewBadges,
		})
	})
}
