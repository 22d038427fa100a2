// handlers/badge.go
package handlers

import (
	"board-club-system/middleware"
	"board-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupBadgeRoutes(app *fiber.App, badgeService *services.BadgeService) {
	app.Get("/badges/users/:userId", func(c *fiber.Ctx) error {
		badges, err := badgeService.ListUserBadges(c.Context(), c.Params("userId"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(badges)
	})

	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Get("/badges/me", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		badges, err := badgeService.ListUserBadges(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(badges)
	})
}
