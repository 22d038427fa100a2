// handlers/stats.go
package handlers

import (
	"strconv"

	"board-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App, statsService *services.StatsService) {
	app.Get("/stats/users/:userId", func(c *fiber.Ctx) error {
		view, err := statsService.GetUserStats(c.Context(), c.Params("userId"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(view)
	})

	app.Get("/stats/rankings", func(c *fiber.Ctx) error {
		metric := c.Query("type", "wins")
		limit, _ := strconv.Atoi(c.Query("limit", "10"))

		entries, err := statsService.GetRankings(c.Context(), metric, limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(entries)
	})

	app.Get("/stats/head-to-head/:userId1/:userId2", func(c *fiber.Ctx) error {
		view, err := statsService.GetHeadToHead(c.Context(), c.Params("userId1"), c.Params("userId2"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(view)
	})
}
