// handlers/attendance.go
package handlers

import (
	"strconv"

	"board-club-system/middleware"
	"board-club-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App, attendanceService *services.AttendanceService) {
	secured := app.Group("/", middleware.UserContextMiddleware())

	secured.Post("/attendance", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var req struct {
			GroupID *string `json:"group_id"`
		}
		// Body is optional; ignore parse errors for an empty body.
		_ = c.BodyParser(&req)

		att, err := attendanceService.CheckIn(c.Context(), userID, req.GroupID)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":       "Attendance checked successfully",
			"attendance":    att,
			"points_earned": att.Points,
		})
	})

	secured.Get("/attendance/today", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		att, err := attendanceService.TodayStatus(c.Context(), userID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"attended":   att != nil,
			"attendance": att,
		})
	})

	secured.Get("/attendance/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		limit, _ := strconv.Atoi(c.Query("limit", "30"))
		history, err := attendanceService.History(c.Context(), userID, limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(history)
	})
}
