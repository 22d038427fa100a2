// handlers/respond.go
package handlers

import (
	"errors"

	"board-club-system/services"

	"github.com/gofiber/fiber/v2"
)

// fail maps a service error kind to an HTTP status and tells the caller
// whether a retry is worthwhile.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrTransient):
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"error":     err.Error(),
		"retryable": services.Retryable(err),
	})
}
