package httperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spendlog/spendlog-backend/internal/logging"
)

// ErrorHandler is installed as the app-level Fiber error handler. Domain
// errors keep their status and detail; anything unrecognized becomes a bare
// 500 so store failures never leak internals to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(fiber.Map{
			"message": apiErr.Message,
			"data":    apiErr.Data,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"message": fiberErr.Message,
			"data":    nil,
		})
	}

	if logging.Logger != nil {
		logging.Logger.WithError(err).Errorf("unhandled error on %s %s", c.Method(), c.Path())
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "internal server error",
		"data":    nil,
	})
}
