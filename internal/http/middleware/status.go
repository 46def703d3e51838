package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// responseStatus resolves the status a request will end with. Errors returned
// down the chain are rendered later by the app's ErrorHandler, so the status
// recorded on the response is not final yet when err is non-nil.
func responseStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
