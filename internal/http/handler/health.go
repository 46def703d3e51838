package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Hello godoc
// @Summary Greeting
// @Description Returns "Hello <name>!", defaulting to World.
// @Tags misc
// @Produce plain
// @Param name query string false "Name to greet"
// @Success 200 {string} string "Hello World!"
// @Router /hello [get]
func Hello() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendString("Hello " + c.Query("name", "World") + "!")
	}
}

// HealthCheck godoc
// @Summary Readiness check
// @Description Pings the configured coffee store.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(pinger Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
