package handler

import (
	"github.com/gofiber/fiber/v2"

	"coffeeapi/internal/service"
)

// RegisterRoutes attaches the coffee API routes to app. pinger backs the /health check.
func RegisterRoutes(app *fiber.App, pinger Pinger, svc service.CoffeeService) {
	app.Get("/hello", Hello())

	app.Get("/health", HealthCheck(pinger))
	app.Get("/healthz", LivenessProbe())

	coffees := app.Group("/coffees")
	coffees.Get("/", ListCoffees(svc))
	coffees.Post("/", CreateCoffee(svc))
	coffees.Get("/:id", GetCoffee(svc))
	coffees.Put("/:id", UpdateCoffee(svc))
	coffees.Delete("/:id", DeleteCoffee(svc))
}
