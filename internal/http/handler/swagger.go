package handler

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"coffeeapi/docs"
)

// Swagger serves the UI and doc.json with host and scheme taken from the request.
// docs.SwaggerInfo is package state read while the handler renders, so requests are serialized.
func Swagger(fallbackHost string) fiber.Handler {
	var mu sync.Mutex
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}
		host := c.Get("Host")
		if host == "" {
			host = fallbackHost
		}

		mu.Lock()
		defer mu.Unlock()
		docs.SwaggerInfo.Host = host
		docs.SwaggerInfo.Schemes = []string{scheme}
		return swagger.HandlerDefault(c)
	}
}
