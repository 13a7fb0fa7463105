// middleware/sse_auth.go
package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SSEAuthMiddleware accepts the dashboard token from the `token` query param
// (EventSource cannot set headers) or from the Authorization header.
//
// Usage:
//
//	api.Get("/events", middleware.SSEAuthMiddleware(token), handlers.StreamEvents(hub))
func SSEAuthMiddleware(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		got := strings.TrimSpace(c.Query("token"))
		if got == "" {
			got = strings.TrimSpace(strings.TrimPrefix(c.Get("Authorization"), "Bearer "))
		}
		if got == "" {
			log.Printf("[SSEAuth] ❌ Missing token for %s, RemoteAddr: %s", c.Path(), c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing token",
			})
		}
		if !tokenMatches(got, token) {
			log.Printf("[SSEAuth] ❌ Invalid token (len=%d) for %s", len(got), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
