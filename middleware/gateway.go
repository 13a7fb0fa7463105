// middleware/gateway.go
package middleware

import (
	"crypto/subtle"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// DashboardAuthMiddleware requires "Authorization: Bearer <token>" when token is set.
// An empty token leaves the dashboard open (local use).
func DashboardAuthMiddleware(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Printf("🚫 [DASHBOARD_AUTH] Missing Authorization header for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "dashboard token missing",
			})
		}

		// Parse "Bearer <token>", raw values are accepted too
		got := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if !tokenMatches(got, token) {
			log.Printf("❌ [DASHBOARD_AUTH] Invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid dashboard token",
			})
		}
		return c.Next()
	}
}

func tokenMatches(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
