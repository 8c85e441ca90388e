package middleware

import (
	"github.com/G381N/bug-besty/internal/core/ports"
	"github.com/G381N/bug-besty/internal/infrastructure/logger"
	"github.com/gofiber/fiber/v2"
)

const UserLocalKey = "current_user"

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// SessionAuth resolves the bearer session token to a user and stores it in
// the request locals for handlers to pick up.
func SessionAuth(auth ports.AuthService, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		user, err := auth.ResolveToken(c.Context(), token)
		if err != nil {
			log.Warnw("session_auth_rejected", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals(UserLocalKey, user)
		return c.Next()
	}
}

// TriggerAuth guards the task-processing entry point invoked by the
// external scheduler.
func TriggerAuth(secret string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if secret == "" || bearerToken(c) != secret {
			log.Warnw("trigger_auth_rejected", "client_ip", c.IP())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
