package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionIDKey is the c.Locals key holding the validated session id.
const SessionIDKey = "sessionID"

// SessionID rejects requests whose :session_id path parameter is not a UUID
// and stores the canonical form in c.Locals.
func SessionID(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("session_id")
		if raw == "" {
			logger.Warn("Missing session id")
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Session ID required",
			})
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Warn("Invalid session id", zap.String("session_id", raw), zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid session ID format",
			})
		}

		c.Locals(SessionIDKey, id.String())

		return c.Next()
	}
}
