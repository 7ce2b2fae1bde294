package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserIDHeader is set by the API gateway after it has authenticated the caller.
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

// RequireUserID reads the caller identity injected by the gateway.
// The value is trusted as-is; it is only checked to be a well-formed UUID.
func RequireUserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(UserIDHeader)
		if raw == "" {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": UserIDHeader + " header is required",
			})
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": UserIDHeader + " header must be a valid UUID",
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the identity stored by RequireUserID.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	userID, ok := c.Locals(userIDKey).(uuid.UUID)
	return userID, ok
}
