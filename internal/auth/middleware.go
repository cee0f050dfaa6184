package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spendlog/spendlog-backend/internal/httperr"
)

const userIDLocal = "user_id"

// Middleware guards a route group with bearer-token authentication. A missing
// or malformed Authorization header is an immediate 401; nothing downstream
// runs with an unresolved identity.
func Middleware(tokens *TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return httperr.Unauthorized("no access token provided")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return httperr.Unauthorized("no access token provided")
		}

		userID, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// UserID returns the identity resolved by Middleware for this request.
func UserID(c *fiber.Ctx) (int64, error) {
	id, ok := c.Locals(userIDLocal).(int64)
	if !ok || id == 0 {
		return 0, httperr.Unauthorized("unauthorized")
	}
	return id, nil
}
