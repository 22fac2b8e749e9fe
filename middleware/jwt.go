package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"coursetracker/services"
)

// Protected checks for a valid bearer token and stores the claims in the
// request context under "userId" and "verified".
func Protected(creds *services.Credentials) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header.")
		}

		// The token should be prefixed with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid Authorization header format.")
		}

		tokenString := authHeader[len("Bearer "):]

		claims, err := creds.ParseToken(tokenString)
		if err != nil {
			return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token.")
		}

		c.Locals("userId", claims.UserID)
		c.Locals("verified", claims.Verified)

		return c.Next()
	}
}
