package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"movie-catalog-api/internal/service"
)

// VerifyFunc checks a bearer token and returns the authenticated
// email. AuthService.Verify satisfies it.
type VerifyFunc func(token string) (string, error)

const authEmailKey = "auth_email"

// RequireAuth rejects requests without a valid Bearer token and
// stores the authenticated email in request locals.
func RequireAuth(verify VerifyFunc) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": "Authorization header ('Bearer token') not found",
			})
		}

		email, err := verify(token)
		if err != nil {
			msg := "Invalid JWT token"
			if errors.Is(err, service.ErrTokenExpired) {
				msg = "JWT token has expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   true,
				"message": msg,
			})
		}

		c.Locals(authEmailKey, email)
		return c.Next()
	}
}

// OptionalAuth attaches the authenticated email when a valid Bearer
// token is present and silently treats everything else as anonymous.
func OptionalAuth(verify VerifyFunc) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		if email, err := verify(token); err == nil {
			c.Locals(authEmailKey, email)
		}
		return c.Next()
	}
}

func bearerToken(c fiber.Ctx) (string, bool) {
	header := c.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
