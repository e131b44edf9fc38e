package middleware

import (
	"errors"
	"strings"

	"go-gudang-tekstil/internal/apperr"
	"go-gudang-tekstil/internal/repository"
	"go-gudang-tekstil/pkg/token"

	"github.com/gofiber/fiber/v2"
)

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth validates the bearer token, loads the referenced user, and
// attaches it to the request context. Each failure mode gets its own reason.
func RequireAuth(userRepo repository.UserRepository, tokens *token.Maker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return apperr.Unauthorized("No token provided")
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				return apperr.Unauthorized("Token expired")
			}
			return apperr.Unauthorized("Invalid token")
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return apperr.Unauthorized("User not found")
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present but never
// rejects the request. Auth failures deliberately degrade to "no user".
func OptionalAuth(userRepo repository.UserRepository, tokens *token.Maker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Next()
		}

		claims, err := tokens.Validate(tokenString)
		if err != nil {
			return c.Next()
		}

		if user, err := userRepo.FindByID(claims.UserID); err == nil {
			c.Locals("user", user)
		}
		return c.Next()
	}
}
