package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/utils/auth"
	"github.com/okravets/institutions-api/utils/response"
)

// AuthMiddleware guards routes behind a bearer token minted by the issuer
type AuthMiddleware struct {
	issuer *auth.TokenIssuer
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(issuer *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

// Required is middleware that requires a valid bearer token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization format")
		}

		claims, err := m.issuer.Validate(parts[1])
		if err != nil {
			if err == auth.ErrExpiredToken {
				return response.Unauthorized(c, "Token has expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// Store principal info in context
		c.Locals("principal", claims.Subject)
		c.Locals("scope", claims.Scope)
		c.Locals("claims", claims)

		return c.Next()
	}
}

// GetPrincipal returns the authenticated principal name from context
func GetPrincipal(c *fiber.Ctx) (string, bool) {
	principal, ok := c.Locals("principal").(string)
	return principal, ok
}
