package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/utils/auth"
	"github.com/okravets/institutions-api/utils/middleware"
	"github.com/okravets/institutions-api/utils/response"
)

// TokenHandler mints bearer tokens for principals authenticated by the
// basic-auth adapter in front of it.
type TokenHandler struct {
	issuer *auth.TokenIssuer
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(issuer *auth.TokenIssuer) *TokenHandler {
	return &TokenHandler{issuer: issuer}
}

// IssueToken handles POST /auth/token. The response body is the bare signed
// token string.
func (h *TokenHandler) IssueToken(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	token, err := h.issuer.Issue(principal, middleware.GetAuthorities(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to issue token")
	}

	return c.SendString(token)
}
