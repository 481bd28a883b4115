package middleware

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/config"
	"github.com/okravets/institutions-api/utils/auth"
	"github.com/okravets/institutions-api/utils/response"
)

// BasicAuthMiddleware authenticates callers of the token endpoint with HTTP
// Basic credentials checked against the principals configured in the
// environment. Identity management proper lives outside this service; this
// adapter only yields a verified principal name and its granted authorities.
type BasicAuthMiddleware struct {
	users                map[string]config.AuthUser
	bruteForceProtection *BruteForceProtection
}

// NewBasicAuthMiddleware creates a new basic auth middleware. bruteForce may
// be nil when Redis is unavailable.
func NewBasicAuthMiddleware(users []config.AuthUser, bruteForce *BruteForceProtection) *BasicAuthMiddleware {
	byName := make(map[string]config.AuthUser, len(users))
	for _, u := range users {
		byName[u.Name] = u
	}
	return &BasicAuthMiddleware{
		users:                byName,
		bruteForceProtection: bruteForce,
	}
}

// Required is middleware that requires valid basic credentials. On success
// the principal name and authorities are stored in the request context.
func (m *BasicAuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, password, ok := parseBasicAuth(c.Get("Authorization"))
		if !ok {
			c.Set("WWW-Authenticate", `Basic realm="token"`)
			return response.Unauthorized(c, "Missing or malformed credentials")
		}

		ip := c.IP()

		user, found := m.users[name]
		if !found {
			if m.bruteForceProtection != nil {
				m.bruteForceProtection.RecordFailedAttempt(c, ip, name)
			}
			return response.Unauthorized(c, "Invalid credentials")
		}

		if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
			if m.bruteForceProtection != nil {
				m.bruteForceProtection.RecordFailedAttempt(c, ip, name)
			}
			return response.Unauthorized(c, "Invalid credentials")
		}

		if m.bruteForceProtection != nil {
			m.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
		}

		c.Locals("principal", user.Name)
		c.Locals("authorities", user.Authorities)

		return c.Next()
	}
}

// GetAuthorities returns the granted authorities of the authenticated
// principal from context.
func GetAuthorities(c *fiber.Ctx) []string {
	authorities, _ := c.Locals("authorities").([]string)
	return authorities
}

func parseBasicAuth(header string) (name, password string, ok bool) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}

	name, password, ok = strings.Cut(string(decoded), ":")
	return name, password, ok
}
