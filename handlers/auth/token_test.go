package auth

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/okravets/institutions-api/config"
	"github.com/okravets/institutions-api/utils/auth"
	"github.com/okravets/institutions-api/utils/middleware"
	"github.com/stretchr/testify/require"
)

func newTokenApp(t *testing.T) (*fiber.App, *auth.TokenIssuer) {
	t.Helper()

	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	users := []config.AuthUser{
		{Name: "alice", PasswordHash: hash, Authorities: []string{"read", "write"}},
	}

	issuer := auth.NewTokenIssuer("test-secret")
	basicAuth := middleware.NewBasicAuthMiddleware(users, nil)
	handler := NewTokenHandler(issuer)

	app := fiber.New()
	app.Post("/auth/token", basicAuth.Required(), handler.IssueToken)

	return app, issuer
}

func basicHeader(name, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(name+":"+password))
}

func postToken(t *testing.T, app *fiber.App, authorization string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/token", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestIssueTokenReturnsBareToken(t *testing.T) {
	app, issuer := newTokenApp(t)

	before := time.Now()
	resp := postToken(t, app, basicHeader("alice", "s3cret"))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	claims, err := issuer.Validate(string(body))
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Subject)
	require.Equal(t, "read write", claims.Scope)
	require.Equal(t, auth.TokenIssuerName, claims.Issuer)
	require.NotEmpty(t, claims.ID)
	require.Equal(t, auth.TokenValidity, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
	require.False(t, claims.IssuedAt.Before(before.Truncate(time.Second)))
}

func TestIssueTokenRejectsWrongPassword(t *testing.T) {
	app, _ := newTokenApp(t)

	resp := postToken(t, app, basicHeader("alice", "wrong"))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIssueTokenRejectsUnknownPrincipal(t *testing.T) {
	app, _ := newTokenApp(t)

	resp := postToken(t, app, basicHeader("mallory", "s3cret"))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIssueTokenRejectsMissingCredentials(t *testing.T) {
	app, _ := newTokenApp(t)

	resp := postToken(t, app, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, `Basic realm="token"`, resp.Header.Get("WWW-Authenticate"))

	resp = postToken(t, app, "Basic not-base64!!!")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
