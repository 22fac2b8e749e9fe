package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursetracker/services"
)

func protectedApp(creds *services.Credentials) *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(creds), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId":   c.Locals("userId"),
			"verified": c.Locals("verified"),
		})
	})
	return app
}

func TestProtected_ValidToken(t *testing.T) {
	creds := services.NewCredentials("secret", 8)
	app := protectedApp(creds)

	token, err := creds.IssueToken(42, true)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"userId":42,"verified":true}`, string(body))
}

func TestProtected_MissingHeader(t *testing.T) {
	app := protectedApp(services.NewCredentials("secret", 8))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_BadHeaderFormat(t *testing.T) {
	app := protectedApp(services.NewCredentials("secret", 8))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_GarbageToken(t *testing.T) {
	app := protectedApp(services.NewCredentials("secret", 8))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_TokenSignedWithOtherSecret(t *testing.T) {
	app := protectedApp(services.NewCredentials("secret", 8))

	other := services.NewCredentials("other", 8)
	token, err := other.IssueToken(1, false)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
