package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionalJWTApp() *fiber.App {
	app := fiber.New()
	app.Get("/browse", OptionalJWT(), func(c *fiber.Ctx) error {
		if _, ok := c.Locals("user").(*jwt.Token); ok {
			return c.SendString("known")
		}
		return c.SendString("anonymous")
	})
	return app
}

func browse(t *testing.T, app *fiber.App, authHeader string) string {
	req := httptest.NewRequest(http.MethodGet, "/browse", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestOptionalJWTWithoutToken(t *testing.T) {
	app := optionalJWTApp()
	assert.Equal(t, "anonymous", browse(t, app, ""))
}

func TestOptionalJWTIgnoresInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := optionalJWTApp()
	assert.Equal(t, "anonymous", browse(t, app, "Bearer not-a-token"))
}

func TestOptionalJWTAcceptsValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	app := optionalJWTApp()
	assert.Equal(t, "known", browse(t, app, "Bearer "+signed))
}
