package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloudinaryClientInitializesOnce(t *testing.T) {
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")

	app := fiber.New()
	var seen []*cloudinary.Cloudinary
	app.Get("/", cloudinaryClient(), func(c *fiber.Ctx) error {
		seen = append(seen, c.Locals("cld").(*cloudinary.Cloudinary))
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1], "client built once and shared")
}
