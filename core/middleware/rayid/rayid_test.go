package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayID_GeneratesID(t *testing.T) {
	app := fiber.New()
	app.Use(New())

	var captured string
	app.Get("/ping", func(c *fiber.Ctx) error {
		captured, _ = c.Locals("ray_id").(string)
		return c.SendString("pong")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)

	assert.NotEmpty(t, captured)
	assert.Equal(t, captured, resp.Header.Get(HeaderName))
}

func TestRayID_HonorsIncomingID(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderName, "upstream-trace-1")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "upstream-trace-1", resp.Header.Get(HeaderName))
}
