package auth

import "github.com/gofiber/fiber/v2"

// HeaderName is the request header expected to carry the API key.
const HeaderName = "X-API-Key"

// Config holds configuration for the auth middleware.
type Config struct {
	// ApiKey is the shared secret required on every request.
	// An empty key disables the check entirely.
	ApiKey string
}

// New creates a middleware handler that rejects requests without a valid
// API key.
func New(config Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Auth disabled when no key is configured
		if config.ApiKey == "" {
			return c.Next()
		}

		if c.Get(HeaderName) != config.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing API key",
			})
		}

		return c.Next()
	}
}
