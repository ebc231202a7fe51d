package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header carrying the ray ID on requests and responses.
const HeaderName = "X-Ray-ID"

// New creates a middleware handler that tags every request with a unique
// ray ID for tracing. An incoming ray ID is honored so callers can
// correlate across services; otherwise a fresh UUID is generated. The ID
// is stored in c.Locals("ray_id") and echoed in the response headers.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderName)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals("ray_id", id)
		c.Set(HeaderName, id)

		return c.Next()
	}
}
