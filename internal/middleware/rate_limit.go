package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// RateLimit throttles a route group per authenticated user, falling back to
// the client IP for unauthenticated traffic. The identifier keeps separate
// groups (workflow actions, proof uploads) from sharing a bucket.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Second
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			subject := fmt.Sprintf("%v", c.Locals("user_id"))
			if subject == "" || subject == "0" || subject == "<nil>" {
				subject = c.IP()
			}
			return identifier + ":" + subject
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many requests, slow down")
		},
	})
}
