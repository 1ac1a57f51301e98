package middleware

import (
	"github.com/gofiber/fiber/v3"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware shares one token bucket across every caller of the
// routes it guards.
type RateLimitMiddleware struct {
	limiter *rate.Limiter
}

// NewRateLimitMiddleware returns nil when perSecond <= 0.
func NewRateLimitMiddleware(perSecond float64, burst int) *RateLimitMiddleware {
	if perSecond <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimitMiddleware{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (m *RateLimitMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.limiter == nil {
			return c.Next()
		}
		if !m.limiter.Allow() {
			return NewAppError(fiber.StatusTooManyRequests, "Too many match generation requests", nil, nil)
		}
		return c.Next()
	}
}
