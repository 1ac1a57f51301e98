package v1

import (
	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Match     *handler.MatchHandler
	Dashboard *handler.DashboardHandler
}

// Register mounts every /api/v1 route behind the bearer auth middleware.
func Register(r fiber.Router, auth *middleware.AuthMiddleware, h Handlers) {
	if r == nil {
		return
	}

	protected := r
	if auth != nil {
		protected = r.Group("", auth.Middleware())
	}

	if h.Match != nil {
		h.Match.RegisterRoutes(protected)
	}
	if h.Dashboard != nil {
		h.Dashboard.RegisterRoutes(protected)
	}
}
