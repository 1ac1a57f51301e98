package app

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"talent-match/internal/delivery/http/handler"
	"talent-match/internal/delivery/http/middleware"
	"talent-match/internal/delivery/http/routes"
	v1 "talent-match/internal/delivery/http/routes/v1"
	"talent-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
	WS    *http.Server
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:      c.Config.App.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, WS: newWSServer(c)}
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	errMw := middleware.NewErrorMiddleware(c.Logger.Named("http"))
	accessMw := middleware.NewAccessLogMiddleware(c.Logger.Named("access"))

	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	var cachePinger handler.Pinger
	if c.Cache != nil && c.Cache.Enabled() {
		cachePinger = c.Cache
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Store, cachePinger),
		middleware.NewAuthMiddleware(c.JWT),
		v1.Handlers{
			Match: handler.NewMatchHandler(c.Matching, middleware.NewRateLimitMiddleware(
				c.Config.Matching.GenerateRate,
				c.Config.Matching.GenerateBurst,
			)),
			Dashboard: handler.NewDashboardHandler(c.Dashboard),
		},
	)
	registry.Register(app)
}

func newWSServer(c *Container) *http.Server {
	addr, err := ListenAddr(c.Config.App.WSPort)
	if err != nil {
		return nil
	}
	return &http.Server{
		Addr:              addr,
		Handler:           ws.NewServeMux(ws.NewHandler(c.Hub, c.Logger.Named("ws"))),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
