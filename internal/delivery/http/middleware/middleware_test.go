package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talent-match/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(final fiber.Handler, mws ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(zap.NewNop()).Middleware())
	for _, mw := range mws {
		app.Use(mw)
	}
	app.Get("/", final)
	return app
}

func status(t *testing.T, app *fiber.App, header string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func ok(c fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) }

func TestErrorMiddleware_MasksServerErrors(t *testing.T) {
	app := newApp(func(fiber.Ctx) error {
		return NewAppError(http.StatusBadGateway, "db password is hunter2", nil, errors.New("boom"))
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := newApp(func(fiber.Ctx) error { panic("nope") })
	assert.Equal(t, http.StatusInternalServerError, status(t, app, ""))
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewHMACService("secret", "test", time.Hour)
	auth := NewAuthMiddleware(svc)
	userID := uuid.New()

	var seen uuid.UUID
	app := newApp(func(c fiber.Ctx) error {
		seen, _ = c.Locals(CtxUserIDKey).(uuid.UUID)
		return ok(c)
	}, auth.Middleware())

	assert.Equal(t, http.StatusUnauthorized, status(t, app, ""))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "Basic abc"))
	assert.Equal(t, http.StatusUnauthorized, status(t, app, "Bearer not.a.token"))

	tok, err := svc.GenerateAccessToken(userID, "", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, status(t, app, "bearer "+tok))
	assert.Equal(t, userID, seen)
}

func TestRateLimitMiddleware(t *testing.T) {
	assert.Nil(t, NewRateLimitMiddleware(0, 5))

	rl := NewRateLimitMiddleware(0.001, 2)
	app := newApp(ok, rl.Middleware())
	assert.Equal(t, http.StatusNoContent, status(t, app, ""))
	assert.Equal(t, http.StatusNoContent, status(t, app, ""))
	assert.Equal(t, http.StatusTooManyRequests, status(t, app, ""))
}

func TestBearerTokenFromHeader(t *testing.T) {
	tok, ok := bearerTokenFromHeader("  Bearer   abc ")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerTokenFromHeader("Bearer ")
	assert.False(t, ok)
}
