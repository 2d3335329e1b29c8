package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafefinder/config"
	deliverycontext "cafefinder/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho(buf *bytes.Buffer, debug bool) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := config.Defaults()
	cfg.Env.Debug = debug

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)
	e.Use(NewLoggerMiddleware(logger, cfg).Handle)

	e.GET("/ok", func(c echo.Context) error {
		return c.String(http.StatusOK, deliverycontext.GetRequestIDFromContext(c.Request().Context()))
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	return e
}

func TestRequestIDMiddleware(t *testing.T) {
	e := newEcho(&bytes.Buffer{}, false)

	t.Run("generates an id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		id := rec.Header().Get(deliverycontext.HeaderXRequestID)
		require.NotEmpty(t, id)
		assert.Equal(t, id, rec.Body.String())
	})

	t.Run("reuses the client id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(deliverycontext.HeaderXRequestID, "abc-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", rec.Header().Get(deliverycontext.HeaderXRequestID))
		assert.Equal(t, "abc-123", rec.Body.String())
	})
}

func TestLoggerMiddleware(t *testing.T) {
	t.Run("quiet on success outside debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		rec := httptest.NewRecorder()
		newEcho(buf, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, buf.String(), "HTTP Request")
	})

	t.Run("logs failures with final status", func(t *testing.T) {
		buf := &bytes.Buffer{}
		rec := httptest.NewRecorder()
		newEcho(buf, false).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Contains(t, buf.String(), "HTTP Request")
		assert.Contains(t, buf.String(), "status=418")
		assert.Contains(t, buf.String(), "request_id=")
	})

	t.Run("logs everything in debug", func(t *testing.T) {
		buf := &bytes.Buffer{}
		newEcho(buf, true).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok?q=latte", nil))

		assert.Contains(t, buf.String(), `query="q=latte"`)
	})
}
