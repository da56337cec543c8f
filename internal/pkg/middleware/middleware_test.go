package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/requestcontext"
	"github.com/piresc/gpstracker/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPanicRecoveryMiddleware(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	e := echo.New()
	e.Use(RequestContextMiddleware("gps-tracker"))
	e.Use(PanicRecoveryMiddleware(logger.FromZap(zap.New(core))))
	e.GET("/boom", func(c echo.Context) error {
		panic("store handle is nil")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, http.StatusInternalServerError, body.Code)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Panic recovered during request processing", entry.Message)
	assert.Equal(t, "/boom", entry.ContextMap()["path"])
	assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), entry.ContextMap()["request_id"])
}

func TestPanicRecoveryMiddleware_RequiresLogger(t *testing.T) {
	assert.Panics(t, func() { PanicRecoveryMiddleware(nil) })
}

func TestRequestContextMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(RequestContextMiddleware("gps-tracker"))

	var fromCtx, fromEcho string
	e.GET("/", func(c echo.Context) error {
		fromCtx = requestcontext.GetRequestID(c.Request().Context())
		fromEcho = GetRequestContext(c).RequestID
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	e.ServeHTTP(rec, req)

	assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "req-1", fromCtx)
	assert.Equal(t, "req-1", fromEcho)
}

func TestGetRequestContext_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Nil(t, GetRequestContext(c))
}
