package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/gpstracker/internal/pkg/requestcontext"
)

const requestContextKey = "request_context"

// RequestContextMiddleware assigns every request an ID, exposes it in the
// X-Request-ID response header and stores it in the request context
func RequestContextMiddleware(serviceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqCtx := requestcontext.FromEchoContext(c, serviceName)
			c.Set(requestContextKey, reqCtx)

			ctx := requestcontext.WithRequestContext(c.Request().Context(), reqCtx)
			c.SetRequest(c.Request().WithContext(ctx))

			c.Response().Header().Set(echo.HeaderXRequestID, reqCtx.RequestID)

			return next(c)
		}
	}
}

// GetRequestContext extracts request context from Echo context
func GetRequestContext(c echo.Context) *requestcontext.RequestContext {
	if reqCtx, ok := c.Get(requestContextKey).(*requestcontext.RequestContext); ok {
		return reqCtx
	}
	return nil
}
