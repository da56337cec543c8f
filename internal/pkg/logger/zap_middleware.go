package logger

import (
	"time"

	"github.com/labstack/echo/v4"
)

// ZapEchoMiddleware creates middleware for Echo framework using Zap logger
func ZapEchoMiddleware(logger *ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			path := c.Request().URL.Path
			if raw := c.Request().URL.RawQuery; raw != "" {
				path = path + "?" + raw
			}

			err := next(c)
			if err != nil {
				// Let echo write the error response so the logged status is final
				c.Error(err)
			}

			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			logger.LogHTTPRequest(c.Request().Method, path, c.RealIP(), requestID,
				c.Response().Status, time.Since(start), err)

			return nil
		}
	}
}
