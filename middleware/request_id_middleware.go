package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"fan-pulse/utils/logger"
)

// RequestIDMiddleware propagates an X-Request-ID header, generating one when
// the caller did not send it.
func RequestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			c.Response().Header().Set("X-Request-ID", requestID)

			ctx := logger.WithRequestID(c.Request().Context(), requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
