package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"fan-pulse/utils/logger"
)

// LoggingMiddleware logs one line per request with method, path, status, and
// duration. Health probes are skipped to reduce noise.
func LoggingMiddleware(baseLogger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if req.URL.Path == "/v1/health" {
				return next(c)
			}

			start := time.Now()
			ctx := req.Context()

			err := next(c)

			duration := time.Since(start)
			res := c.Response()

			logAttrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", duration.Milliseconds(),
				"response_size", res.Size,
				"remote_addr", c.RealIP(),
				"request_id", logger.RequestIDFromContext(ctx),
			}

			switch {
			case res.Status >= 500:
				baseLogger.ErrorContext(ctx, "request completed", logAttrs...)
			case res.Status >= 400:
				baseLogger.WarnContext(ctx, "request completed", logAttrs...)
			default:
				baseLogger.InfoContext(ctx, "request completed", logAttrs...)
			}

			if err != nil {
				baseLogger.ErrorContext(ctx, "request error",
					"method", req.Method,
					"path", req.URL.Path,
					"error", err,
					"request_id", logger.RequestIDFromContext(ctx))
			}

			return err
		}
	}
}
