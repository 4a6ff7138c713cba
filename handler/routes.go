package handler

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	custommiddleware "fan-pulse/middleware"
	"fan-pulse/metrics"
)

// RegisterRoutes wires the middleware chain and all /v1 routes.
func RegisterRoutes(e *echo.Echo, h *Handlers, collector *metrics.Collector, logger *slog.Logger) {
	// Request ID first so every later log line carries it
	e.Use(custommiddleware.RequestIDMiddleware())
	e.Use(echomiddleware.Recover())

	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-Request-ID"},
	}))

	e.Use(custommiddleware.LoggingMiddleware(logger))

	// Compression last; health and metrics stay uncompressed
	e.Use(echomiddleware.GzipWithConfig(echomiddleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.Contains(c.Path(), "/health") || strings.Contains(c.Path(), "/metrics")
		},
	}))

	v1 := e.Group("/v1")

	h.registerHealthRoutes(v1)
	h.registerStatsRoutes(v1)
	h.registerTweetRoutes(v1)
	h.registerJobRoutes(v1)

	e.GET("/metrics", echo.WrapHandler(collector.Handler()))
}
