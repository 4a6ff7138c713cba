package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handlers) registerHealthRoutes(v1 *echo.Group) {
	v1.GET("/health", h.checkHealth)
}

// checkHealth reports liveness plus the hosted classifier's reachability. A
// down classifier does not fail the probe since the lexicon fallback keeps
// classification working.
func (h *Handlers) checkHealth(c echo.Context) error {
	classifierStatus := "up"
	if err := h.health.CheckClassifierHealth(c.Request().Context()); err != nil {
		classifierStatus = "down"
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":     "healthy",
		"classifier": classifierStatus,
	})
}
