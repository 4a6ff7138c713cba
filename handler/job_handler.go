package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultJobBatchSize = 40

func (h *Handlers) registerJobRoutes(v1 *echo.Group) {
	v1.POST("/jobs/classify", h.runClassifyJob)
}

// runClassifyJob runs one classification batch synchronously and reports the
// outcome. Repeated calls drain the backlog batch by batch.
func (h *Handlers) runClassifyJob(c echo.Context) error {
	batchSize, err := strconv.Atoi(c.QueryParam("batch_size"))
	if err != nil || batchSize <= 0 {
		batchSize = defaultJobBatchSize
	}

	result, err := h.classifier.ClassifyBatch(c.Request().Context(), batchSize)
	if err != nil {
		return handleError(c, err, "RunClassifyJob")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"processed": result.ProcessedCount,
		"succeeded": result.SuccessCount,
		"fallback":  result.FallbackCount,
		"errors":    result.ErrorCount,
		"has_more":  result.HasMore,
	})
}
