package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fan-pulse/domain"
	"fan-pulse/models"
	"fan-pulse/repository"
	"fan-pulse/service"
)

// Handlers bundles the HTTP layer's dependencies.
type Handlers struct {
	stats      service.StatsService
	wordCloud  service.WordCloudService
	classifier service.ClassifierService
	health     service.HealthCheckerService
	tweetRepo  repository.TweetRepository
	logger     *slog.Logger
}

// NewHandlers creates the HTTP handler set.
func NewHandlers(
	stats service.StatsService,
	wordCloud service.WordCloudService,
	classifier service.ClassifierService,
	health service.HealthCheckerService,
	tweetRepo repository.TweetRepository,
	logger *slog.Logger,
) *Handlers {
	return &Handlers{
		stats:      stats,
		wordCloud:  wordCloud,
		classifier: classifier,
		health:     health,
		tweetRepo:  tweetRepo,
		logger:     logger,
	}
}

// handleError converts service errors to HTTP responses.
func handleError(c echo.Context, err error, operation string) error {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, domain.ErrTweetNotFound):
		status = http.StatusNotFound
		message = "tweet not found"
	case errors.Is(err, domain.ErrClassifierUnavailable):
		status = http.StatusServiceUnavailable
		message = "classifier unavailable"
	}

	return echo.NewHTTPError(status, map[string]string{
		"error":     message,
		"operation": operation,
	})
}

// parseFilter reads the shared year/club query params.
func parseFilter(c echo.Context) models.StatsFilter {
	year, _ := strconv.Atoi(c.QueryParam("year"))
	if year < 0 {
		year = 0
	}

	return models.StatsFilter{
		Year: year,
		Club: c.QueryParam("club"),
	}
}

// parseLimit reads limit with a default and a hard ceiling.
func parseLimit(c echo.Context, fallback, max int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}

	if limit > max {
		return max
	}

	return limit
}
