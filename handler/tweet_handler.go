package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"fan-pulse/models"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

func (h *Handlers) registerTweetRoutes(v1 *echo.Group) {
	v1.GET("/tweets", h.listTweets)
}

func (h *Handlers) listTweets(c echo.Context) error {
	limit := parseLimit(c, defaultPageSize, maxPageSize)

	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	sentiment := c.QueryParam("sentiment")

	switch sentiment {
	case "", models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"error": "sentiment must be Positive, Negative, or Neutral",
		})
	}

	tweets, err := h.tweetRepo.List(c.Request().Context(), parseFilter(c), sentiment, limit, offset)
	if err != nil {
		return handleError(c, err, "ListTweets")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"tweets": tweets,
		"limit":  limit,
		"offset": offset,
	})
}
