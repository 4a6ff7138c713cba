package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	defaultTopClubs  = 10
	defaultBalance   = 20
	defaultWordCloud = 100
	maxLimit         = 500
)

func (h *Handlers) registerStatsRoutes(v1 *echo.Group) {
	v1.GET("/stats/overview", h.getOverview)
	v1.GET("/stats/distribution", h.getDistribution)
	v1.GET("/stats/clubs", h.getClubComparison)
	v1.GET("/stats/trends/yearly", h.getYearlyTrends)
	v1.GET("/stats/trends/monthly", h.getMonthlyTrends)
	v1.GET("/stats/top-clubs", h.getTopClubs)
	v1.GET("/stats/balance", h.getClubBalance)
	v1.GET("/wordcloud", h.getWordCloud)
	v1.GET("/clubs", h.getClubs)
	v1.GET("/years", h.getYears)
}

func (h *Handlers) getOverview(c echo.Context) error {
	overview, err := h.stats.Overview(c.Request().Context(), parseFilter(c))
	if err != nil {
		return handleError(c, err, "GetOverview")
	}

	return c.JSON(http.StatusOK, overview)
}

func (h *Handlers) getDistribution(c echo.Context) error {
	slices, err := h.stats.Distribution(c.Request().Context(), parseFilter(c))
	if err != nil {
		return handleError(c, err, "GetDistribution")
	}

	return c.JSON(http.StatusOK, map[string]any{"distribution": slices})
}

func (h *Handlers) getClubComparison(c echo.Context) error {
	counts, err := h.stats.ClubComparison(c.Request().Context(), parseFilter(c))
	if err != nil {
		return handleError(c, err, "GetClubComparison")
	}

	return c.JSON(http.StatusOK, map[string]any{"clubs": counts})
}

func (h *Handlers) getYearlyTrends(c echo.Context) error {
	points, err := h.stats.YearlyTrends(c.Request().Context(), parseFilter(c))
	if err != nil {
		return handleError(c, err, "GetYearlyTrends")
	}

	return c.JSON(http.StatusOK, map[string]any{"trends": points})
}

func (h *Handlers) getMonthlyTrends(c echo.Context) error {
	points, err := h.stats.MonthlyTrends(c.Request().Context(), parseFilter(c))
	if err != nil {
		return handleError(c, err, "GetMonthlyTrends")
	}

	return c.JSON(http.StatusOK, map[string]any{"trends": points})
}

func (h *Handlers) getTopClubs(c echo.Context) error {
	limit := parseLimit(c, defaultTopClubs, maxLimit)

	clubs, err := h.stats.TopClubs(c.Request().Context(), parseFilter(c), limit)
	if err != nil {
		return handleError(c, err, "GetTopClubs")
	}

	return c.JSON(http.StatusOK, map[string]any{"clubs": clubs})
}

func (h *Handlers) getClubBalance(c echo.Context) error {
	limit := parseLimit(c, defaultBalance, maxLimit)

	balances, err := h.stats.ClubBalance(c.Request().Context(), parseFilter(c), limit)
	if err != nil {
		return handleError(c, err, "GetClubBalance")
	}

	return c.JSON(http.StatusOK, map[string]any{"clubs": balances})
}

func (h *Handlers) getWordCloud(c echo.Context) error {
	limit := parseLimit(c, defaultWordCloud, maxLimit)

	words, err := h.wordCloud.TopWords(c.Request().Context(), parseFilter(c), limit)
	if err != nil {
		return handleError(c, err, "GetWordCloud")
	}

	return c.JSON(http.StatusOK, map[string]any{"words": words})
}

func (h *Handlers) getClubs(c echo.Context) error {
	clubs, err := h.stats.Clubs(c.Request().Context())
	if err != nil {
		return handleError(c, err, "GetClubs")
	}

	return c.JSON(http.StatusOK, map[string]any{"clubs": clubs})
}

func (h *Handlers) getYears(c echo.Context) error {
	years, err := h.stats.Years(c.Request().Context())
	if err != nil {
		return handleError(c, err, "GetYears")
	}

	return c.JSON(http.StatusOK, map[string]any{"years": years})
}
