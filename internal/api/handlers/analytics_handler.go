package handlers

import (
	"net/http"

	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
	log       logger.Logger
}

func NewAnalyticsHandler(analytics *services.AnalyticsService, log logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, log: log}
}

func (h *AnalyticsHandler) Register(g *echo.Group) {
	g.GET("/analytics/financial", h.GetFinancialStats)
}

func (h *AnalyticsHandler) GetFinancialStats(c echo.Context) error {
	artistID := c.QueryParam("artistId")
	if artistID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Artist ID is required"})
	}

	startDate, err := parseDateParam(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	endDate, err := parseDateParam(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	stats, err := h.analytics.GetFinancialStats(c.Request().Context(), artistID, startDate, endDate)
	if err != nil {
		h.log.Error("Failed to compute financial stats", "artist_id", artistID, "error", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"stats": stats})
}
