package handlers

import (
	"net/http"

	"streetmarket/internal/domain"
	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type PerformanceHandler struct {
	performances *services.PerformanceService
	log          logger.Logger
}

func NewPerformanceHandler(performances *services.PerformanceService, log logger.Logger) *PerformanceHandler {
	return &PerformanceHandler{performances: performances, log: log}
}

func (h *PerformanceHandler) Register(g *echo.Group) {
	g.POST("/performances", h.StartPerformance)
	g.GET("/performances", h.ListPerformances)
	g.GET("/performances/stats", h.GetStats)
	g.POST("/performances/:id/end", h.EndPerformance)
	g.DELETE("/performances/:id", h.DeletePerformance)
}

type startPerformanceRequest struct {
	ArtistID string `json:"artistId"`
	Location string `json:"location"`
}

func (h *PerformanceHandler) StartPerformance(c echo.Context) error {
	var req startPerformanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	performance, err := h.performances.StartPerformance(c.Request().Context(), req.ArtistID, req.Location)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"performance": performance})
}

func (h *PerformanceHandler) ListPerformances(c echo.Context) error {
	performances, err := h.performances.ListByArtist(c.Request().Context(), c.QueryParam("artistId"))
	if err != nil {
		return writeError(c, err)
	}
	if performances == nil {
		performances = []*domain.Performance{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"performances": performances})
}

type endPerformanceRequest struct {
	CashCollected float64 `json:"cashCollected"`
	Notes         string  `json:"notes"`
}

func (h *PerformanceHandler) EndPerformance(c echo.Context) error {
	var req endPerformanceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := h.performances.EndPerformance(c.Request().Context(), c.Param("id"), req.CashCollected, req.Notes); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Performance ended"})
}

func (h *PerformanceHandler) DeletePerformance(c echo.Context) error {
	if err := h.performances.DeletePerformance(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Performance deleted"})
}

func (h *PerformanceHandler) GetStats(c echo.Context) error {
	startDate, err := parseDateParam(c.QueryParam("startDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	endDate, err := parseDateParam(c.QueryParam("endDate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	stats, err := h.performances.GetStats(c.Request().Context(), c.QueryParam("artistId"), startDate, endDate)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stats": stats})
}
