package handlers

import (
	"net/http"

	"streetmarket/internal/domain"
	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CommissionHandler struct {
	commissions *services.CommissionService
	log         logger.Logger
}

func NewCommissionHandler(commissions *services.CommissionService, log logger.Logger) *CommissionHandler {
	return &CommissionHandler{commissions: commissions, log: log}
}

func (h *CommissionHandler) Register(g *echo.Group) {
	g.POST("/commissions", h.CreateCommission)
	g.GET("/commissions", h.ListCommissions)
	g.GET("/commissions/stats", h.GetStats)
	g.GET("/commissions/:id", h.GetCommission)
	g.PATCH("/commissions/:id", h.UpdateStatus)
	g.DELETE("/commissions/:id", h.DeleteCommission)
}

type createCommissionRequest struct {
	ArtistID    string  `json:"artistId"`
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	WorkType    string  `json:"workType"`
	Budget      float64 `json:"budget"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
}

func (h *CommissionHandler) CreateCommission(c echo.Context) error {
	var req createCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	commission, err := h.commissions.CreateCommission(c.Request().Context(), services.CreateCommissionInput{
		ArtistID:    req.ArtistID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		WorkType:    req.WorkType,
		Budget:      req.Budget,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"commission": commission})
}

func (h *CommissionHandler) ListCommissions(c echo.Context) error {
	commissions, err := h.commissions.ListByArtist(c.Request().Context(), c.QueryParam("artistId"))
	if err != nil {
		return writeError(c, err)
	}
	if commissions == nil {
		commissions = []*domain.Commission{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"commissions": commissions})
}

func (h *CommissionHandler) GetCommission(c echo.Context) error {
	commission, err := h.commissions.GetCommission(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"commission": commission})
}

type updateCommissionRequest struct {
	Status domain.CommissionStatus `json:"status"`
	Notes  string                  `json:"notes"`
}

func (h *CommissionHandler) UpdateStatus(c echo.Context) error {
	var req updateCommissionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if err := h.commissions.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, req.Notes); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Commission updated"})
}

func (h *CommissionHandler) DeleteCommission(c echo.Context) error {
	if err := h.commissions.DeleteCommission(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Commission deleted"})
}

func (h *CommissionHandler) GetStats(c echo.Context) error {
	stats, err := h.commissions.GetStats(c.Request().Context(), c.QueryParam("artistId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"stats": stats})
}
