package handlers

import (
	"net/http"
	"strconv"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ArtworkHandler struct {
	artworks *services.ArtworkService
	log      logger.Logger
}

func NewArtworkHandler(artworks *services.ArtworkService, log logger.Logger) *ArtworkHandler {
	return &ArtworkHandler{artworks: artworks, log: log}
}

func (h *ArtworkHandler) Register(g *echo.Group) {
	g.POST("/artworks", h.CreateArtwork)
	g.GET("/artworks", h.ListArtworks)
	g.GET("/artworks/:id", h.GetArtwork)
	g.PUT("/artworks/:id", h.UpdateArtwork)
	g.DELETE("/artworks/:id", h.DeleteArtwork)
	g.POST("/artworks/:id/sold", h.MarkSold)
	g.POST("/artworks/:id/view", h.RecordView)
	g.POST("/artworks/:id/like", h.LikeArtwork)
	g.DELETE("/artworks/:id/like", h.UnlikeArtwork)
}

type createArtworkRequest struct {
	ArtistID    string             `json:"artistId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Medium      domain.Medium      `json:"medium"`
	Price       float64            `json:"price"`
	IsPublished bool               `json:"isPublished"`
	Tags        []string           `json:"tags"`
	Dimensions  *domain.Dimensions `json:"dimensions"`
	TimeSpent   float64            `json:"timeSpent"`
}

func (h *ArtworkHandler) CreateArtwork(c echo.Context) error {
	var req createArtworkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	artwork, err := h.artworks.CreateArtwork(c.Request().Context(), services.CreateArtworkInput{
		ArtistID:    req.ArtistID,
		Title:       req.Title,
		Description: req.Description,
		Medium:      req.Medium,
		Price:       req.Price,
		IsPublished: req.IsPublished,
		Tags:        req.Tags,
		Dimensions:  req.Dimensions,
		TimeSpent:   req.TimeSpent,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"artwork": artwork})
}

func (h *ArtworkHandler) ListArtworks(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		artworks []*domain.Artwork
		err      error
	)
	switch {
	case c.QueryParam("search") != "":
		artworks, err = h.artworks.SearchArtworks(ctx, c.QueryParam("search"))
	case c.QueryParam("top") == "true":
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		artworks, err = h.artworks.ListTop(ctx, limit)
	case c.QueryParam("artistId") != "":
		artworks, err = h.artworks.ListByArtist(ctx, c.QueryParam("artistId"))
	case c.QueryParam("published") == "true":
		artworks, err = h.artworks.ListPublished(ctx)
	default:
		artworks, err = h.artworks.ListArtworks(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}

	if artworks == nil {
		artworks = []*domain.Artwork{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"artworks": artworks})
}

func (h *ArtworkHandler) GetArtwork(c echo.Context) error {
	artwork, err := h.artworks.GetArtwork(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"artwork": artwork})
}

func (h *ArtworkHandler) UpdateArtwork(c echo.Context) error {
	var artwork domain.Artwork
	if err := c.Bind(&artwork); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	artwork.ID = c.Param("id")

	if err := h.artworks.UpdateArtwork(c.Request().Context(), &artwork); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"artwork": artwork})
}

func (h *ArtworkHandler) DeleteArtwork(c echo.Context) error {
	if err := h.artworks.DeleteArtwork(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artwork deleted"})
}

type markSoldRequest struct {
	SoldDate *time.Time `json:"soldDate"`
}

// MarkSold records the sale; the sale date defaults to now when omitted.
func (h *ArtworkHandler) MarkSold(c echo.Context) error {
	var req markSoldRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	soldDate := time.Now()
	if req.SoldDate != nil {
		soldDate = *req.SoldDate
	}

	if err := h.artworks.MarkSold(c.Request().Context(), c.Param("id"), soldDate); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artwork marked sold"})
}

func (h *ArtworkHandler) RecordView(c echo.Context) error {
	if err := h.artworks.RecordView(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "View recorded"})
}

func (h *ArtworkHandler) LikeArtwork(c echo.Context) error {
	if err := h.artworks.LikeArtwork(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artwork liked"})
}

func (h *ArtworkHandler) UnlikeArtwork(c echo.Context) error {
	if err := h.artworks.UnlikeArtwork(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artwork unliked"})
}
