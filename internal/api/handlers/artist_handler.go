package handlers

import (
	"net/http"
	"strconv"

	"streetmarket/internal/domain"
	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ArtistHandler struct {
	artists *services.ArtistService
	log     logger.Logger
}

func NewArtistHandler(artists *services.ArtistService, log logger.Logger) *ArtistHandler {
	return &ArtistHandler{artists: artists, log: log}
}

func (h *ArtistHandler) Register(g *echo.Group) {
	g.POST("/artists", h.CreateArtist)
	g.GET("/artists", h.ListArtists)
	g.GET("/artists/:id", h.GetArtist)
	g.PUT("/artists/:id", h.UpdateArtist)
	g.DELETE("/artists/:id", h.DeleteArtist)
	g.POST("/artists/:id/like", h.LikeArtist)
	g.DELETE("/artists/:id/like", h.UnlikeArtist)
}

type createArtistRequest struct {
	Name        string          `json:"name"`
	Bio         string          `json:"bio"`
	Location    domain.Location `json:"location"`
	Specialties []string        `json:"specialties"`
	HourlyRate  float64         `json:"hourlyRate"`
}

func (h *ArtistHandler) CreateArtist(c echo.Context) error {
	var req createArtistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	artist, err := h.artists.CreateArtist(c.Request().Context(), services.CreateArtistInput{
		Name:        req.Name,
		Bio:         req.Bio,
		Location:    req.Location,
		Specialties: req.Specialties,
		HourlyRate:  req.HourlyRate,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"artist": artist})
}

// ListArtists serves three shapes of the same collection: full list,
// ?search=term, and ?trending=true with an optional limit.
func (h *ArtistHandler) ListArtists(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		artists []*domain.Artist
		err     error
	)
	switch {
	case c.QueryParam("search") != "":
		artists, err = h.artists.SearchArtists(ctx, c.QueryParam("search"))
	case c.QueryParam("trending") == "true":
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		artists, err = h.artists.ListTrending(ctx, limit)
	default:
		artists, err = h.artists.ListArtists(ctx)
	}
	if err != nil {
		return writeError(c, err)
	}

	if artists == nil {
		artists = []*domain.Artist{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"artists": artists})
}

func (h *ArtistHandler) GetArtist(c echo.Context) error {
	artist, err := h.artists.GetArtist(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"artist": artist})
}

func (h *ArtistHandler) UpdateArtist(c echo.Context) error {
	var artist domain.Artist
	if err := c.Bind(&artist); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	artist.ID = c.Param("id")

	if err := h.artists.UpdateArtist(c.Request().Context(), &artist); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"artist": artist})
}

func (h *ArtistHandler) DeleteArtist(c echo.Context) error {
	if err := h.artists.DeleteArtist(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artist deleted"})
}

func (h *ArtistHandler) LikeArtist(c echo.Context) error {
	if err := h.artists.LikeArtist(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artist liked"})
}

func (h *ArtistHandler) UnlikeArtist(c echo.Context) error {
	if err := h.artists.UnlikeArtist(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Artist unliked"})
}
