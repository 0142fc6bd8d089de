package handlers

import (
	"errors"
	"net/http"
	"time"

	"streetmarket/internal/domain"
	"streetmarket/internal/services"
	"streetmarket/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuctionHandler struct {
	auctions *services.AuctionService
	log      logger.Logger
}

func NewAuctionHandler(auctions *services.AuctionService, log logger.Logger) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, log: log}
}

func (h *AuctionHandler) Register(g *echo.Group) {
	g.POST("/auctions", h.CreateAuction)
	g.GET("/auctions", h.ListAuctions)
	g.GET("/auctions/:id", h.GetAuction)
	g.POST("/auctions/:id/bid", h.PlaceBid)
	g.POST("/auctions/:id/end", h.EndAuction)
}

type createAuctionRequest struct {
	ArtworkID   string    `json:"artworkId"`
	StartingBid float64   `json:"startingBid"`
	EndTime     time.Time `json:"endTime"`
}

func (h *AuctionHandler) CreateAuction(c echo.Context) error {
	var req createAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	auction, err := h.auctions.CreateAuction(c.Request().Context(), req.ArtworkID, req.StartingBid, req.EndTime)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{"auction": auction})
}

// ListAuctions returns every auction, or just the active one when
// ?active=true. No active auction yields an empty list, not an error.
func (h *AuctionHandler) ListAuctions(c echo.Context) error {
	ctx := c.Request().Context()

	if c.QueryParam("active") == "true" {
		auction, err := h.auctions.GetActiveAuction(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusOK, map[string]interface{}{"auctions": []*domain.Auction{}})
		}
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{"auctions": []*domain.Auction{auction}})
	}

	auctions, err := h.auctions.ListAuctions(ctx)
	if err != nil {
		return writeError(c, err)
	}
	if auctions == nil {
		auctions = []*domain.Auction{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"auctions": auctions})
}

func (h *AuctionHandler) GetAuction(c echo.Context) error {
	auction, err := h.auctions.GetAuction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"auction": auction})
}

type placeBidRequest struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

func (h *AuctionHandler) PlaceBid(c echo.Context) error {
	var req placeBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	currentBid, err := h.auctions.PlaceBid(c.Request().Context(), c.Param("id"), req.UserID, req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Bid accepted",
		"currentBid": currentBid,
	})
}

func (h *AuctionHandler) EndAuction(c echo.Context) error {
	if err := h.auctions.EndAuction(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Auction ended"})
}
