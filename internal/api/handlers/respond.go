package handlers

import (
	"errors"
	"net/http"
	"time"

	"streetmarket/internal/domain"

	"github.com/labstack/echo/v4"
)

// writeError maps domain errors onto HTTP statuses. Unrecognized errors
// surface as a generic 500 so repository details never leak to clients.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrAuctionNotActive),
		errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrAuctionExpired),
		errors.Is(err, domain.ErrAuctionOngoing):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An unexpected error occurred"})
	}
}

// parseDateParam accepts ISO-8601 timestamps or plain dates. Returns nil
// for an empty parameter.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.New("invalid date: " + value)
}
