package handler

// This file defines the public browsing API.  Unauthenticated clients
// can list venues, inspect a single venue, and ask for the bookable
// slot grid or the remaining capacity of a specific slot.

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// VenueHandler serves venue discovery endpoints.
type VenueHandler struct {
	Svc *booking.Service
}

// publicVenue is the sanitized venue shape for list and detail responses.
type publicVenue struct {
	ID             uint64 `json:"id"`
	Name           string `json:"name"`
	Capacity       int    `json:"capacity"`
	OperatingHours string `json:"operating_hours"`
	Location       string `json:"location,omitempty"`
}

func toPublicVenue(v *model.Venue) publicVenue {
	return publicVenue{
		ID:             v.ID,
		Name:           v.Name,
		Capacity:       v.Capacity,
		OperatingHours: v.OperatingHours,
		Location:       v.Location,
	}
}

// ListVenues returns all venues.  Response JSON contains an "items"
// array of publicVenue.
func (h *VenueHandler) ListVenues(c echo.Context) error {
	ctx := c.Request().Context()
	venues, err := h.Svc.Venues(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]publicVenue, 0, len(venues))
	for i := range venues {
		out = append(out, toPublicVenue(&venues[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetVenue returns a single venue by id.
func (h *VenueHandler) GetVenue(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	v, err := h.Svc.Venue(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toPublicVenue(v))
}

// GetSlots lists the bookable slot start times of a venue for one
// calendar date.  The date query parameter uses YYYY-MM-DD; slots are
// returned as RFC3339 UTC timestamps in ascending order.
func (h *VenueHandler) GetSlots(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}
	slots, err := h.Svc.BookableSlots(ctx, id, date)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.UTC().Format(time.RFC3339))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue_id": id,
		"date":     date.Format("2006-01-02"),
		"slots":    out,
	})
}

// GetAvailability reports whether a party of the given size currently
// fits into the requested slot.  The answer is advisory; creation
// repeats the check atomically.  The time query parameter is RFC3339.
func (h *VenueHandler) GetAvailability(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	at, err := time.Parse(time.RFC3339, c.QueryParam("time"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time, expected RFC3339"})
	}
	partySize, err := strconv.Atoi(c.QueryParam("party_size"))
	if err != nil || partySize < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid party_size"})
	}
	available, err := h.Svc.CheckCapacity(ctx, id, at.UTC(), partySize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"venue_id":   id,
		"time":       at.UTC().Format(time.RFC3339),
		"party_size": partySize,
		"available":  available,
	})
}
