// Package handler exposes the HTTP handlers.  Handlers bind and
// validate transport concerns, then delegate every state mutation to
// the booking service; they never touch stores directly for writes.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// getUserID extracts the authenticated user id from the echo context
// and converts it to uint64.  JWT numeric claims arrive as float64.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getActor builds the server-verified actor identity from the JWT
// claims the auth middleware stored in the context.
func getActor(c echo.Context) (booking.Actor, error) {
	uid, err := getUserID(c)
	if err != nil {
		return booking.Actor{}, err
	}
	role, _ := c.Get("role").(string)
	return booking.Actor{AccountID: uid, Role: role}, nil
}

// respondError maps booking sentinel errors onto HTTP responses.  The
// error text is surfaced verbatim for transition failures so staff see
// the true reason ("check-in not permitted: reservation is CANCELLED")
// rather than a generic message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, booking.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, booking.ErrInvalidSlot):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, booking.ErrCapacityExceeded),
		errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// reservationView is the JSON shape of a reservation on read paths.
// EffectiveStatus carries the read-time classification (COMPLETED for
// confirmed reservations whose time has passed).  Token is included
// only for the owner and staff.
type reservationView struct {
	ID              uint64  `json:"id"`
	VenueID         uint64  `json:"venue_id"`
	VenueName       string  `json:"venue_name,omitempty"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone,omitempty"`
	PartySize       int     `json:"party_size"`
	ReservationTime string  `json:"reservation_time"`
	MealType        string  `json:"meal_type"`
	Note            string  `json:"note,omitempty"`
	Status          string  `json:"status"`
	EffectiveStatus string  `json:"effective_status"`
	IsGroup         bool    `json:"is_group"`
	Token           *string `json:"token,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func viewOf(res *model.Reservation, now time.Time, includeToken bool) reservationView {
	v := reservationView{
		ID:              res.ID,
		VenueID:         res.VenueID,
		VenueName:       res.VenueName,
		CustomerName:    res.CustomerName,
		CustomerEmail:   res.CustomerEmail,
		CustomerPhone:   res.CustomerPhone,
		PartySize:       res.PartySize,
		ReservationTime: res.ReservationTime.UTC().Format(time.RFC3339),
		MealType:        string(res.MealType),
		Note:            res.Note,
		Status:          string(res.Status),
		EffectiveStatus: string(res.EffectiveStatus(now)),
		IsGroup:         res.IsGroup(),
		CreatedAt:       res.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeToken {
		v.Token = res.Token
	}
	return v
}
