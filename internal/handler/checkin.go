package handler

// This file defines the staff-only desk endpoints: look up a
// reservation by check-in token, redeem a token at arrival, and
// confirm a pending walk-in or phone reservation.

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/booking"
)

// CheckInHandler serves the staff desk endpoints.
type CheckInHandler struct {
	Svc *booking.Service
}

// checkInRequest is the JSON body of POST /v1/checkin.
type checkInRequest struct {
	Token string `json:"token"`
}

// LookupToken resolves a check-in token to its reservation without
// changing any state.  Staff use it to preview a booking at the desk.
func (h *CheckInHandler) LookupToken(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing token"})
	}
	res, err := h.Svc.ReservationByToken(ctx, actor, token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(res, h.Svc.Now(), true))
}

// CheckIn redeems a check-in token.  Only CONFIRMED reservations can be
// checked in; every other state yields 409 with the true reason, and a
// second redeem of the same token fails because the reservation is
// already CHECKED_IN.
func (h *CheckInHandler) CheckIn(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkInRequest
	if err := c.Bind(&req); err != nil || req.Token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing token"})
	}
	res, err := h.Svc.CheckIn(ctx, actor, req.Token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(res, h.Svc.Now(), true))
}

// ConfirmReservation promotes a PENDING reservation to CONFIRMED and
// mints its check-in token.  Seats were already consumed at creation,
// so no capacity check is repeated here.
func (h *CheckInHandler) ConfirmReservation(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Svc.ConfirmReservation(ctx, actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(res, h.Svc.Now(), true))
}
