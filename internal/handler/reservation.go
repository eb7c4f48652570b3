package handler

// This file defines the authenticated reservation endpoints used by
// customers: create a booking, list own bookings, fetch one and cancel
// one.  Staff may use the same endpoints; ownership checks are relaxed
// for them inside the booking service.

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// ReservationHandler serves the reservation lifecycle endpoints.
type ReservationHandler struct {
	Svc *booking.Service
}

// createReservationRequest is the JSON body of POST /v1/reservations.
// Pending is honored only for staff callers and rejected otherwise.
type createReservationRequest struct {
	VenueID         uint64 `json:"venue_id"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	PartySize       int    `json:"party_size"`
	ReservationTime string `json:"reservation_time"`
	MealType        string `json:"meal_type"`
	Note            string `json:"note"`
	Pending         bool   `json:"pending"`
}

// CreateReservation books a slot for the authenticated account.  A
// successful booking returns 201 with the stored reservation including
// its check-in token; a full slot returns 409 and creates nothing.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	at, err := time.Parse(time.RFC3339, req.ReservationTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation_time, expected RFC3339"})
	}
	accountID := actor.AccountID
	res, err := h.Svc.CreateReservation(ctx, actor, booking.CreateRequest{
		VenueID:         req.VenueID,
		AccountID:       &accountID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		PartySize:       req.PartySize,
		ReservationTime: at.UTC(),
		MealType:        model.MealType(req.MealType),
		Note:            req.Note,
		Pending:         req.Pending,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, viewOf(res, h.Svc.Now(), true))
}

// ListMyReservations returns the authenticated account's reservations,
// newest reservation time first, each carrying its effective status.
func (h *ReservationHandler) ListMyReservations(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Svc.ReservationsForAccount(ctx, actor.AccountID)
	if err != nil {
		return respondError(c, err)
	}
	now := h.Svc.Now()
	out := make([]reservationView, 0, len(items))
	for i := range items {
		out = append(out, viewOf(&items[i], now, true))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetReservation returns one reservation.  Customers may only read
// their own; staff may read any.
func (h *ReservationHandler) GetReservation(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Svc.Reservation(ctx, actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(res, h.Svc.Now(), true))
}

// CancelReservation cancels a PENDING or CONFIRMED reservation and
// releases its seats.  Customers may only cancel their own.
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := getActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res, err := h.Svc.CancelReservation(ctx, actor, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(res, h.Svc.Now(), true))
}
