package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/handler"
	"github.com/iliyamo/venue-reservation/internal/middleware"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// RegisterReservations registers the reservation lifecycle endpoints
// under /v1.  All routes require a valid JWT; both roles are accepted
// because staff create and manage bookings through the same surface.
// Ownership rules are enforced inside the booking service.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		append([]echo.MiddlewareFunc{
			middleware.JWTAuth(jwtSecret),
			middleware.RequireRole(model.RoleCustomer, model.RoleStaff),
		}, mws...)...,
	)
	g.POST("/reservations", h.CreateReservation)
	g.GET("/my-reservations", h.ListMyReservations)
	g.GET("/reservations/:id", h.GetReservation)
	g.DELETE("/reservations/:id", h.CancelReservation)
}
