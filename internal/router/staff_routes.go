package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/handler"
	"github.com/iliyamo/venue-reservation/internal/middleware"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// RegisterStaff registers the desk endpoints under /v1.  All routes
// require a valid JWT with the STAFF role: token lookup, check-in at
// arrival, and confirmation of pending walk-in or phone reservations.
func RegisterStaff(e *echo.Echo, h *handler.CheckInHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff),
	)
	g.GET("/checkin/:token", h.LookupToken)
	g.POST("/checkin", h.CheckIn)
	g.POST("/reservations/:id/confirm", h.ConfirmReservation)
}
