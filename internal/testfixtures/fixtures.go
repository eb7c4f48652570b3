package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/iliyamo/venue-reservation/internal/model"
)

var (
	venueCounter       uint64
	reservationCounter uint64
	mintCounter        uint64
)

// referenceTime is a Wednesday so the default venue hours apply on the
// default reservation date.
var referenceTime = time.Date(2025, time.March, 5, 9, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by
// fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// VenueOption configures a generated venue fixture.
type VenueOption func(*model.Venue)

// NewVenueFixture returns a deterministic venue with optional
// overrides.  The default venue seats 20 and serves lunch and dinner
// every day.
func NewVenueFixture(opts ...VenueOption) model.Venue {
	idx := atomic.AddUint64(&venueCounter, 1)
	v := model.Venue{
		ID:             idx,
		Name:           fmt.Sprintf("Venue %03d", idx),
		Capacity:       20,
		OperatingHours: "12:00-15:00, 19:00-21:00",
		Location:       fmt.Sprintf("%d Main Street", idx),
		CreatedAt:      referenceTime,
		UpdatedAt:      referenceTime,
	}
	for _, opt := range opts {
		opt(&v)
	}
	return v
}

// WithVenueID overrides the generated venue id.
func WithVenueID(id uint64) VenueOption {
	return func(v *model.Venue) { v.ID = id }
}

// WithCapacity overrides the seating capacity.
func WithCapacity(n int) VenueOption {
	return func(v *model.Venue) { v.Capacity = n }
}

// WithOperatingHours overrides the raw hours string.
func WithOperatingHours(raw string) VenueOption {
	return func(v *model.Venue) { v.OperatingHours = raw }
}

// ReservationOption configures a generated reservation fixture.
type ReservationOption func(*model.Reservation)

// NewReservationFixture returns a deterministic confirmed reservation
// for venue 1 at 12:00 on the reference date.
func NewReservationFixture(opts ...ReservationOption) model.Reservation {
	idx := atomic.AddUint64(&reservationCounter, 1)
	account := idx
	token := fmt.Sprintf("token-%03d", idx)
	r := model.Reservation{
		ID:              idx,
		VenueID:         1,
		AccountID:       &account,
		CustomerName:    fmt.Sprintf("Guest %03d", idx),
		CustomerEmail:   fmt.Sprintf("guest-%03d@example.com", idx),
		PartySize:       2,
		ReservationTime: time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC),
		MealType:        model.MealLunch,
		Status:          model.StatusConfirmed,
		Token:           &token,
		CreatedAt:       referenceTime,
		UpdatedAt:       referenceTime,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithReservationVenue overrides the target venue.
func WithReservationVenue(id uint64) ReservationOption {
	return func(r *model.Reservation) { r.VenueID = id }
}

// WithReservationAccount overrides the owning account.
func WithReservationAccount(id uint64) ReservationOption {
	return func(r *model.Reservation) { r.AccountID = &id }
}

// WithPartySize overrides the party size.
func WithPartySize(n int) ReservationOption {
	return func(r *model.Reservation) { r.PartySize = n }
}

// WithReservationTime overrides the slot time.
func WithReservationTime(t time.Time) ReservationOption {
	return func(r *model.Reservation) { r.ReservationTime = t }
}

// WithStatus overrides the stored status.  A PENDING or CANCELLED
// fixture also drops the token, matching how those rows look in the
// database.
func WithStatus(s model.ReservationStatus) ReservationOption {
	return func(r *model.Reservation) {
		r.Status = s
		if s == model.StatusPending {
			r.Token = nil
		}
	}
}

// WithToken overrides the check-in token.
func WithToken(token string) ReservationOption {
	return func(r *model.Reservation) { r.Token = &token }
}

// SequentialMinter mints predictable tokens for tests.
type SequentialMinter struct{}

// Mint returns "mint-NNN" with a process-wide increasing counter.
func (SequentialMinter) Mint() string {
	return fmt.Sprintf("mint-%03d", atomic.AddUint64(&mintCounter, 1))
}
