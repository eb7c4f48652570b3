package model

import "time"

// ReservationStatus is the closed set of stored reservation states.
// Status only ever moves forward: PENDING -> CONFIRMED -> CHECKED_IN,
// with CANCELLED reachable from PENDING or CONFIRMED.  COMPLETED is
// never stored; it is a read-time classification computed by
// EffectiveStatus for confirmed reservations whose time has passed.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusCheckedIn ReservationStatus = "CHECKED_IN"

	// StatusCompleted is a derived label only; it must never be written
	// to the database.
	StatusCompleted ReservationStatus = "COMPLETED"
)

// Valid reports whether s is one of the storable statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCheckedIn
}

// MealType is the closed set of meal categories a reservation can be
// tagged with.  Free-form category strings from clients are rejected
// during validation rather than stored.
type MealType string

const (
	MealBreakfast MealType = "BREAKFAST"
	MealLunch     MealType = "LUNCH"
	MealDinner    MealType = "DINNER"
)

// Valid reports whether m is a known meal category.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	return false
}

// GroupPartySize is the smallest party size treated as a group
// reservation on read paths.
const GroupPartySize = 8

// Reservation records a booking of seating capacity at a venue for a
// concrete slot time.  It corresponds to a row in the `reservations`
// table.  VenueID and ReservationTime are stored together so that a
// reservation's slot membership can always be recomputed without
// re-parsing operating hours, keeping historical capacity accounting
// stable even if a venue's hours change later.
//
// Fields:
//  ID              – primary key identifier.
//  VenueID         – venue being booked.
//  AccountID       – owning user account (nil for walk-in/phone bookings).
//  CustomerName    – contact name given at booking time.
//  CustomerEmail   – contact email.
//  CustomerPhone   – contact phone.
//  PartySize       – number of guests (>= 1).
//  ReservationTime – UTC slot start time; coincides with a BookableSlot
//                    of the venue at creation time.
//  MealType        – meal category tag.
//  Note            – free-text special request.
//  Status          – stored lifecycle state.
//  Token           – opaque redemption credential; nil until the
//                    reservation reaches CONFIRMED, unique afterwards.
//  VenueName       – denormalized venue name, populated on read paths
//                    that join the venues table; never written back.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64            // reservations.id
	VenueID         uint64            // reservations.venue_id
	AccountID       *uint64           // reservations.account_id (nullable)
	CustomerName    string            // reservations.customer_name
	CustomerEmail   string            // reservations.customer_email
	CustomerPhone   string            // reservations.customer_phone
	PartySize       int               // reservations.party_size
	ReservationTime time.Time         // reservations.reservation_time (UTC)
	MealType        MealType          // reservations.meal_type
	Note            string            // reservations.note
	Status          ReservationStatus // reservations.status
	Token           *string           // reservations.token (nullable, unique)
	VenueName       string            // venues.name via join, read paths only
	CreatedAt       time.Time         // reservations.created_at
	UpdatedAt       time.Time         // reservations.updated_at
}

// EffectiveStatus returns the status a reader should be shown at the
// given instant: a confirmed reservation whose slot time has passed is
// reported as COMPLETED without any stored transition.
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == StatusConfirmed && r.ReservationTime.Before(now) {
		return StatusCompleted
	}
	return r.Status
}

// IsGroup reports whether the reservation counts as a group booking.
func (r *Reservation) IsGroup() bool {
	return r.PartySize >= GroupPartySize
}

// OwnedBy reports whether the reservation belongs to the given account.
// Reservations without an account reference are owned by nobody and can
// only be managed by staff.
func (r *Reservation) OwnedBy(accountID uint64) bool {
	return r.AccountID != nil && *r.AccountID == accountID
}
