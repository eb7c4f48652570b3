package model

import "time"

// Venue represents a bookable establishment with a fixed seating
// capacity.  It corresponds to a row in the `venues` table.  Venues
// are owned by the catalog subsystem: this service only reads them,
// so there are no mutation paths here.
//
// Fields:
//  ID             – primary key identifier.
//  Name           – display name of the venue.
//  Capacity       – total seating capacity (always positive).
//  OperatingHours – raw human-authored hours description, e.g.
//                   "Mon-Fri: 12:00-15:00, 19:00-21:00".  Parsed on
//                   demand by the schedule package; never normalized
//                   in place.
//  Location       – free-form location reference for display.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Venue struct {
	ID             uint64    // venues.id
	Name           string    // venues.name
	Capacity       int       // venues.capacity
	OperatingHours string    // venues.operating_hours
	Location       string    // venues.location
	CreatedAt      time.Time // venues.created_at
	UpdatedAt      time.Time // venues.updated_at
}
