// Package repository contains the MySQL data access layer.  Repositories
// hold a *sql.DB, keep all timestamps in UTC and return the booking
// package's sentinel errors so handlers never inspect driver errors.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// VenueRepo provides read access to the `venues` table.  Venue rows are
// maintained by an out-of-scope catalog process; this service only
// reads them, so the repository deliberately has no write methods.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo returns a VenueRepo bound to the given database.
func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{db: db} }

const venueColumns = `id, name, capacity, operating_hours, location, created_at, updated_at`

// GetByID returns the venue or booking.ErrNotFound.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues WHERE id = ?`
	var v model.Venue
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Name, &v.Capacity, &v.OperatingHours, &v.Location, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ListAll returns every venue ordered by id.  When the table is empty,
// an empty slice is returned.
func (r *VenueRepo) ListAll(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT ` + venueColumns + ` FROM venues ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	venues := make([]model.Venue, 0)
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Capacity, &v.OperatingHours, &v.Location, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return venues, nil
}
