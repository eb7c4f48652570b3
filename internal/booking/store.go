package booking

import (
	"context"
	"time"

	"github.com/iliyamo/venue-reservation/internal/model"
)

// VenueStore provides read access to the venue catalog.  Venues are
// owned by an out-of-scope management process; this service never
// writes them.
type VenueStore interface {
	// GetByID returns the venue or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	// ListAll returns every venue ordered by id.
	ListAll(ctx context.Context) ([]model.Venue, error)
}

// ReservationStore persists reservations.  Implementations must keep
// all timestamps in UTC.  The MySQL implementation lives in the
// repository package; tests use the in-memory store from testfixtures.
type ReservationStore interface {
	// Create inserts the reservation and populates its ID and
	// CreatedAt.  The token column carries a unique constraint.
	Create(ctx context.Context, res *model.Reservation) error
	// GetByID returns the reservation or ErrNotFound.
	GetByID(ctx context.Context, id uint64) (*model.Reservation, error)
	// GetByToken returns the reservation holding the token, or
	// ErrNotFound.  Lookup is by token value alone.
	GetByToken(ctx context.Context, token string) (*model.Reservation, error)
	// ListByAccount returns the account's reservations, newest first.
	ListByAccount(ctx context.Context, accountID uint64) ([]model.Reservation, error)
	// SumActiveParty returns the sum of party sizes over all
	// reservations at the exact (venue, slot) pair whose status is not
	// CANCELLED.
	SumActiveParty(ctx context.Context, venueID uint64, at time.Time) (int, error)
	// UpdateStatus transitions the reservation from the expected
	// status to the new one, optionally attaching a token.  It returns
	// ErrConflict when the stored status no longer matches from, and
	// ErrNotFound when the id is unknown.
	UpdateStatus(ctx context.Context, id uint64, from, to model.ReservationStatus, token *string) error
}
