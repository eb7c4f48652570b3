// Package booking implements the reservation core: atomic capacity
// admission, the reservation lifecycle state machine and check-in token
// redemption.  HTTP handlers and the repository layer both depend on
// the sentinel errors defined here, so a failure keeps its meaning all
// the way from the database to the response body.
package booking

import (
	"errors"
	"fmt"

	"github.com/iliyamo/venue-reservation/internal/model"
)

// ErrNotFound is returned when a venue, reservation or token does not
// exist.  Handlers translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrInvalidSlot is returned when a grid-aligned time falls outside
// every current service window of the venue.  Misaligned times are
// ErrValidation instead.
var ErrInvalidSlot = errors.New("time is not a bookable slot")

// ErrCapacityExceeded is returned when admitting a party would push the
// slot's non-cancelled total over the venue capacity.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrValidation is returned for malformed input (party size below one,
// unknown meal type, missing customer contact, a time off the slot
// grid).  Validation failures are rejected before any capacity check.
var ErrValidation = errors.New("validation failed")

// ErrInvalidTransition is returned when an operation is attempted from
// a state that does not permit it, such as checking in a cancelled
// reservation.  Use TransitionError to report the offending state.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrForbidden is returned when the acting account is neither staff nor
// the reservation owner.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a per-record transition lost a race it
// should have won.  Under a correctly serialized ledger it indicates a
// bug rather than expected client behaviour, so it is surfaced loudly.
var ErrConflict = errors.New("conflict")

// TransitionError reports an attempted lifecycle transition from a
// state that does not allow it.  It wraps ErrInvalidTransition so
// callers can match with errors.Is while staff-facing messages can
// still distinguish "already checked in" from "cancelled".
type TransitionError struct {
	From model.ReservationStatus
	Op   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not permitted: reservation is %s", e.Op, e.From)
}

// Unwrap makes errors.Is(err, ErrInvalidTransition) hold.
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
