package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/venue-reservation/internal/model"
	"github.com/iliyamo/venue-reservation/internal/schedule"
)

// slotKey identifies one (venue, slot time) serialization unit.
type slotKey struct {
	venueID uint64
	unix    int64
}

// Ledger is the concurrency core.  Admission for a given (venue, slot)
// pair runs under that pair's own mutex, so the aggregate of admitted
// non-cancelled party sizes is re-read and the insert committed as one
// unit: no attempt can observe a stale aggregate and over-admit.
// Distinct slots use distinct locks and never contend with each other.
type Ledger struct {
	venues       VenueStore
	reservations ReservationStore

	mu    sync.Mutex
	locks map[slotKey]*sync.Mutex
}

// NewLedger builds a ledger over the given stores.
func NewLedger(venues VenueStore, reservations ReservationStore) *Ledger {
	if venues == nil || reservations == nil {
		panic("nil store passed to NewLedger")
	}
	return &Ledger{
		venues:       venues,
		reservations: reservations,
		locks:        make(map[slotKey]*sync.Mutex),
	}
}

// slotLock returns the mutex owning the (venue, slot) pair, creating it
// on first use.  Lock instances are retained for the process lifetime;
// the per-slot footprint is one mutex.
func (l *Ledger) slotLock(k slotKey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[k]
	if !ok {
		m = &sync.Mutex{}
		l.locks[k] = m
	}
	return m
}

// TryAdmit atomically admits the reservation against its venue's
// per-slot capacity and persists it.  The reservation must arrive fully
// populated (status, token, customer fields); TryAdmit only decides
// whether it fits.  On ErrInvalidSlot or ErrCapacityExceeded nothing is
// persisted, so an abandoned attempt leaves no partial state.
func (l *Ledger) TryAdmit(ctx context.Context, res *model.Reservation) error {
	venue, err := l.venues.GetByID(ctx, res.VenueID)
	if err != nil {
		return err
	}
	windows, fellBack := schedule.ParseOperatingHours(venue.OperatingHours)
	if fellBack {
		logHoursFallback(venue)
	}
	at := res.ReservationTime.UTC()
	// A misaligned time is a malformed request; a well-aligned time
	// outside every service window is a closed venue.
	if !at.Equal(at.Truncate(schedule.Granularity)) {
		return fmt.Errorf("%w: time not aligned to the %s slot grid", ErrValidation, schedule.Granularity)
	}
	if !schedule.IsBookable(windows, at) {
		return ErrInvalidSlot
	}
	res.ReservationTime = at

	lock := l.slotLock(slotKey{venueID: venue.ID, unix: at.Unix()})
	lock.Lock()
	defer lock.Unlock()

	taken, err := l.reservations.SumActiveParty(ctx, venue.ID, at)
	if err != nil {
		return err
	}
	if taken+res.PartySize > venue.Capacity {
		return fmt.Errorf("%w: %d of %d seats taken", ErrCapacityExceeded, taken, venue.Capacity)
	}
	return l.reservations.Create(ctx, res)
}

// Remaining reports how many seats are still free for the slot.  It is
// advisory only: a positive answer does not reserve anything, and the
// authoritative check happens again inside TryAdmit.
func (l *Ledger) Remaining(ctx context.Context, venueID uint64, at time.Time) (int, error) {
	venue, err := l.venues.GetByID(ctx, venueID)
	if err != nil {
		return 0, err
	}
	taken, err := l.reservations.SumActiveParty(ctx, venueID, at.UTC())
	if err != nil {
		return 0, err
	}
	free := venue.Capacity - taken
	if free < 0 {
		free = 0
	}
	return free, nil
}
