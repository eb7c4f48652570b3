package booking

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/venue-reservation/internal/model"
	"github.com/iliyamo/venue-reservation/internal/queue"
	"github.com/iliyamo/venue-reservation/internal/schedule"
)

// Actor is the server-verified identity performing a lifecycle
// operation.  It is always derived from the validated access token,
// never from caller-supplied request fields.
type Actor struct {
	AccountID uint64
	Role      string
}

// Staff reports whether the actor holds the staff role.
func (a Actor) Staff() bool { return a.Role == model.RoleStaff }

// EventPublisher emits domain events after successful transitions.
// Publish failures are logged by implementations and never fail the
// reservation itself.
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

// CreateRequest carries the validated-on-entry fields of a booking
// request.  Pending is accepted only from staff and parks the
// reservation in PENDING for later confirmation (walk-in and phone
// bookings); every other creation resolves immediately to CONFIRMED or
// a rejection.
type CreateRequest struct {
	VenueID         uint64
	AccountID       *uint64
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	PartySize       int
	ReservationTime time.Time
	MealType        model.MealType
	Note            string
	Pending         bool
}

// Service drives the reservation lifecycle.  All state mutations pass
// through here; handlers never touch the stores directly for writes.
type Service struct {
	venues       VenueStore
	reservations ReservationStore
	ledger       *Ledger
	minter       TokenMinter
	publisher    EventPublisher // may be nil when no broker is configured
	now          func() time.Time
}

// NewService wires the lifecycle over its collaborators.  publisher may
// be nil; now defaults to time.Now when nil.
func NewService(venues VenueStore, reservations ReservationStore, ledger *Ledger, minter TokenMinter, publisher EventPublisher, now func() time.Time) *Service {
	if venues == nil || reservations == nil || ledger == nil || minter == nil {
		panic("nil dependency passed to NewService")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		venues:       venues,
		reservations: reservations,
		ledger:       ledger,
		minter:       minter,
		publisher:    publisher,
		now:          now,
	}
}

// Venue returns the venue or ErrNotFound.
func (s *Service) Venue(ctx context.Context, id uint64) (*model.Venue, error) {
	return s.venues.GetByID(ctx, id)
}

// Venues lists the whole catalog.
func (s *Service) Venues(ctx context.Context) ([]model.Venue, error) {
	return s.venues.ListAll(ctx)
}

// BookableSlots returns the venue's choosable start times for the given
// date.  Pure read path: identical inputs always yield the identical
// ordered list.
func (s *Service) BookableSlots(ctx context.Context, venueID uint64, date time.Time) ([]time.Time, error) {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	windows, fellBack := schedule.ParseOperatingHours(venue.OperatingHours)
	if fellBack {
		logHoursFallback(venue)
	}
	return schedule.SlotsForDate(windows, date), nil
}

// CheckCapacity is the advisory preview: it reports whether the party
// currently fits without admitting anything.  The answer can go stale
// the moment it is produced; CreateReservation repeats the check
// atomically.
func (s *Service) CheckCapacity(ctx context.Context, venueID uint64, at time.Time, partySize int) (bool, error) {
	if partySize < 1 {
		return false, fmt.Errorf("%w: party size must be at least 1", ErrValidation)
	}
	free, err := s.ledger.Remaining(ctx, venueID, at)
	if err != nil {
		return false, err
	}
	return free >= partySize, nil
}

// CreateReservation validates the request, performs the atomic
// admission and returns the stored reservation.  On admission the
// reservation is CONFIRMED with a freshly minted token; a capacity or
// slot rejection creates nothing at all.  Staff may instead request a
// PENDING reservation, which consumes capacity immediately but receives
// its token only at confirmation.
func (s *Service) CreateReservation(ctx context.Context, actor Actor, req CreateRequest) (*model.Reservation, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}
	if req.Pending && !actor.Staff() {
		return nil, ErrForbidden
	}

	res := &model.Reservation{
		VenueID:         req.VenueID,
		AccountID:       req.AccountID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerEmail:   strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		PartySize:       req.PartySize,
		ReservationTime: req.ReservationTime.UTC(),
		MealType:        req.MealType,
		Note:            strings.TrimSpace(req.Note),
		Status:          model.StatusConfirmed,
	}
	if req.Pending {
		res.Status = model.StatusPending
	} else {
		token := s.minter.Mint()
		res.Token = &token
	}

	if err := s.ledger.TryAdmit(ctx, res); err != nil {
		return nil, err
	}
	if res.Status == model.StatusConfirmed {
		s.publishConfirmed(ctx, res)
	}
	return res, nil
}

// ConfirmReservation moves a staff-parked PENDING reservation to
// CONFIRMED and mints its token.  Capacity was already consumed at
// creation, so no further admission check is needed.
func (s *Service) ConfirmReservation(ctx context.Context, actor Actor, id uint64) (*model.Reservation, error) {
	if !actor.Staff() {
		return nil, ErrForbidden
	}
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.Status != model.StatusPending {
		return nil, &TransitionError{From: res.Status, Op: "confirm"}
	}
	token := s.minter.Mint()
	if err := s.reservations.UpdateStatus(ctx, res.ID, model.StatusPending, model.StatusConfirmed, &token); err != nil {
		return nil, err
	}
	res.Status = model.StatusConfirmed
	res.Token = &token
	s.publishConfirmed(ctx, res)
	return res, nil
}

// CancelReservation cancels from PENDING or CONFIRMED, immediately
// freeing the slot's capacity contribution for subsequent admissions.
// Permitted to the owning account or staff.
func (s *Service) CancelReservation(ctx context.Context, actor Actor, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Staff() && !res.OwnedBy(actor.AccountID) {
		return nil, ErrForbidden
	}
	if res.Status != model.StatusPending && res.Status != model.StatusConfirmed {
		return nil, &TransitionError{From: res.Status, Op: "cancel"}
	}
	if err := s.reservations.UpdateStatus(ctx, res.ID, res.Status, model.StatusCancelled, nil); err != nil {
		return nil, err
	}
	res.Status = model.StatusCancelled
	return res, nil
}

// CheckIn redeems a token at the door.  It is valid only from
// CONFIRMED and is terminal; re-presenting the token afterwards fails
// with the true current state so staff see "already checked in" rather
// than a repeated success.
func (s *Service) CheckIn(ctx context.Context, actor Actor, token string) (*model.Reservation, error) {
	if !actor.Staff() {
		return nil, ErrForbidden
	}
	res, err := s.reservations.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if res.Status != model.StatusConfirmed {
		return nil, &TransitionError{From: res.Status, Op: "check-in"}
	}
	if err := s.reservations.UpdateStatus(ctx, res.ID, model.StatusConfirmed, model.StatusCheckedIn, nil); err != nil {
		return nil, err
	}
	res.Status = model.StatusCheckedIn
	return res, nil
}

// Reservation returns the reservation when the actor may see it: the
// owning account or staff.
func (s *Service) Reservation(ctx context.Context, actor Actor, id uint64) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Staff() && !res.OwnedBy(actor.AccountID) {
		return nil, ErrForbidden
	}
	return res, nil
}

// ReservationByToken is the staff arrival preview: lookup by token
// value alone, read-only.
func (s *Service) ReservationByToken(ctx context.Context, actor Actor, token string) (*model.Reservation, error) {
	if !actor.Staff() {
		return nil, ErrForbidden
	}
	return s.reservations.GetByToken(ctx, token)
}

// ReservationsForAccount lists the actor's own reservations.
func (s *Service) ReservationsForAccount(ctx context.Context, accountID uint64) ([]model.Reservation, error) {
	return s.reservations.ListByAccount(ctx, accountID)
}

// Now exposes the service clock for read-time classification.
func (s *Service) Now() time.Time { return s.now() }

func (s *Service) publishConfirmed(ctx context.Context, res *model.Reservation) {
	if s.publisher == nil {
		return
	}
	venueName := res.VenueName
	if venueName == "" {
		if v, err := s.venues.GetByID(ctx, res.VenueID); err == nil {
			venueName = v.Name
		}
	}
	ev := queue.ReservationConfirmedEvent{
		ReservationID:   res.ID,
		VenueID:         res.VenueID,
		VenueName:       venueName,
		CustomerName:    res.CustomerName,
		PartySize:       res.PartySize,
		ReservationTime: res.ReservationTime.Format(time.RFC3339),
		MealType:        string(res.MealType),
		ConfirmedAt:     s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishReservationConfirmed(ctx, ev); err != nil {
		log.Printf("booking: publish confirmed event failed for reservation %d: %v", res.ID, err)
	}
}

func validateCreate(req CreateRequest) error {
	if req.PartySize < 1 {
		return fmt.Errorf("%w: party size must be at least 1", ErrValidation)
	}
	if !req.MealType.Valid() {
		return fmt.Errorf("%w: unknown meal type %q", ErrValidation, req.MealType)
	}
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customer name and email are required", ErrValidation)
	}
	return nil
}

// logHoursFallback records the data-quality condition of a venue whose
// hours string produced no valid windows, so the default schedule is
// never silently indistinguishable from a genuine one.
func logHoursFallback(v *model.Venue) {
	log.Printf("schedule: venue %d (%q) operating hours %q yielded no valid windows; using default 11:00-21:30",
		v.ID, v.Name, v.OperatingHours)
}
