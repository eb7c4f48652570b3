package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// VenueStore is an in-memory booking.VenueStore.
type VenueStore struct {
	mu     sync.RWMutex
	venues map[uint64]model.Venue
}

// NewVenueStore returns a store seeded with the given venues.
func NewVenueStore(venues ...model.Venue) *VenueStore {
	s := &VenueStore{venues: make(map[uint64]model.Venue, len(venues))}
	for _, v := range venues {
		s.venues[v.ID] = v
	}
	return s
}

// Put inserts or replaces a venue.
func (s *VenueStore) Put(v model.Venue) {
	s.mu.Lock()
	s.venues[v.ID] = v
	s.mu.Unlock()
}

func (s *VenueStore) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &v, nil
}

func (s *VenueStore) ListAll(_ context.Context) ([]model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ReservationStore is an in-memory booking.ReservationStore.  All
// methods are safe for concurrent use so ledger tests can race
// goroutines against it the way concurrent requests race against
// MySQL.
type ReservationStore struct {
	mu     sync.Mutex
	nextID uint64
	byID   map[uint64]model.Reservation
	clock  *Clock
}

// NewReservationStore returns an empty store.  clock may be nil, in
// which case created rows are stamped with the wall clock.
func NewReservationStore(clock *Clock) *ReservationStore {
	return &ReservationStore{byID: make(map[uint64]model.Reservation), clock: clock}
}

func (s *ReservationStore) now() time.Time {
	if s.clock != nil {
		return s.clock.Now()
	}
	return time.Now().UTC()
}

func (s *ReservationStore) Create(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	res.ID = s.nextID
	now := s.now()
	res.CreatedAt = now
	res.UpdatedAt = now
	s.byID[res.ID] = *res
	return nil
}

func (s *ReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return &r, nil
}

func (s *ReservationStore) GetByToken(_ context.Context, token string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byID {
		if r.Token != nil && *r.Token == token {
			r := r
			return &r, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (s *ReservationStore) ListByAccount(_ context.Context, accountID uint64) ([]model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Reservation
	for _, r := range s.byID {
		if r.AccountID != nil && *r.AccountID == accountID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReservationTime.After(out[j].ReservationTime)
	})
	return out, nil
}

func (s *ReservationStore) SumActiveParty(_ context.Context, venueID uint64, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, r := range s.byID {
		if r.VenueID == venueID && r.ReservationTime.Equal(at) && r.Status != model.StatusCancelled {
			total += r.PartySize
		}
	}
	return total, nil
}

func (s *ReservationStore) UpdateStatus(_ context.Context, id uint64, from, to model.ReservationStatus, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.byID[id]
	if !ok {
		return booking.ErrNotFound
	}
	if r.Status != from {
		return booking.ErrConflict
	}
	r.Status = to
	if token != nil {
		r.Token = token
	}
	r.UpdatedAt = s.now()
	s.byID[id] = r
	return nil
}

// All returns a snapshot of every stored reservation, ordered by id.
func (s *ReservationStore) All() []model.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Reservation, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
