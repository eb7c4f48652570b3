package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
	"github.com/iliyamo/venue-reservation/internal/testfixtures"
)

var lunchSlot = time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

type handlerEnv struct {
	svc   *booking.Service
	venue model.Venue
	clock *testfixtures.Clock
}

func newHandlerEnv(t *testing.T, capacity int) *handlerEnv {
	t.Helper()
	venue := testfixtures.NewVenueFixture(testfixtures.WithCapacity(capacity))
	venues := testfixtures.NewVenueStore(venue)
	clock := testfixtures.NewClock(time.Time{})
	store := testfixtures.NewReservationStore(clock)
	svc := booking.NewService(venues, store, booking.NewLedger(venues, store), testfixtures.SequentialMinter{}, nil, clock.NowFunc())
	return &handlerEnv{svc: svc, venue: venue, clock: clock}
}

// newContext builds an echo context carrying the claims the JWT
// middleware would have injected.
func newContext(method, target string, body string, accountID uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		// JWT numeric claims decode as float64.
		c.Set("user_id", float64(accountID))
		c.Set("role", role)
	}
	return c, rec
}

func createBody(venueID uint64, partySize int, at time.Time) string {
	return fmt.Sprintf(`{"venue_id":%d,"customer_name":"Dana Reyes","customer_email":"dana@example.com","party_size":%d,"reservation_time":%q,"meal_type":"LUNCH"}`,
		venueID, partySize, at.Format(time.RFC3339))
}

func TestCreateReservationHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &ReservationHandler{Svc: env.svc}

	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 2, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var out reservationView
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.Status != string(model.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", out.Status)
	}
	if out.Token == nil || *out.Token == "" {
		t.Fatalf("creation response must include the token")
	}
	if out.IsGroup {
		t.Fatalf("party of 2 is not a group")
	}
}

func TestCreateReservationHandlerGroupFlag(t *testing.T) {
	env := newHandlerEnv(t, 20)
	h := &ReservationHandler{Svc: env.svc}

	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 8, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var out reservationView
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if !out.IsGroup {
		t.Fatalf("party of 8 must be flagged as a group")
	}
}

func TestCreateReservationHandlerErrorMapping(t *testing.T) {
	env := newHandlerEnv(t, 4)
	h := &ReservationHandler{Svc: env.svc}

	// Fill the slot.
	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 4, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: err=%v code=%d", err, rec.Code)
	}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"full slot", createBody(env.venue.ID, 2, lunchSlot), http.StatusConflict},
		{"off-grid time", createBody(env.venue.ID, 2, lunchSlot.Add(10*time.Minute)), http.StatusBadRequest},
		{"closed hours", createBody(env.venue.ID, 2, lunchSlot.Add(5*time.Hour)), http.StatusUnprocessableEntity},
		{"unknown venue", createBody(99999, 2, lunchSlot), http.StatusNotFound},
		{"bad party size", createBody(env.venue.ID, 0, lunchSlot), http.StatusBadRequest},
		{"bad time format", `{"venue_id":1,"customer_name":"x","customer_email":"x@example.com","party_size":2,"reservation_time":"tomorrow","meal_type":"LUNCH"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/v1/reservations", tc.body, 7, model.RoleCustomer)
			if err := h.CreateReservation(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetReservationOwnership(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &ReservationHandler{Svc: env.svc}

	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 2, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: err=%v code=%d", err, rec.Code)
	}
	var created reservationView
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	id := fmt.Sprint(created.ID)

	get := func(account uint64, role string) *httptest.ResponseRecorder {
		c, rec := newContext(http.MethodGet, "/v1/reservations/"+id, "", account, role)
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := h.GetReservation(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		return rec
	}

	if rec := get(7, model.RoleCustomer); rec.Code != http.StatusOK {
		t.Fatalf("owner read: expected 200, got %d", rec.Code)
	}
	if rec := get(1234, model.RoleCustomer); rec.Code != http.StatusForbidden {
		t.Fatalf("stranger read: expected 403, got %d", rec.Code)
	}
	if rec := get(99, model.RoleStaff); rec.Code != http.StatusOK {
		t.Fatalf("staff read: expected 200, got %d", rec.Code)
	}
}

func TestCancelReservationHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &ReservationHandler{Svc: env.svc}

	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 2, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: err=%v code=%d", err, rec.Code)
	}
	var created reservationView
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := fmt.Sprint(created.ID)

	c, rec = newContext(http.MethodDelete, "/v1/reservations/"+id, "", 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.CancelReservation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out reservationView
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Status != string(model.StatusCancelled) {
		t.Fatalf("expected CANCELLED, got %s", out.Status)
	}

	// A second cancel maps the transition refusal to 409.
	c, rec = newContext(http.MethodDelete, "/v1/reservations/"+id, "", 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.CancelReservation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestListMyReservationsEffectiveStatus(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &ReservationHandler{Svc: env.svc}

	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 2, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: err=%v code=%d", err, rec.Code)
	}

	env.clock.Set(lunchSlot.Add(2 * time.Hour))
	c, rec = newContext(http.MethodGet, "/v1/my-reservations", "", 7, model.RoleCustomer)
	if err := h.ListMyReservations(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var out struct {
		Items []reservationView `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(out.Items))
	}
	item := out.Items[0]
	if item.Status != string(model.StatusConfirmed) {
		t.Fatalf("stored status must stay CONFIRMED, got %s", item.Status)
	}
	if item.EffectiveStatus != string(model.StatusCompleted) {
		t.Fatalf("expected effective COMPLETED, got %s", item.EffectiveStatus)
	}
}
