package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/iliyamo/venue-reservation/internal/model"
)

func TestGetSlotsHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &VenueHandler{Svc: env.svc}
	id := idParam(env.venue.ID)

	c, rec := newContext(http.MethodGet, "/v1/venues/"+id+"/slots?date=2025-03-05", "", 0, "")
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.GetSlots(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	// 12:00-15:00 yields six slots, 19:00-21:00 yields four.
	if len(out.Slots) != 10 {
		t.Fatalf("expected 10 slots, got %d: %v", len(out.Slots), out.Slots)
	}
	if out.Slots[0] != "2025-03-05T12:00:00Z" {
		t.Fatalf("unexpected first slot %s", out.Slots[0])
	}
	if out.Slots[len(out.Slots)-1] != "2025-03-05T20:30:00Z" {
		t.Fatalf("unexpected last slot %s", out.Slots[len(out.Slots)-1])
	}
}

func TestGetSlotsHandlerBadInput(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &VenueHandler{Svc: env.svc}
	id := idParam(env.venue.ID)

	cases := []struct {
		name   string
		param  string
		target string
		want   int
	}{
		{"bad id", "abc", "/v1/venues/abc/slots?date=2025-03-05", http.StatusBadRequest},
		{"bad date", id, "/v1/venues/" + id + "/slots?date=March-5", http.StatusBadRequest},
		{"unknown venue", "99999", "/v1/venues/99999/slots?date=2025-03-05", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, tc.target, "", 0, "")
			c.SetParamNames("id")
			c.SetParamValues(tc.param)
			if err := h.GetSlots(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestGetAvailabilityHandler(t *testing.T) {
	env := newHandlerEnv(t, 4)
	vh := &VenueHandler{Svc: env.svc}
	rh := &ReservationHandler{Svc: env.svc}
	id := idParam(env.venue.ID)

	check := func(partySize string) (int, bool) {
		target := "/v1/venues/" + id + "/availability?time=2025-03-05T12:00:00Z&party_size=" + partySize
		c, rec := newContext(http.MethodGet, target, "", 0, "")
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := vh.GetAvailability(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		var out struct {
			Available bool `json:"available"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
		return rec.Code, out.Available
	}

	if code, avail := check("4"); code != http.StatusOK || !avail {
		t.Fatalf("empty slot should fit 4: code=%d available=%v", code, avail)
	}
	if code, avail := check("5"); code != http.StatusOK || avail {
		t.Fatalf("party of 5 cannot fit capacity 4: code=%d available=%v", code, avail)
	}

	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 3, lunchSlot), 7, model.RoleCustomer)
	if err := rh.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: err=%v code=%d", err, rec.Code)
	}

	if code, avail := check("1"); code != http.StatusOK || !avail {
		t.Fatalf("one seat left should fit 1: code=%d available=%v", code, avail)
	}
	if code, avail := check("2"); code != http.StatusOK || avail {
		t.Fatalf("one seat left cannot fit 2: code=%d available=%v", code, avail)
	}
}

func TestListVenuesHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &VenueHandler{Svc: env.svc}

	c, rec := newContext(http.MethodGet, "/v1/venues", "", 0, "")
	if err := h.ListVenues(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Items []publicVenue `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("expected 1 venue, got %d", len(out.Items))
	}
	if out.Items[0].ID != env.venue.ID || out.Items[0].Capacity != 10 {
		t.Fatalf("unexpected venue payload: %+v", out.Items[0])
	}
}

func idParam(id uint64) string {
	return fmt.Sprint(id)
}
