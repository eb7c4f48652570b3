package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/iliyamo/venue-reservation/internal/model"
)

func createConfirmed(t *testing.T, env *handlerEnv) reservationView {
	t.Helper()
	h := &ReservationHandler{Svc: env.svc}
	c, rec := newContext(http.MethodPost, "/v1/reservations", createBody(env.venue.ID, 2, lunchSlot), 7, model.RoleCustomer)
	if err := h.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("setup create failed: err=%v code=%d body=%s", err, rec.Code, rec.Body.String())
	}
	var out reservationView
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	return out
}

func TestLookupTokenHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &CheckInHandler{Svc: env.svc}
	created := createConfirmed(t, env)

	c, rec := newContext(http.MethodGet, "/v1/checkin/"+*created.Token, "", 99, model.RoleStaff)
	c.SetParamNames("token")
	c.SetParamValues(*created.Token)
	if err := h.LookupToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out reservationView
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.ID != created.ID {
		t.Fatalf("lookup resolved reservation %d, want %d", out.ID, created.ID)
	}
	// Lookup is read-only.
	if out.Status != string(model.StatusConfirmed) {
		t.Fatalf("lookup must not change state, got %s", out.Status)
	}

	c, rec = newContext(http.MethodGet, "/v1/checkin/no-such-token", "", 99, model.RoleStaff)
	c.SetParamNames("token")
	c.SetParamValues("no-such-token")
	if err := h.LookupToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown token, got %d", rec.Code)
	}
}

func TestCheckInHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &CheckInHandler{Svc: env.svc}
	created := createConfirmed(t, env)
	body := fmt.Sprintf(`{"token":%q}`, *created.Token)

	c, rec := newContext(http.MethodPost, "/v1/checkin", body, 99, model.RoleStaff)
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var out reservationView
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	if out.Status != string(model.StatusCheckedIn) {
		t.Fatalf("expected CHECKED_IN, got %s", out.Status)
	}

	// Second redeem of the same token: 409 naming the current state.
	c, rec = newContext(http.MethodPost, "/v1/checkin", body, 99, model.RoleStaff)
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double check-in, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if want := string(model.StatusCheckedIn); !strings.Contains(resp["error"], want) {
		t.Fatalf("refusal should name %s, got %q", want, resp["error"])
	}
}

func TestCheckInHandlerMissingToken(t *testing.T) {
	env := newHandlerEnv(t, 10)
	h := &CheckInHandler{Svc: env.svc}

	c, rec := newContext(http.MethodPost, "/v1/checkin", `{"token":""}`, 99, model.RoleStaff)
	if err := h.CheckIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConfirmReservationHandler(t *testing.T) {
	env := newHandlerEnv(t, 10)
	rh := &ReservationHandler{Svc: env.svc}
	h := &CheckInHandler{Svc: env.svc}

	// Staff park a pending walk-in.
	body := fmt.Sprintf(`{"venue_id":%d,"customer_name":"Walk In","customer_email":"desk@example.com","party_size":3,"reservation_time":%q,"meal_type":"LUNCH","pending":true}`,
		env.venue.ID, lunchSlot.Format("2006-01-02T15:04:05Z07:00"))
	c, rec := newContext(http.MethodPost, "/v1/reservations", body, 99, model.RoleStaff)
	if err := rh.CreateReservation(c); err != nil || rec.Code != http.StatusCreated {
		t.Fatalf("pending create failed: err=%v code=%d body=%s", err, rec.Code, rec.Body.String())
	}
	var created reservationView
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	if created.Status != string(model.StatusPending) {
		t.Fatalf("expected PENDING, got %s", created.Status)
	}
	if created.Token != nil {
		t.Fatalf("pending reservation must have no token")
	}

	id := fmt.Sprint(created.ID)
	c, rec = newContext(http.MethodPost, "/v1/reservations/"+id+"/confirm", "", 99, model.RoleStaff)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if err := h.ConfirmReservation(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirmed reservationView
	_ = json.Unmarshal(rec.Body.Bytes(), &confirmed)
	if confirmed.Status != string(model.StatusConfirmed) {
		t.Fatalf("expected CONFIRMED, got %s", confirmed.Status)
	}
	if confirmed.Token == nil || *confirmed.Token == "" {
		t.Fatalf("confirm must mint and return the token")
	}
}
