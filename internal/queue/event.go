// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published whenever a reservation reaches
// CONFIRMED, either at atomic admission or when staff confirm a pending
// booking.  It carries enough information for downstream consumers to
// log, notify or trigger analytics without querying the primary
// database.  The redemption token is deliberately absent: it is a
// credential, not event data.
type ReservationConfirmedEvent struct {
	ReservationID   uint64 `json:"reservation_id"`
	VenueID         uint64 `json:"venue_id"`
	VenueName       string `json:"venue_name"`
	CustomerName    string `json:"customer_name"`
	PartySize       int    `json:"party_size"`
	ReservationTime string `json:"reservation_time"`
	MealType        string `json:"meal_type"`
	ConfirmedAt     string `json:"confirmed_at"`
}
