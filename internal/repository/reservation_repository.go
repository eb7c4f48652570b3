package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/venue-reservation/internal/booking"
	"github.com/iliyamo/venue-reservation/internal/model"
)

// ReservationRepo persists reservations.  It implements
// booking.ReservationStore over the `reservations` table.  All
// timestamp fields are stored in UTC; reservation_time is written with
// second precision since slots are minute-aligned.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const mysqlTimeLayout = "2006-01-02 15:04:05"

// Create inserts a new reservation inside a transaction and populates
// the generated ID plus timestamp defaults on the provided record.  The
// token column carries a UNIQUE index, so a duplicate token surfaces as
// an error here rather than silently overwriting.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const q = `INSERT INTO reservations
	           (venue_id, account_id, customer_name, customer_email, customer_phone,
	            party_size, reservation_time, meal_type, note, status, token)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.VenueID, nullableID(res.AccountID), res.CustomerName, res.CustomerEmail, res.CustomerPhone,
		res.PartySize, res.ReservationTime.UTC().Format(mysqlTimeLayout),
		string(res.MealType), res.Note, string(res.Status), nullableStr(res.Token),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	// Query back the row to populate timestamps and defaults.
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

const reservationSelect = `SELECT r.id, r.venue_id, r.account_id, r.customer_name, r.customer_email,
	       r.customer_phone, r.party_size, r.reservation_time, r.meal_type, r.note,
	       r.status, r.token, v.name, r.created_at, r.updated_at
	FROM reservations r
	JOIN venues v ON v.id = r.venue_id`

// GetByID returns the reservation with venue name populated, or
// booking.ErrNotFound.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.id = ?`, id)
	return scanReservation(row)
}

// GetByToken looks a reservation up by token value alone.
func (r *ReservationRepo) GetByToken(ctx context.Context, token string) (*model.Reservation, error) {
	row := r.db.QueryRowContext(ctx, reservationSelect+` WHERE r.token = ?`, token)
	return scanReservation(row)
}

// ListByAccount returns all reservations created under the account,
// newest first.  When none exist an empty slice is returned.
func (r *ReservationRepo) ListByAccount(ctx context.Context, accountID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, reservationSelect+` WHERE r.account_id = ? ORDER BY r.created_at DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]model.Reservation, 0)
	for rows.Next() {
		res, err := scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// SumActiveParty aggregates party sizes for the exact (venue, slot)
// pair over every reservation whose status is not CANCELLED.  This is
// the aggregate the ledger re-reads inside its critical section.
func (r *ReservationRepo) SumActiveParty(ctx context.Context, venueID uint64, at time.Time) (int, error) {
	const q = `SELECT COALESCE(SUM(party_size), 0)
	           FROM reservations
	           WHERE venue_id = ? AND reservation_time = ? AND status <> 'CANCELLED'`
	var total int
	err := r.db.QueryRowContext(ctx, q, venueID, at.UTC().Format(mysqlTimeLayout)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateStatus transitions the row from the expected status to the new
// one, attaching a token when provided.  The WHERE clause on the old
// status makes the update a compare-and-swap: zero affected rows means
// either the id is unknown (booking.ErrNotFound) or another writer got
// there first (booking.ErrConflict).
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, from, to model.ReservationStatus, token *string) error {
	var (
		result sql.Result
		err    error
	)
	if token != nil {
		const q = `UPDATE reservations SET status = ?, token = ? WHERE id = ? AND status = ?`
		result, err = r.db.ExecContext(ctx, q, string(to), *token, id, string(from))
	} else {
		const q = `UPDATE reservations SET status = ? WHERE id = ? AND status = ?`
		result, err = r.db.ExecContext(ctx, q, string(to), id, string(from))
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM reservations WHERE id = ?`, id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return booking.ErrNotFound
			}
			return err
		}
		return booking.ErrConflict
	}
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReservation(row *sql.Row) (*model.Reservation, error) {
	res, err := scanReservationRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, booking.ErrNotFound
	}
	return res, err
}

func scanReservationRow(s rowScanner) (*model.Reservation, error) {
	var (
		res       model.Reservation
		accountID sql.NullInt64
		token     sql.NullString
		resTime   time.Time
		mealType  string
		status    string
	)
	if err := s.Scan(
		&res.ID, &res.VenueID, &accountID, &res.CustomerName, &res.CustomerEmail,
		&res.CustomerPhone, &res.PartySize, &resTime, &mealType, &res.Note,
		&status, &token, &res.VenueName, &res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	// parseTime=true in the DSN yields time.Time in UTC already.
	res.ReservationTime = resTime.UTC()
	res.MealType = model.MealType(mealType)
	res.Status = model.ReservationStatus(status)
	if accountID.Valid {
		aid := uint64(accountID.Int64)
		res.AccountID = &aid
	}
	if token.Valid {
		tk := token.String
		res.Token = &tk
	}
	return &res, nil
}

func nullableID(id *uint64) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullableStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
