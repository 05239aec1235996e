// internal/repository/booking_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"
)

// BookingRepository is C6: every write method runs in exactly one
// serializable transaction and appends a BookingStatusHistory row alongside
// any status change, per SPEC_FULL.md §4.6 and §5. The read methods
// (GetByID, ListByUser, ListActiveForMasterInRange, NeedingReminders) query
// the pool directly, outside any transaction.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository builds a BookingRepository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return translatePQError(err)
	}
	return tx.Commit()
}

func recordHistory(ctx context.Context, tx *sqlx.Tx, bookingID int64, old *statemachine.Status, next statemachine.Status, changedBy *int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO booking_status_history (booking_id, old_status, new_status, changed_at, changed_by)
		VALUES ($1, $2, $3, now(), $4)
	`, bookingID, old, next, changedBy)
	return err
}

func getBookingForUpdate(ctx context.Context, tx *sqlx.Tx, id int64) (*models.Booking, error) {
	var b models.Booking
	err := tx.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1 FOR UPDATE`, id)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func transitionTo(ctx context.Context, tx *sqlx.Tx, b *models.Booking, next statemachine.Status, changedBy *int64, extra string, args ...interface{}) error {
	if !statemachine.IsValidTransition(b.Status, next) {
		return ErrInvalidStatusTransition
	}
	old := b.Status
	query := fmt.Sprintf(`UPDATE bookings SET status = $%d, updated_at = now()%s WHERE id = $%d`, len(args)+1, extra, len(args)+2)
	allArgs := append(append([]interface{}{}, args...), next, b.ID)
	if _, err := tx.ExecContext(ctx, query, allArgs...); err != nil {
		return err
	}
	b.Status = next
	return recordHistory(ctx, tx, b.ID, &old, next, changedBy)
}

// CreateHoldParams bundles CreateHold's inputs.
type CreateHoldParams struct {
	UserID             int64
	MasterID           int64
	StartsAt, EndsAt    time.Time
	OriginalPriceCents int64
	FinalPriceCents    int64
	DiscountApplied    bool
	HoldMinutes        int
	Items              []models.BookingItem
}

// CreateHold inserts a new RESERVED booking with its line items, relying
// on the exclusion constraint to reject any overlap atomically.
func (r *BookingRepository) CreateHold(ctx context.Context, p CreateHoldParams) (*models.Booking, error) {
	var booking models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		holdExpiresAt := time.Now().UTC().Add(time.Duration(p.HoldMinutes) * time.Minute)
		row := tx.QueryRowxContext(ctx, `
			INSERT INTO bookings (
				user_id, master_id, status, starts_at, ends_at,
				original_price_cents, final_price_cents, discount_applied,
				cash_hold_expires_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			RETURNING *
		`, p.UserID, p.MasterID, statemachine.Reserved, p.StartsAt, p.EndsAt,
			p.OriginalPriceCents, p.FinalPriceCents, p.DiscountApplied, holdExpiresAt)
		if err := row.StructScan(&booking); err != nil {
			return err
		}

		for i, item := range p.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO booking_items (booking_id, service_id, position, price_cents_snapshot, duration_minutes_snapshot)
				VALUES ($1, $2, $3, $4, $5)
			`, booking.ID, item.ServiceID, i, item.PriceCentsSnapshot, item.DurationMinSnapshot)
			if err != nil {
				return err
			}
		}

		return recordHistory(ctx, tx, booking.ID, nil, statemachine.Reserved, &p.UserID)
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmCash transitions a held booking to CONFIRMED (cash payment path;
// clears the hold since the slot is now held by a confirmed commitment,
// not a timed reservation).
func (r *BookingRepository) ConfirmCash(ctx context.Context, bookingID int64, changedBy *int64) (*models.Booking, error) {
	var booking *models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := transitionTo(ctx, tx, b, statemachine.Confirmed, changedBy, ", cash_hold_expires_at = NULL"); err != nil {
			return err
		}
		booking = b
		return nil
	})
	return booking, err
}

// SetPendingPayment transitions RESERVED -> PENDING_PAYMENT (an online
// payment attempt has begun) without altering the hold.
func (r *BookingRepository) SetPendingPayment(ctx context.Context, bookingID int64, changedBy *int64) (*models.Booking, error) {
	var booking *models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := transitionTo(ctx, tx, b, statemachine.PendingPayment, changedBy, ""); err != nil {
			return err
		}
		booking = b
		return nil
	})
	return booking, err
}

// MarkPaid transitions a booking to PAID, stamping paid_at/provider/id and
// clearing any remaining hold.
func (r *BookingRepository) MarkPaid(ctx context.Context, bookingID int64, provider, paymentID string, changedBy *int64) (*models.Booking, error) {
	var booking *models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		extra := ", cash_hold_expires_at = NULL, paid_at = now(), payment_provider = $1, payment_id = $2"
		if err := transitionTo(ctx, tx, b, statemachine.Paid, changedBy, extra, provider, paymentID); err != nil {
			return err
		}
		booking = b
		return nil
	})
	return booking, err
}

// SetCancelled transitions a booking into CANCELLED.
func (r *BookingRepository) SetCancelled(ctx context.Context, bookingID int64, changedBy *int64) (*models.Booking, error) {
	var booking *models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := transitionTo(ctx, tx, b, statemachine.Cancelled, changedBy, ", cash_hold_expires_at = NULL"); err != nil {
			return err
		}
		booking = b
		return nil
	})
	return booking, err
}

// MarkDone transitions a booking into DONE.
func (r *BookingRepository) MarkDone(ctx context.Context, bookingID int64, changedBy *int64) (*models.Booking, error) {
	var booking *models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if err := transitionTo(ctx, tx, b, statemachine.Done, changedBy, ""); err != nil {
			return err
		}
		booking = b
		return nil
	})
	return booking, err
}

// Reschedule moves a booking to a new time window without changing its
// status; the exclusion constraint guards the new window the same as a
// fresh insert would.
func (r *BookingRepository) Reschedule(ctx context.Context, bookingID int64, startsAt, endsAt time.Time, changedBy *int64) (*models.Booking, error) {
	var booking *models.Booking
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		b, err := getBookingForUpdate(ctx, tx, bookingID)
		if err != nil {
			return err
		}
		if b.IsTerminal() {
			return ErrInvalidStatusTransition
		}
		_, err = tx.ExecContext(ctx, `UPDATE bookings SET starts_at = $1, ends_at = $2, updated_at = now() WHERE id = $3`,
			startsAt, endsAt, b.ID)
		if err != nil {
			return err
		}
		b.StartsAt, b.EndsAt = startsAt, endsAt
		booking = b
		return nil
	})
	return booking, err
}

// RateBooking inserts the single rating a DONE booking may carry.
func (r *BookingRepository) RateBooking(ctx context.Context, bookingID int64, rating int, comment *string) (*models.BookingRating, error) {
	var result models.BookingRating
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		row := tx.QueryRowxContext(ctx, `
			INSERT INTO booking_ratings (booking_id, rating, comment, created_at)
			VALUES ($1, $2, $3, now())
			RETURNING *
		`, bookingID, rating, comment)
		return row.StructScan(&result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ExpireOverdue transitions every RESERVED/PENDING_PAYMENT booking whose
// hold has lapsed into EXPIRED, taking a per-(master_id, starts_at)
// advisory lock before each group's transition so a concurrent insert for
// the same slot serializes against it cleanly (§5). A booking with no
// explicit cash_hold_expires_at falls back to created_at + holdMinutes, the
// same legacy-hold rule slots.BookingToBusy applies.
func (r *BookingRepository) ExpireOverdue(ctx context.Context, now time.Time, holdMinutes int) (int, error) {
	type candidate struct {
		ID       int64     `db:"id"`
		MasterID int64     `db:"master_id"`
		StartsAt time.Time `db:"starts_at"`
	}

	count := 0
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var candidates []candidate
		err := tx.SelectContext(ctx, &candidates, `
			SELECT id, master_id, starts_at FROM bookings
			WHERE status IN ('reserved', 'pending_payment')
			  AND (
			    (cash_hold_expires_at IS NOT NULL AND cash_hold_expires_at <= $1)
			    OR (cash_hold_expires_at IS NULL AND created_at <= $1 - make_interval(mins => $2))
			  )
			ORDER BY master_id, starts_at
		`, now, holdMinutes)
		if err != nil {
			return err
		}

		for _, c := range candidates {
			if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
				fmt.Sprintf("%d:%s", c.MasterID, c.StartsAt.Format(time.RFC3339Nano))); err != nil {
				return err
			}

			var b models.Booking
			if err := tx.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1 FOR UPDATE`, c.ID); err != nil {
				if err == sql.ErrNoRows {
					continue
				}
				return err
			}
			if b.IsTerminal() || !statemachine.IsValidTransition(b.Status, statemachine.Expired) {
				continue
			}
			if err := transitionTo(ctx, tx, &b, statemachine.Expired, nil, ", cash_hold_expires_at = NULL"); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

// MarkNoshowPast transitions any non-terminal booking whose start time is
// more than graceHours ago into NO_SHOW, returning the affected ids.
func (r *BookingRepository) MarkNoshowPast(ctx context.Context, now time.Time, graceHours int) ([]int64, error) {
	var ids []int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		var candidates []models.Booking
		cutoff := now.Add(-time.Duration(graceHours) * time.Hour)
		err := tx.SelectContext(ctx, &candidates, `
			SELECT * FROM bookings
			WHERE status IN ('reserved', 'pending_payment', 'confirmed', 'paid')
			  AND starts_at <= $1
			FOR UPDATE
		`, cutoff)
		if err != nil {
			return err
		}
		for _, b := range candidates {
			booking := b
			if !statemachine.IsValidTransition(booking.Status, statemachine.NoShow) {
				continue
			}
			if err := transitionTo(ctx, tx, &booking, statemachine.NoShow, nil, ""); err != nil {
				return err
			}
			ids = append(ids, booking.ID)
		}
		return nil
	})
	return ids, err
}

// GetByID fetches a single booking.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var b models.Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	return &b, err
}

// ListByUser lists a user's bookings, most recent first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT * FROM bookings WHERE user_id = $1 ORDER BY starts_at DESC LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return bookings, err
}

// ListActiveForMasterInRange loads every non-terminal (plus recently
// terminal, for safety margin) booking for a master within [from, to), the
// single bulk query C3/C4 use instead of a per-day round trip.
func (r *BookingRepository) ListActiveForMasterInRange(ctx context.Context, masterID int64, from, to time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT * FROM bookings
		WHERE master_id = $1 AND starts_at < $3 AND ends_at > $2
		  AND status NOT IN ('cancelled', 'expired')
	`, masterID, from, to)
	return bookings, err
}

// NeedingReminders lists CONFIRMED/PAID bookings starting within
// leadMinutes whose last reminder is stale or unsent.
func (r *BookingRepository) NeedingReminders(ctx context.Context, now time.Time, leadMinutes int) ([]models.Booking, error) {
	var bookings []models.Booking
	horizon := now.Add(time.Duration(leadMinutes) * time.Minute)
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT * FROM bookings
		WHERE status IN ('confirmed', 'paid')
		  AND starts_at > $1 AND starts_at <= $2
		  AND (last_reminder_sent_at IS NULL OR last_reminder_lead_minutes IS DISTINCT FROM $3)
	`, now, horizon, leadMinutes)
	return bookings, err
}

// MarkReminderSent stamps a booking's reminder bookkeeping in its own
// transaction. The reminders worker calls it right after handing the
// reminder to the notifier, which reports no enqueue failure, so a booking
// is stamped whether or not its reminder was actually delivered.
func (r *BookingRepository) MarkReminderSent(ctx context.Context, bookingID int64, leadMinutes int) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
			UPDATE bookings SET last_reminder_sent_at = now(), last_reminder_lead_minutes = $1, updated_at = now()
			WHERE id = $2
		`, leadMinutes, bookingID)
		return err
	})
}
