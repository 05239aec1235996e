// internal/models/booking.go
package models

import (
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"
)

// Booking is a single reservation of one master's time by one user. Status
// transitions are governed exclusively by internal/statemachine; this
// struct only carries the current value and the timestamps invariants
// reference (§3 of SPEC_FULL.md).
type Booking struct {
	ID     int64             `json:"id" db:"id"`
	UserID int64             `json:"user_id" db:"user_id"`
	MasterID int64           `json:"master_id" db:"master_id"`
	Status statemachine.Status `json:"status" db:"status"`

	StartsAt time.Time `json:"starts_at" db:"starts_at"` // UTC
	EndsAt   time.Time `json:"ends_at" db:"ends_at"`      // UTC

	OriginalPriceCents int64 `json:"original_price_cents" db:"original_price_cents"`
	FinalPriceCents    int64 `json:"final_price_cents" db:"final_price_cents"`
	DiscountApplied    bool  `json:"discount_applied" db:"discount_applied"`

	CashHoldExpiresAt *time.Time `json:"cash_hold_expires_at" db:"cash_hold_expires_at"`

	PaidAt          *time.Time `json:"paid_at" db:"paid_at"`
	PaymentProvider *string    `json:"payment_provider" db:"payment_provider"`
	PaymentID       *string    `json:"payment_id" db:"payment_id"`

	LastReminderSentAt      *time.Time `json:"last_reminder_sent_at" db:"last_reminder_sent_at"`
	LastReminderLeadMinutes *int       `json:"last_reminder_lead_minutes" db:"last_reminder_lead_minutes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsActive reports whether this booking currently occupies its slot.
func (b *Booking) IsActive() bool { return statemachine.IsActive(b.Status) }

// IsTerminal reports whether this booking's status can never change again.
func (b *Booking) IsTerminal() bool { return statemachine.IsTerminal(b.Status) }

// HoldActive reports whether the cash hold on this booking is still live at
// `now`. A nil CashHoldExpiresAt counts as live: this method does not apply
// the created_at + hold-minutes rule for legacy bookings that
// slots.BookingToBusy and ExpireOverdue apply.
func (b *Booking) HoldActive(now time.Time) bool {
	if b.CashHoldExpiresAt == nil {
		return true
	}
	return b.CashHoldExpiresAt.After(now)
}

// Duration returns the booked duration.
func (b *Booking) Duration() time.Duration {
	return b.EndsAt.Sub(b.StartsAt)
}
