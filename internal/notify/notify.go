// Package notify implements C11: best-effort fan-out of booking lifecycle
// events to their recipients. It is the only place in the system that
// renders user-visible booking text; failures here are logged and never
// propagate back to the caller that triggered the event.
package notify

import (
	"context"
	"fmt"

	"github.com/nazgool97/salon-bot-sub000/internal/cache"
	"github.com/nazgool97/salon-bot-sub000/internal/logger"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
)

// Event is one of the lifecycle notification kinds from SPEC_FULL.md
// §4.10.
type Event string

const (
	EventReserved             Event = "reserved"
	EventConfirmed            Event = "confirmed"
	EventPaid                 Event = "paid"
	EventCashConfirmed        Event = "cash_confirmed"
	EventCancelled            Event = "cancelled"
	EventRescheduledByClient  Event = "rescheduled_by_client"
	EventRescheduledByMaster  Event = "rescheduled_by_master"
	EventNoShow               Event = "no_show"
	EventReminder             Event = "reminder"
)

// messageTemplates gives each event a localized (today: a single default
// locale) rendering template keyed by event. Real locale switching is a
// façade concern layered on top of Render.
var messageTemplates = map[Event]string{
	EventReserved:            "Your booking #%d is reserved. Complete payment within the hold window to keep it.",
	EventConfirmed:           "Your booking #%d is confirmed.",
	EventPaid:                "Payment received for booking #%d. See you soon!",
	EventCashConfirmed:       "Booking #%d confirmed for cash payment on arrival.",
	EventCancelled:           "Booking #%d has been cancelled.",
	EventRescheduledByClient: "Booking #%d was rescheduled.",
	EventRescheduledByMaster: "Booking #%d was rescheduled by the studio.",
	EventNoShow:              "Booking #%d was marked as a no-show.",
	EventReminder:            "Reminder: you have booking #%d coming up.",
}

// Payload is what gets marshalled onto the outbox for out-of-process
// delivery.
type Payload struct {
	Event      Event   `json:"event"`
	BookingID  int64   `json:"booking_id"`
	Recipients []int64 `json:"recipients"`
	Message    string  `json:"message"`
}

// Dispatcher renders and enqueues notifications. Delivery itself (the
// actual messaging-platform send) happens out of core, consuming the
// queue this package writes to.
type Dispatcher struct {
	cache    *cache.CacheService
	bookings *repository.BookingRepository
}

// New builds a Dispatcher.
func New(cacheService *cache.CacheService, bookings *repository.BookingRepository) *Dispatcher {
	return &Dispatcher{cache: cacheService, bookings: bookings}
}

// Notify renders event for bookingID and enqueues it once per deduplicated
// recipient. Any failure is logged and swallowed — a notification problem
// must never fail the booking operation that triggered it.
func (d *Dispatcher) Notify(ctx context.Context, event Event, bookingID int64, recipients []int64) {
	recipients = dedupe(recipients)
	if len(recipients) == 0 {
		return
	}

	message := Render(event, bookingID)
	payload := Payload{Event: event, BookingID: bookingID, Recipients: recipients, Message: message}

	if err := d.cache.PushNotification(ctx, payload); err != nil {
		logger.Error(err).
			Str("event", string(event)).
			Int64("booking_id", bookingID).
			Msg("notify: failed to enqueue notification")
	}
}

// Render produces the user-visible text for an event/booking pair. This is
// the only function in the system that formats booking text for display.
func Render(event Event, bookingID int64) string {
	tmpl, ok := messageTemplates[event]
	if !ok {
		return fmt.Sprintf("Update on booking #%d.", bookingID)
	}
	return fmt.Sprintf(tmpl, bookingID)
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
