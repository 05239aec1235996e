package workers

import (
	"context"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/logger"
	"github.com/nazgool97/salon-bot-sub000/internal/notify"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"
)

// NewReminderLoop builds C10: notifying clients of an upcoming CONFIRMED
// or PAID booking once it falls inside reminder_lead_minutes of its start.
// A booking's reminder bookkeeping is updated right after Notify returns.
// Notify reports no enqueue failure, so a booking is stamped whether or not
// its reminder was queued, and a reminder that failed to enqueue is not
// retried on a later tick.
func NewReminderLoop(bookings *repository.BookingRepository, store *settings.Store, notifier *notify.Dispatcher) *Loop {
	cadence := func(ctx context.Context) time.Duration {
		return store.GetDuration(ctx, settings.KeyRemindersCheckSeconds, 60, time.Second)
	}
	iteration := func(ctx context.Context) error {
		leadMinutes := store.GetInt(ctx, settings.KeyReminderLeadMinutes, 1440)
		due, err := bookings.NeedingReminders(ctx, time.Now().UTC(), leadMinutes)
		if err != nil {
			return err
		}
		for _, booking := range due {
			notifier.Notify(ctx, notify.EventReminder, booking.ID, []int64{booking.UserID})
			if err := bookings.MarkReminderSent(ctx, booking.ID, leadMinutes); err != nil {
				logger.Error(err).Int64("booking_id", booking.ID).Msg("reminder worker: failed to record reminder sent")
				continue
			}
		}
		return nil
	}
	return NewLoop("reminders", cadence, iteration)
}
