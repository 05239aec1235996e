package workers

import (
	"context"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/logger"
	"github.com/nazgool97/salon-bot-sub000/internal/notify"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"
)

// NewCleanupLoop builds C9: sweeping non-terminal bookings whose start
// time is more than no_show_grace_hours ago into NO_SHOW, notifying the
// client, the master, and admins (deduplicated).
func NewCleanupLoop(bookings *repository.BookingRepository, store *settings.Store, notifier *notify.Dispatcher, adminIDs []int64) *Loop {
	cadence := func(ctx context.Context) time.Duration {
		return store.GetDuration(ctx, settings.KeyCleanupCheckSeconds, 900, time.Second)
	}
	iteration := func(ctx context.Context) error {
		graceHours := store.GetInt(ctx, settings.KeyNoShowGraceHours, 2)
		ids, err := bookings.MarkNoshowPast(ctx, time.Now().UTC(), graceHours)
		if err != nil {
			return err
		}
		for _, id := range ids {
			booking, err := bookings.GetByID(ctx, id)
			if err != nil {
				logger.Error(err).Int64("booking_id", id).Msg("cleanup worker: failed to reload booking for notify")
				continue
			}
			recipients := append([]int64{booking.UserID, booking.MasterID}, adminIDs...)
			notifier.Notify(ctx, notify.EventNoShow, booking.ID, recipients)
		}
		if len(ids) > 0 {
			logger.Info().Int("no_show_count", len(ids)).Msg("cleanup worker: marked bookings no-show")
		}
		return nil
	}
	return NewLoop("cleanup", cadence, iteration)
}
