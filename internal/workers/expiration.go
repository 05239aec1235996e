package workers

import (
	"context"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/logger"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"
)

// NewExpirationLoop builds C8: sweeping overdue holds into EXPIRED. This
// worker never notifies — an expired hold was never confirmed, so there is
// nothing client-visible to announce.
func NewExpirationLoop(bookings *repository.BookingRepository, store *settings.Store) *Loop {
	cadence := func(ctx context.Context) time.Duration {
		return store.GetDuration(ctx, settings.KeyReservationExpireCheckSeconds, 30, time.Second)
	}
	iteration := func(ctx context.Context) error {
		holdMinutes := store.GetInt(ctx, settings.KeyReservationHoldMinutes, 10)
		count, err := bookings.ExpireOverdue(ctx, time.Now().UTC(), holdMinutes)
		if err != nil {
			return err
		}
		if count > 0 {
			logger.Info().Int("expired", count).Msg("expiration worker: swept overdue holds")
		}
		return nil
	}
	return NewLoop("expiration", cadence, iteration)
}
