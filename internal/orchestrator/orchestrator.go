package orchestrator

import (
	"context"
	"errors"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/logger"
	"github.com/nazgool97/salon-bot-sub000/internal/models"
	"github.com/nazgool97/salon-bot-sub000/internal/notify"
	"github.com/nazgool97/salon-bot-sub000/internal/pricing"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"
	"github.com/nazgool97/salon-bot-sub000/internal/slots"
	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"
)

// Result is the uniform return shape of every public operation, per
// SPEC_FULL.md §4.7's result-struct design decision.
type Result struct {
	OK      bool
	Error   CoreError
	Booking *models.Booking
	Payload map[string]interface{}
}

func fail(code CoreError) Result { return Result{OK: false, Error: code} }

func ok(b *models.Booking, payload map[string]interface{}) Result {
	return Result{OK: true, Booking: b, Payload: payload}
}

// Orchestrator is C7: it owns no storage itself, composing the booking
// repository, pricing engine, slot calculator and notification dispatcher
// behind the eight public lifecycle operations.
type Orchestrator struct {
	bookings *repository.BookingRepository
	masters  *repository.MasterRepository
	services *repository.ServiceRepository
	settings *settings.Store
	notifier *notify.Dispatcher
	calc     *slots.Calculator
}

// New builds an Orchestrator.
func New(
	bookings *repository.BookingRepository,
	masters *repository.MasterRepository,
	services *repository.ServiceRepository,
	settingsStore *settings.Store,
	notifier *notify.Dispatcher,
	loc *time.Location,
) *Orchestrator {
	return &Orchestrator{
		bookings: bookings,
		masters:  masters,
		services: services,
		settings: settingsStore,
		notifier: notifier,
		calc:     slots.NewCalculator(loc),
	}
}

// HoldRequest bundles Hold's inputs: a client picking one or more services
// from one master at one start time.
type HoldRequest struct {
	UserID     int64
	MasterID   int64
	ServiceIDs []string
	StartsAt   time.Time
	IsOnline   bool
}

// Hold validates a requested slot is free and within the booking horizon,
// prices it, and creates a RESERVED booking holding the slot for
// reservation_hold_minutes.
func (o *Orchestrator) Hold(ctx context.Context, req HoldRequest) Result {
	if req.MasterID == 0 {
		return fail(ErrMasterRequired)
	}
	if len(req.ServiceIDs) == 0 {
		return fail(ErrServiceRequired)
	}

	now := time.Now().UTC()
	if req.StartsAt.Before(now) {
		return fail(ErrSlotInPast)
	}

	fallbackDuration := o.settings.GetInt(ctx, settings.KeySlotDurationMinutes, 60)
	maxDaysAhead := o.settings.GetInt(ctx, settings.KeyCalendarMaxDaysAhead, 365)
	if req.StartsAt.After(now.AddDate(0, 0, maxDaysAhead)) {
		return fail(ErrSlotUnavailable)
	}

	var lineItems []pricing.LineItem
	var bookingItems []models.BookingItem
	for _, svcID := range req.ServiceIDs {
		svc, err := o.services.FindByID(ctx, svcID)
		if err != nil {
			return fail(ErrServiceRequired)
		}
		override, err := o.services.MasterOverride(ctx, req.MasterID, svcID)
		if err != nil {
			return fail(ErrInternal)
		}
		lineItems = append(lineItems, pricing.LineItem{Service: svc, Override: override})
		bookingItems = append(bookingItems, models.BookingItem{
			ServiceID:           svcID,
			PriceCentsSnapshot:  models.EffectivePriceCents(svc),
			DurationMinSnapshot: models.EffectiveDurationMinutes(svc, override, fallbackDuration),
		})
	}

	agg := pricing.AggregateLineItems(lineItems, fallbackDuration)
	if agg.DurationMinutes <= 0 {
		return fail(ErrServiceRequired)
	}
	endsAt := req.StartsAt.Add(time.Duration(agg.DurationMinutes) * time.Minute)

	pct := o.settings.GetInt(ctx, settings.KeyOnlinePaymentDiscountPercent, 5)
	quote := pricing.QuoteOnline(agg.PriceCents, pct, req.IsOnline)

	if req.IsOnline && !o.settings.GetBool(ctx, settings.KeyTelegramPaymentsEnabled, true) {
		return fail(ErrOnlinePaymentsUnavailable)
	}

	if err := o.assertSlotStillFree(ctx, req.MasterID, req.StartsAt, endsAt); err != nil {
		return fail(ErrSlotUnavailable)
	}

	holdMinutes := o.settings.GetInt(ctx, settings.KeyReservationHoldMinutes, 10)
	booking, err := o.bookings.CreateHold(ctx, repository.CreateHoldParams{
		UserID:             req.UserID,
		MasterID:           req.MasterID,
		StartsAt:           req.StartsAt,
		EndsAt:             endsAt,
		OriginalPriceCents: quote.OriginalCents,
		FinalPriceCents:    quote.FinalCents,
		DiscountApplied:    quote.Applied,
		HoldMinutes:        holdMinutes,
		Items:              bookingItems,
	})
	if err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return fail(ErrConflict)
		}
		logger.Error(err).Msg("orchestrator: hold failed")
		return fail(ErrInternal)
	}

	o.notifier.Notify(ctx, notify.EventReserved, booking.ID, []int64{req.UserID})
	return ok(booking, map[string]interface{}{"quote": quote})
}

// assertSlotStillFree re-checks the candidate window against the master's
// current bookings right before the write, closing the gap between a
// cached availability read and the hold attempt. The exclusion constraint
// is still the final word; this is a fast-fail, not a substitute for it.
func (o *Orchestrator) assertSlotStillFree(ctx context.Context, masterID int64, startsAt, endsAt time.Time) error {
	existing, err := o.bookings.ListActiveForMasterInRange(ctx, masterID, startsAt, endsAt)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for _, b := range existing {
		if busy, blocks := slots.BookingToBusy(b, now, 0); blocks {
			if startsAt.Before(busy.End) && busy.Start.Before(endsAt) {
				return repository.ErrBookingConflict
			}
		}
	}
	return nil
}

// CreateBooking is the hold+finalize shorthand named in spec.md §4.8: it
// holds the slot and immediately finalizes it with the same payment method,
// so callers that don't need the intermediate RESERVED step can do both in
// one round trip.
func (o *Orchestrator) CreateBooking(ctx context.Context, req HoldRequest) Result {
	held := o.Hold(ctx, req)
	if !held.OK {
		return held
	}
	return o.Finalize(ctx, held.Booking.ID, req.UserID, req.IsOnline)
}

// Finalize moves a held booking from RESERVED toward its payment-method
// path: CONFIRMED immediately for cash, or PENDING_PAYMENT while an online
// payment is collected (MarkPaid is called separately once it settles).
func (o *Orchestrator) Finalize(ctx context.Context, bookingID, callerUserID int64, online bool) Result {
	booking, err := o.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fail(ErrBookingNotFound)
	}
	if booking.UserID != callerUserID {
		return fail(ErrUnauthorized)
	}
	if booking.IsTerminal() {
		return fail(ErrBookingNotActive)
	}

	if online {
		updated, err := o.bookings.SetPendingPayment(ctx, bookingID, &callerUserID)
		if err != nil {
			return fail(translateTransitionErr(err))
		}
		return ok(updated, nil)
	}

	updated, err := o.bookings.ConfirmCash(ctx, bookingID, &callerUserID)
	if err != nil {
		return fail(translateTransitionErr(err))
	}
	o.notifier.Notify(ctx, notify.EventCashConfirmed, updated.ID, []int64{updated.UserID})
	return ok(updated, nil)
}

// MarkPaid records a settled online payment.
func (o *Orchestrator) MarkPaid(ctx context.Context, bookingID int64, provider, paymentID string) Result {
	booking, err := o.bookings.MarkPaid(ctx, bookingID, provider, paymentID, nil)
	if err != nil {
		return fail(translateTransitionErr(err))
	}
	o.notifier.Notify(ctx, notify.EventPaid, booking.ID, []int64{booking.UserID})
	return ok(booking, nil)
}

// Cancel transitions a booking to CANCELLED, rejecting client-initiated
// cancellations inside the client_cancel_lock_hours window (masters/admins
// bypass the lock).
func (o *Orchestrator) Cancel(ctx context.Context, bookingID, callerUserID int64, callerIsMasterOrAdmin bool) Result {
	booking, err := o.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fail(ErrBookingNotFound)
	}
	if booking.UserID != callerUserID && !callerIsMasterOrAdmin {
		return fail(ErrUnauthorized)
	}
	if booking.IsTerminal() {
		return fail(ErrBookingNotActive)
	}

	if !callerIsMasterOrAdmin {
		lockHours := o.settings.GetInt(ctx, settings.KeyClientCancelLockHours, 3)
		if time.Until(booking.StartsAt) < time.Duration(lockHours)*time.Hour {
			return fail(ErrCancelTooClose)
		}
	}

	updated, err := o.bookings.SetCancelled(ctx, bookingID, &callerUserID)
	if err != nil {
		return fail(translateTransitionErr(err))
	}
	o.notifier.Notify(ctx, notify.EventCancelled, updated.ID, []int64{updated.UserID})
	return ok(updated, nil)
}

// Reschedule moves a booking to a new start time, subject to the same
// lock-window rule as Cancel and the same conflict check as Hold.
func (o *Orchestrator) Reschedule(ctx context.Context, bookingID, callerUserID int64, callerIsMasterOrAdmin bool, newStartsAt time.Time) Result {
	booking, err := o.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fail(ErrBookingNotFound)
	}
	if booking.UserID != callerUserID && !callerIsMasterOrAdmin {
		return fail(ErrUnauthorized)
	}
	if booking.IsTerminal() {
		return fail(ErrBookingNotActive)
	}

	if !callerIsMasterOrAdmin {
		lockHours := o.settings.GetInt(ctx, settings.KeyClientRescheduleLockHours, 3)
		if time.Until(booking.StartsAt) < time.Duration(lockHours)*time.Hour {
			return fail(ErrRescheduleTooClose)
		}
	}

	duration := booking.Duration()
	newEndsAt := newStartsAt.Add(duration)
	if newStartsAt.Before(time.Now().UTC()) {
		return fail(ErrSlotInPast)
	}
	if err := o.assertSlotStillFree(ctx, booking.MasterID, newStartsAt, newEndsAt); err != nil {
		return fail(ErrSlotUnavailable)
	}

	event := notify.EventRescheduledByClient
	if callerIsMasterOrAdmin {
		event = notify.EventRescheduledByMaster
	}

	updated, err := o.bookings.Reschedule(ctx, bookingID, newStartsAt, newEndsAt, &callerUserID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingConflict) {
			return fail(ErrConflict)
		}
		return fail(translateTransitionErr(err))
	}
	o.notifier.Notify(ctx, event, updated.ID, []int64{updated.UserID})
	return ok(updated, nil)
}

// Rate records a client's 1-5 rating of a DONE booking. At most one
// rating per booking is ever accepted.
func (o *Orchestrator) Rate(ctx context.Context, bookingID, callerUserID int64, rating int, comment *string) Result {
	booking, err := o.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fail(ErrBookingNotFound)
	}
	if booking.UserID != callerUserID {
		return fail(ErrUnauthorized)
	}
	if booking.Status != statemachine.Done {
		return fail(ErrRatingOnlyAfterDone)
	}
	if err := models.ValidateRatingValue(rating); err != nil {
		return fail(ErrRatingInvalidValue)
	}

	_, err = o.bookings.RateBooking(ctx, bookingID, rating, comment)
	if err != nil {
		if errors.Is(err, repository.ErrRatingAlreadyExists) {
			return fail(ErrAlreadyRated)
		}
		return fail(ErrInternal)
	}
	return ok(booking, nil)
}

// CreateInvoice returns the fixed price snapshot for a booking whose
// price has already been set at hold time; it never recomputes pricing.
func (o *Orchestrator) CreateInvoice(ctx context.Context, bookingID int64) Result {
	booking, err := o.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return fail(ErrBookingNotFound)
	}
	if booking.OriginalPriceCents <= 0 {
		return fail(ErrInvoiceMissingPrice)
	}
	return ok(booking, map[string]interface{}{
		"original_price_cents": booking.OriginalPriceCents,
		"final_price_cents":    booking.FinalPriceCents,
		"discount_applied":     booking.DiscountApplied,
	})
}

func translateTransitionErr(err error) CoreError {
	if errors.Is(err, repository.ErrInvalidStatusTransition) {
		return ErrBookingNotActive
	}
	if errors.Is(err, repository.ErrBookingNotFound) {
		return ErrBookingNotFound
	}
	return ErrInternal
}
