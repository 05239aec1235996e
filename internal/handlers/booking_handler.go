// internal/handlers/booking_handler.go
package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/middleware"
	"github.com/nazgool97/salon-bot-sub000/internal/models"
	"github.com/nazgool97/salon-bot-sub000/internal/orchestrator"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"
	"github.com/nazgool97/salon-bot-sub000/internal/slots"
	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"

	"github.com/gin-gonic/gin"
)

// BookingHandler is a thin gin layer over the C7 orchestrator: it parses
// and authenticates requests, then hands everything that matters about
// booking lifecycle off to Orchestrator, which is the only place those
// rules live.
type BookingHandler struct {
	orch     *orchestrator.Orchestrator
	bookings *repository.BookingRepository
	masters  *repository.MasterRepository
	settings *settings.Store
	avail    *slots.Availability
	calc     *slots.Calculator
	loc      *time.Location
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(
	orch *orchestrator.Orchestrator,
	bookings *repository.BookingRepository,
	masters *repository.MasterRepository,
	settingsStore *settings.Store,
	loc *time.Location,
) *BookingHandler {
	return &BookingHandler{
		orch:     orch,
		bookings: bookings,
		masters:  masters,
		settings: settingsStore,
		avail:    slots.NewAvailability(loc),
		calc:     slots.NewCalculator(loc),
		loc:      loc,
	}
}

// callerIsMasterOrAdmin reports whether the authenticated caller may bypass
// the client-only lock windows on cancel/reschedule.
func callerIsMasterOrAdmin(c *gin.Context) bool {
	userType, _ := middleware.GetUserType(c)
	return userType == "master" || userType == "admin"
}

// respondResult renders an orchestrator.Result as an HTTP response,
// mapping its stable CoreError codes to the appropriate status.
func respondResult(c *gin.Context, res orchestrator.Result) {
	if res.OK {
		payload := gin.H{"booking": res.Booking}
		for k, v := range res.Payload {
			payload[k] = v
		}
		RespondSuccess(c, payload)
		return
	}

	switch res.Error {
	case orchestrator.ErrBookingNotFound:
		RespondNotFound(c, "Booking")
	case orchestrator.ErrUnauthorized:
		RespondUnauthorized(c, string(res.Error))
	case orchestrator.ErrMasterRequired, orchestrator.ErrServiceRequired, orchestrator.ErrSlotInPast,
		orchestrator.ErrSlotUnavailable, orchestrator.ErrConflict, orchestrator.ErrBookingNotActive,
		orchestrator.ErrCancelTooClose, orchestrator.ErrRescheduleTooClose, orchestrator.ErrAlreadyRated,
		orchestrator.ErrRatingOnlyAfterDone, orchestrator.ErrRatingInvalidValue, orchestrator.ErrInvoiceMissingPrice,
		orchestrator.ErrOnlinePaymentsUnavailable:
		RespondBadRequest(c, string(res.Error), string(res.Error))
	default:
		RespondInternalError(c, "process booking", res.Error)
	}
}

// HoldRequest is the request body for holding a slot.
type HoldRequest struct {
	MasterID      int64     `json:"master_id" binding:"required"`
	ServiceIDs    []string  `json:"service_ids" binding:"required,min=1"`
	StartsAt      time.Time `json:"starts_at" binding:"required,not_past"`
	PaymentMethod string    `json:"payment_method" binding:"required,payment_method"`
}

func (r HoldRequest) toOrchestratorRequest(userID int64) orchestrator.HoldRequest {
	return orchestrator.HoldRequest{
		UserID:     userID,
		MasterID:   r.MasterID,
		ServiceIDs: r.ServiceIDs,
		StartsAt:   r.StartsAt,
		IsOnline:   r.PaymentMethod == "online",
	}
}

// Hold godoc
// @Summary Hold a slot, reserving it for the configured hold window
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body HoldRequest true "Hold request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/bookings/hold [post]
func (h *BookingHandler) Hold(c *gin.Context) {
	req, ok := BindJSON[HoldRequest](c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)
	respondResult(c, h.orch.Hold(c.Request.Context(), req.toOrchestratorRequest(int64(userID))))
}

// CreateBooking godoc
// @Summary Hold and immediately finalize a slot in one call
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body HoldRequest true "Booking request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	req, ok := BindJSON[HoldRequest](c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)
	respondResult(c, h.orch.CreateBooking(c.Request.Context(), req.toOrchestratorRequest(int64(userID))))
}

// FinalizeRequest is the request body for finalizing a held booking.
type FinalizeRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,payment_method"`
}

// Finalize godoc
// @Summary Move a RESERVED booking toward confirmation or payment
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param body body FinalizeRequest true "Finalize request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /api/v1/bookings/{id}/finalize [post]
func (h *BookingHandler) Finalize(c *gin.Context) {
	bookingID, ok := RequireIntParam(c, "id", "booking")
	if !ok {
		return
	}
	req, ok := BindJSON[FinalizeRequest](c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)
	online := req.PaymentMethod == "online"
	respondResult(c, h.orch.Finalize(c.Request.Context(), int64(bookingID), int64(userID), online))
}

// CreateInvoice godoc
// @Summary Return the fixed price snapshot for a booking
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/bookings/{id}/invoice [get]
func (h *BookingHandler) CreateInvoice(c *gin.Context) {
	bookingID, ok := RequireIntParam(c, "id", "booking")
	if !ok {
		return
	}
	respondResult(c, h.orch.CreateInvoice(c.Request.Context(), int64(bookingID)))
}

// Cancel godoc
// @Summary Cancel an active booking
// @Tags bookings
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID, ok := RequireIntParam(c, "id", "booking")
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)
	respondResult(c, h.orch.Cancel(c.Request.Context(), int64(bookingID), int64(userID), callerIsMasterOrAdmin(c)))
}

// RescheduleRequest is the request body for moving a booking's start time.
type RescheduleRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required,not_past"`
}

// Reschedule godoc
// @Summary Move a booking to a new start time
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param body body RescheduleRequest true "New start time"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	bookingID, ok := RequireIntParam(c, "id", "booking")
	if !ok {
		return
	}
	req, ok := BindJSON[RescheduleRequest](c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)
	respondResult(c, h.orch.Reschedule(c.Request.Context(), int64(bookingID), int64(userID), callerIsMasterOrAdmin(c), req.StartsAt))
}

// RateRequest is the request body for rating a DONE booking.
type RateRequest struct {
	Rating  int     `json:"rating" binding:"required,rating_1_5"`
	Comment *string `json:"comment,omitempty"`
}

// Rate godoc
// @Summary Rate a completed booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Param body body RateRequest true "Rating"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/bookings/{id}/rate [post]
func (h *BookingHandler) Rate(c *gin.Context) {
	bookingID, ok := RequireIntParam(c, "id", "booking")
	if !ok {
		return
	}
	req, ok := BindJSON[RateRequest](c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserID(c)
	respondResult(c, h.orch.Rate(c.Request.Context(), int64(bookingID), int64(userID), req.Rating, req.Comment))
}

// bookingMode buckets a booking for the "list bookings" filter: the
// upcoming/completed/cancelled/no_show/all modes the caller can request.
func bookingMode(mode string, b *models.Booking) bool {
	switch mode {
	case "", "all":
		return true
	case "upcoming":
		return statemachine.IsActive(b.Status)
	case "completed":
		return b.Status == statemachine.Done
	case "cancelled":
		return b.Status == statemachine.Cancelled
	case "no_show":
		return b.Status == statemachine.NoShow
	default:
		return true
	}
}

// ListMyBookings godoc
// @Summary List the caller's own bookings
// @Tags bookings
// @Produce json
// @Param mode query string false "upcoming|completed|cancelled|no_show|all"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/bookings/mine [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	limit := ParseIntQuery(c, "limit", 20)
	offset := ParseIntQuery(c, "offset", 0)
	mode := c.Query("mode")

	list, err := h.bookings.ListByUser(c.Request.Context(), int64(userID), limit, offset)
	if err != nil {
		RespondInternalError(c, "list bookings", err)
		return
	}

	filtered := make([]models.Booking, 0, len(list))
	for i := range list {
		if bookingMode(mode, &list[i]) {
			filtered = append(filtered, list[i])
		}
	}
	RespondSuccessWithMeta(c, filtered, PaginationMeta(len(filtered), limit, offset))
}

// AvailableDays godoc
// @Summary Return the sorted day-of-month numbers in a month on which the master has a free slot
// @Tags availability
// @Produce json
// @Param master_id query int true "Master ID"
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/availability/days [get]
func (h *BookingHandler) AvailableDays(c *gin.Context) {
	masterID := ParseIntQuery(c, "master_id", 0)
	year := ParseIntQuery(c, "year", 0)
	month := ParseIntQuery(c, "month", 0)
	if masterID == 0 || year == 0 || month == 0 {
		RespondBadRequest(c, "missing parameters", "master_id, year and month are required")
		return
	}

	ctx := c.Request.Context()
	weekly, bookings, err := h.scheduleInputs(ctx, int64(masterID))
	if err != nil {
		RespondInternalError(c, "load schedule", err)
		return
	}

	now := time.Now().UTC()
	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, h.loc)
	exceptions, err := h.masters.ScheduleExceptionsInRange(ctx, int64(masterID),
		firstOfMonth.Format("2006-01-02"), firstOfMonth.AddDate(0, 1, -1).Format("2006-01-02"))
	if err != nil {
		RespondInternalError(c, "load schedule exceptions", err)
		return
	}

	duration := ParseIntQuery(c, "duration_minutes", h.settings.GetInt(ctx, settings.KeySlotDurationMinutes, 60))
	index := h.avail.Scan(slots.AvailabilityParams{
		Year:               year,
		Month:              month,
		DurationMinutes:    duration,
		Weekly:             weekly,
		Exceptions:         exceptions,
		Bookings:           bookings,
		Now:                now,
		SameDayLeadMinutes: h.settings.GetInt(ctx, settings.KeySameDayLeadMinutes, 0),
		MaxDaysAhead:       h.settings.GetInt(ctx, settings.KeyCalendarMaxDaysAhead, 365),
		HoldMinutes:        h.settings.GetInt(ctx, settings.KeyReservationHoldMinutes, 10),
	})
	RespondSuccess(c, availableDayNumbers(index))
}

// availableDayNumbers reduces a month index down to the sorted set of
// day-of-month numbers that carry at least one free slot.
func availableDayNumbers(index slots.MonthIndex) []int {
	days := make([]int, 0, len(index.Days))
	for dateISO, free := range index.Days {
		if !free {
			continue
		}
		if t, err := time.Parse("2006-01-02", dateISO); err == nil {
			days = append(days, t.Day())
		}
	}
	sort.Ints(days)
	return days
}

// AvailableSlots godoc
// @Summary Return the candidate start times for one day
// @Tags availability
// @Produce json
// @Param master_id query int true "Master ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} SuccessResponse
// @Router /api/v1/availability/slots [get]
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	masterID := ParseIntQuery(c, "master_id", 0)
	dateStr := c.Query("date")
	if masterID == 0 || dateStr == "" {
		RespondBadRequest(c, "missing parameters", "master_id and date are required")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, h.loc)
	if err != nil {
		RespondBadRequest(c, "invalid date", "date must be YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	weekly, bookings, err := h.scheduleInputs(ctx, int64(masterID))
	if err != nil {
		RespondInternalError(c, "load schedule", err)
		return
	}
	exceptions, err := h.masters.ScheduleExceptionsInRange(ctx, int64(masterID), dateStr, dateStr)
	if err != nil {
		RespondInternalError(c, "load schedule exceptions", err)
		return
	}

	now := time.Now().UTC()
	holdMinutes := h.settings.GetInt(ctx, settings.KeyReservationHoldMinutes, 10)
	duration := ParseIntQuery(c, "duration_minutes", h.settings.GetInt(ctx, settings.KeySlotDurationMinutes, 60))
	var busy []slots.Busy
	for _, b := range bookings {
		if busyInterval, blocks := slots.BookingToBusy(b, now, holdMinutes); blocks {
			if busyInterval.Start.In(h.loc).Format("2006-01-02") == dateStr {
				busy = append(busy, busyInterval)
			}
		}
	}

	starts := h.calc.AvailableStarts(slots.Params{
		Date:               date,
		DurationMinutes:    duration,
		Weekly:             weekly,
		Exceptions:         exceptions,
		Busy:               busy,
		Now:                now,
		SameDayLeadMinutes: h.settings.GetInt(ctx, settings.KeySameDayLeadMinutes, 0),
	})
	RespondSuccess(c, starts)
}

// scheduleInputs loads a master's weekly schedule and the bookings that
// could possibly block a slot for them, the bulk queries C3/C4 share
// instead of querying per day.
func (h *BookingHandler) scheduleInputs(ctx context.Context, masterID int64) ([]models.WeeklyScheduleWindow, []*models.Booking, error) {
	weekly, err := h.masters.WeeklySchedule(ctx, masterID)
	if err != nil {
		return nil, nil, err
	}
	from := time.Now().UTC().AddDate(0, 0, -1)
	to := time.Now().UTC().AddDate(0, 2, 0)
	bookings, err := h.bookings.ListActiveForMasterInRange(ctx, masterID, from, to)
	if err != nil {
		return nil, nil, err
	}
	return weekly, bookings, nil
}
