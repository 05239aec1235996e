// Package orchestrator implements C7: the lifecycle operations (hold,
// finalize, cancel, reschedule, rate, create_invoice) that sit between the
// façade and the repository/pricing/slots/notify packages.
package orchestrator

// CoreError is a stable, lowercase, machine-readable error code returned
// alongside ok=false from every public operation, per SPEC_FULL.md §7.
type CoreError string

func (e CoreError) Error() string { return string(e) }

// Stable error codes. Never rename an existing value — façade clients and
// tests key off these strings directly.
const (
	ErrMasterRequired            CoreError = "master_required"
	ErrServiceRequired            CoreError = "service_required"
	ErrSlotUnavailable            CoreError = "slot_unavailable"
	ErrSlotInPast                 CoreError = "slot_in_past"
	ErrConflict                   CoreError = "conflict"
	ErrBookingNotFound            CoreError = "booking_not_found"
	ErrBookingNotActive           CoreError = "booking_not_active"
	ErrCancelTooClose             CoreError = "cancel_too_close"
	ErrRescheduleTooClose         CoreError = "reschedule_too_close"
	ErrAlreadyRated               CoreError = "already_rated"
	ErrRatingOnlyAfterDone        CoreError = "rating_only_after_done"
	ErrRatingInvalidValue         CoreError = "rating_invalid_value"
	ErrInvoiceMissingPrice        CoreError = "invoice_missing_price"
	ErrOnlinePaymentsUnavailable  CoreError = "online_payments_unavailable"
	ErrUnauthorized               CoreError = "unauthorized"
	ErrInternal                   CoreError = "internal_error"
)
