// Package statemachine defines the static set of legal booking status
// transitions (C13). It holds no state of its own: every other component
// that needs to know whether a transition is legal, or whether a status is
// terminal/active/revenue-bearing, calls into this package rather than
// keeping its own copy of the rules.
package statemachine

// Status is a booking lifecycle status. Values match the lowercase strings
// persisted in the booking_status_enum Postgres enum (grounded on
// original_source/bot/app/domain/models.py's BookingStatus).
type Status string

const (
	Reserved        Status = "reserved"
	PendingPayment  Status = "pending_payment"
	Confirmed       Status = "confirmed"
	Paid            Status = "paid"
	Cancelled       Status = "cancelled"
	Done            Status = "done"
	NoShow          Status = "no_show"
	Expired         Status = "expired"
)

// Initial is the status assigned to every newly created booking.
const Initial = Reserved

// transitions maps each status to the set of statuses it may legally move
// to, per SPEC_FULL.md §4.7.
var transitions = map[Status]map[Status]bool{
	Reserved: {
		PendingPayment: true,
		Confirmed:      true,
		Paid:           true,
		Cancelled:      true,
		Expired:        true,
	},
	PendingPayment: {
		Paid:      true,
		Cancelled: true,
		Expired:   true,
	},
	Confirmed: {
		Paid:      true,
		Done:      true,
		NoShow:    true,
		Cancelled: true,
	},
	Paid: {
		Done:      true,
		NoShow:    true,
		Cancelled: true,
	},
	Cancelled: {},
	Done:      {},
	NoShow:    {},
	Expired:   {},
}

var terminal = map[Status]bool{
	Cancelled: true,
	Done:      true,
	NoShow:    true,
	Expired:   true,
}

var active = map[Status]bool{
	Reserved:       true,
	PendingPayment: true,
	Confirmed:      true,
	Paid:           true,
}

var revenue = map[Status]bool{
	Paid:      true,
	Confirmed: true,
	Done:      true,
}

// IsValidTransition reports whether moving from `from` to `to` is legal.
// A nil/empty `from` (creation) is always legal when `to` is Initial.
func IsValidTransition(from, to Status) bool {
	if from == "" {
		return to == Initial
	}
	if from == to {
		return false
	}
	allowed, ok := transitions[from]
	if !ok {
		return false
	}
	return allowed[to]
}

// IsTerminal reports whether a status never transitions out.
func IsTerminal(s Status) bool { return terminal[s] }

// IsActive reports whether a status occupies a slot (blocks new holds and
// is subject to the exclusion constraint).
func IsActive(s Status) bool { return active[s] }

// IsRevenue reports whether a status counts toward revenue figures.
func IsRevenue(s Status) bool { return revenue[s] }

// TerminalStatuses returns the full terminal set.
func TerminalStatuses() []Status {
	return []Status{Cancelled, Done, NoShow, Expired}
}

// ActiveStatuses returns the full active (slot-occupying) set, in the order
// expected by the exclusion-constraint predicate.
func ActiveStatuses() []Status {
	return []Status{Reserved, PendingPayment, Confirmed, Paid}
}

// RevenueStatuses returns the full revenue-bearing set.
func RevenueStatuses() []Status {
	return []Status{Paid, Confirmed, Done}
}

// Valid reports whether s is one of the eight known statuses.
func Valid(s Status) bool {
	switch s {
	case Reserved, PendingPayment, Confirmed, Paid, Cancelled, Done, NoShow, Expired:
		return true
	default:
		return false
	}
}
