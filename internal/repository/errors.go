// internal/repository/errors.go
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by repository methods. Orchestrator-level
// error codes (§4.7) are derived from these, not the other way around.
var (
	ErrUserNotFound    = errors.New("repository: user not found")
	ErrMasterNotFound  = errors.New("repository: master not found")
	ErrServiceNotFound = errors.New("repository: service not found")
	ErrBookingNotFound = errors.New("repository: booking not found")

	ErrBookingConflict         = errors.New("repository: overlapping booking")
	ErrInvalidStatusTransition = errors.New("repository: invalid status transition")
	ErrRatingAlreadyExists     = errors.New("repository: booking already rated")
)

// SQLSTATEs this package translates into sentinel errors.
const (
	pqExclusionViolation = "23P01" // exclusion constraint, per migration 0002_overlap_audit.sql
	pqUniqueViolation    = "23505" // unique constraint, e.g. booking_ratings.booking_id
)

// translatePQError maps a raw *pq.Error from a write into a sentinel the
// rest of the system understands, leaving any other error untouched.
func translatePQError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqExclusionViolation:
		return ErrBookingConflict
	case pqUniqueViolation:
		return ErrRatingAlreadyExists
	default:
		return err
	}
}
