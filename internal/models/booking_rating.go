// internal/models/booking_rating.go
package models

import (
	"errors"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// BookingRating is the at-most-one client rating left on a DONE booking.
type BookingRating struct {
	ID        int64     `json:"id" db:"id"`
	BookingID int64     `json:"booking_id" db:"booking_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidateRatingValue enforces the 1-5 bound from SPEC_FULL.md §9.
func ValidateRatingValue(v int) error {
	if v < MinRating || v > MaxRating {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}
