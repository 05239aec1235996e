// internal/models/booking_item.go
package models

// BookingItem is one service line within a booking. Positions are dense
// (0..n-1, no gaps) and PriceCentsSnapshot freezes the service's price at
// booking time so later catalog price changes never retroactively alter an
// existing booking's total (§3 invariant).
type BookingItem struct {
	ID                 int64  `json:"id" db:"id"`
	BookingID          int64  `json:"booking_id" db:"booking_id"`
	ServiceID          string `json:"service_id" db:"service_id"`
	Position           int    `json:"position" db:"position"`
	PriceCentsSnapshot int64  `json:"price_cents_snapshot" db:"price_cents_snapshot"`
	DurationMinSnapshot int   `json:"duration_minutes_snapshot" db:"duration_minutes_snapshot"`
}
