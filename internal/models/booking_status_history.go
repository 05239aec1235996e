// internal/models/booking_status_history.go
package models

import (
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"
)

// BookingStatusHistory is an append-only audit row written in the same
// transaction as every status mutation in internal/repository.
type BookingStatusHistory struct {
	ID        int64                `json:"id" db:"id"`
	BookingID int64                `json:"booking_id" db:"booking_id"`
	OldStatus *statemachine.Status `json:"old_status" db:"old_status"`
	NewStatus statemachine.Status  `json:"new_status" db:"new_status"`
	ChangedAt time.Time            `json:"changed_at" db:"changed_at"`
	ChangedBy *int64               `json:"changed_by" db:"changed_by"`
}
