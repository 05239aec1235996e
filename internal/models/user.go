// internal/models/user.go
package models

import (
	"errors"
	"time"
)

// User represents a client account known to the booking engine. ExternalID
// is the messaging-platform identifier (Telegram, etc) the façade
// authenticates against; it is distinct from ID, the internal primary key.
type User struct {
	ID         int64     `json:"id" db:"id"`
	ExternalID int64     `json:"external_id" db:"telegram_id"`
	Name       string    `json:"name" db:"name"`
	Username   *string   `json:"username" db:"username"`
	FirstName  *string   `json:"first_name" db:"first_name"`
	LastName   *string   `json:"last_name" db:"last_name"`
	Locale     *string   `json:"locale" db:"locale"`
	IsAdmin    bool      `json:"is_admin" db:"is_admin"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Validate checks required fields.
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.ExternalID == 0 {
		return errors.New("external_id is required")
	}
	return nil
}
