// internal/repository/user_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// UserRepository handles user data access.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository builds a UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID retrieves a user by internal id.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id %d: %w", id, err)
	}
	return &user, nil
}

// FindByExternalID retrieves a user by the messaging-platform identifier.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID int64) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE telegram_id = $1`, externalID)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by external id %d: %w", externalID, err)
	}
	return &user, nil
}

// Upsert creates a user for a never-seen external id, or refreshes its
// profile fields (name/username) for a known one.
func (r *UserRepository) Upsert(ctx context.Context, u *models.User) (*models.User, error) {
	var result models.User
	row := r.db.QueryRowxContext(ctx, `
		INSERT INTO users (telegram_id, name, username, first_name, last_name, locale, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (telegram_id) DO UPDATE SET
			name = EXCLUDED.name, username = EXCLUDED.username,
			first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
			locale = EXCLUDED.locale
		RETURNING *
	`, u.ExternalID, u.Name, u.Username, u.FirstName, u.LastName, u.Locale, u.IsAdmin)
	if err := row.StructScan(&result); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return &result, nil
}
