// internal/repository/master_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// MasterRepository handles master, schedule, and client-note data access.
type MasterRepository struct {
	db *sqlx.DB
}

// NewMasterRepository builds a MasterRepository.
func NewMasterRepository(db *sqlx.DB) *MasterRepository {
	return &MasterRepository{db: db}
}

// FindByID retrieves a master by internal id.
func (r *MasterRepository) FindByID(ctx context.Context, id int64) (*models.Master, error) {
	var m models.Master
	err := r.db.GetContext(ctx, &m, `SELECT * FROM masters WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrMasterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find master by id %d: %w", id, err)
	}
	return &m, nil
}

// FindByExternalID retrieves a master by the messaging-platform identifier.
func (r *MasterRepository) FindByExternalID(ctx context.Context, externalID int64) (*models.Master, error) {
	var m models.Master
	err := r.db.GetContext(ctx, &m, `SELECT * FROM masters WHERE telegram_id = $1`, externalID)
	if err == sql.ErrNoRows {
		return nil, ErrMasterNotFound
	}
	return &m, err
}

// ListActive lists every active master.
func (r *MasterRepository) ListActive(ctx context.Context) ([]models.Master, error) {
	var masters []models.Master
	err := r.db.SelectContext(ctx, &masters, `SELECT * FROM masters WHERE is_active = TRUE ORDER BY name`)
	return masters, err
}

// ListForService lists active masters who can perform the given service,
// via master_services.
func (r *MasterRepository) ListForService(ctx context.Context, serviceID string) ([]models.Master, error) {
	var masters []models.Master
	err := r.db.SelectContext(ctx, &masters, `
		SELECT m.* FROM masters m
		JOIN master_services ms ON ms.master_id = m.id
		WHERE ms.service_id = $1 AND m.is_active = TRUE
		ORDER BY m.name
	`, serviceID)
	return masters, err
}

// WeeklySchedule loads every WeeklyScheduleWindow row for a master.
func (r *MasterRepository) WeeklySchedule(ctx context.Context, masterID int64) ([]models.WeeklyScheduleWindow, error) {
	var rows []models.WeeklyScheduleWindow
	err := r.db.SelectContext(ctx, &rows, `SELECT * FROM master_schedules WHERE master_id = $1`, masterID)
	return rows, err
}

// ScheduleExceptionsInRange loads exceptions for a master within a local
// date range, inclusive, used by C4's month-wide scan.
func (r *MasterRepository) ScheduleExceptionsInRange(ctx context.Context, masterID int64, fromISO, toISO string) ([]models.ScheduleException, error) {
	var rows []models.ScheduleException
	err := r.db.SelectContext(ctx, &rows, `
		SELECT * FROM master_schedule_exceptions
		WHERE master_id = $1 AND exception_date BETWEEN $2 AND $3
	`, masterID, fromISO, toISO)
	return rows, err
}

// UpsertClientNote creates or replaces a master's note about a client.
func (r *MasterRepository) UpsertClientNote(ctx context.Context, masterID, userID int64, note string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO master_client_notes (master_id, user_id, note)
		VALUES ($1, $2, $3)
		ON CONFLICT (master_id, user_id) DO UPDATE SET note = EXCLUDED.note
	`, masterID, userID, note)
	return err
}

// ClientNote fetches a master's note about a client, if any.
func (r *MasterRepository) ClientNote(ctx context.Context, masterID, userID int64) (*models.MasterClientNote, error) {
	var note models.MasterClientNote
	err := r.db.GetContext(ctx, &note, `
		SELECT * FROM master_client_notes WHERE master_id = $1 AND user_id = $2
	`, masterID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &note, err
}
