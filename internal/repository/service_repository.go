// internal/repository/service_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// ServiceRepository handles service and master-service override data
// access.
type ServiceRepository struct {
	db *sqlx.DB
}

// NewServiceRepository builds a ServiceRepository.
func NewServiceRepository(db *sqlx.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// FindByID retrieves a service by id.
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	err := r.db.GetContext(ctx, &s, `SELECT * FROM services WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find service %q: %w", id, err)
	}
	return &s, nil
}

// List lists every service, optionally filtered by category.
func (r *ServiceRepository) List(ctx context.Context, category string) ([]models.Service, error) {
	var services []models.Service
	if category == "" {
		err := r.db.SelectContext(ctx, &services, `SELECT * FROM services ORDER BY name`)
		return services, err
	}
	err := r.db.SelectContext(ctx, &services, `SELECT * FROM services WHERE category = $1 ORDER BY name`, category)
	return services, err
}

// MasterOverride fetches a master's duration override for a service, if
// one is set.
func (r *ServiceRepository) MasterOverride(ctx context.Context, masterID int64, serviceID string) (*models.MasterService, error) {
	var ms models.MasterService
	err := r.db.GetContext(ctx, &ms, `
		SELECT * FROM master_services WHERE master_id = $1 AND service_id = $2
	`, masterID, serviceID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &ms, err
}

// SetMasterOverride upserts a per-master duration override.
func (r *ServiceRepository) SetMasterOverride(ctx context.Context, masterID int64, serviceID string, durationMinutes *int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO master_services (master_id, service_id, duration_minutes)
		VALUES ($1, $2, $3)
		ON CONFLICT (master_id, service_id) DO UPDATE SET duration_minutes = EXCLUDED.duration_minutes
	`, masterID, serviceID, durationMinutes)
	return err
}
