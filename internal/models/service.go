// internal/models/service.go
package models

import "time"

// Service is a catalog entry: an opaque string id, a name, and optional
// price/duration defaults. Per-master overrides live in MasterService.
type Service struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Category    *string   `json:"category" db:"category"`
	Description *string   `json:"description" db:"description"`
	PriceCents  *int64    `json:"price_cents" db:"price_cents"`
	DurationMin *int      `json:"duration_minutes" db:"duration_minutes"`
	CreatedAt   *time.Time `json:"created_at" db:"created_at"`
}

// MasterService is the junction between a Master and a Service, carrying an
// optional per-pair duration override (falls back to Service.DurationMin,
// then to the process-wide slot_duration_minutes setting).
type MasterService struct {
	MasterID    int64  `json:"master_id" db:"master_id"`
	ServiceID   string `json:"service_id" db:"service_id"`
	DurationMin *int   `json:"duration_minutes" db:"duration_minutes"`
}

// EffectiveDurationMinutes resolves the duration per SPEC_FULL.md §4.5:
// MasterService override (if > 0) -> Service.DurationMin -> fallback.
func EffectiveDurationMinutes(svc *Service, override *MasterService, fallbackMinutes int) int {
	if override != nil && override.DurationMin != nil && *override.DurationMin > 0 {
		return *override.DurationMin
	}
	if svc != nil && svc.DurationMin != nil && *svc.DurationMin > 0 {
		return *svc.DurationMin
	}
	return fallbackMinutes
}

// EffectivePriceCents resolves the price in minor units, treating a missing
// price as zero per SPEC_FULL.md §4.5.
func EffectivePriceCents(svc *Service) int64 {
	if svc == nil || svc.PriceCents == nil {
		return 0
	}
	return *svc.PriceCents
}
