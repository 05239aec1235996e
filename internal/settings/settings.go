// Package settings implements C1: a typed, cached key/value store backing
// every cadence/threshold the booking engine consults at runtime. Callers
// ask for a key with a default; a ~60s in-process cache (grounded on the
// teacher's cache_service.go pattern) shields the database from the
// per-iteration reads every worker performs.
package settings

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// Keys used throughout the system, per SPEC_FULL.md §4.1.
const (
	KeyReservationHoldMinutes        = "reservation_hold_minutes"
	KeyReservationExpireCheckSeconds = "reservation_expire_check_seconds"
	KeyClientCancelLockHours         = "client_cancel_lock_hours"
	KeyClientRescheduleLockHours     = "client_reschedule_lock_hours"
	KeySlotDurationMinutes           = "slot_duration_minutes"
	KeyCalendarMaxDaysAhead          = "calendar_max_days_ahead"
	KeySameDayLeadMinutes            = "same_day_lead_minutes"
	KeyOnlinePaymentDiscountPercent  = "online_payment_discount_percent"
	KeyTelegramPaymentsEnabled       = "telegram_payments_enabled"
	KeyRemindersCheckSeconds         = "reminders_check_seconds"
	KeyReminderLeadMinutes           = "reminder_lead_minutes"
	KeyCleanupCheckSeconds           = "cleanup_check_seconds"
	KeyNoShowGraceHours              = "no_show_grace_hours"
)

const cacheTTL = 60 * time.Second

type cacheEntry struct {
	setting   models.Setting
	expiresAt time.Time
}

// Store reads/writes Setting rows with a short-lived in-process cache.
type Store struct {
	db    *sqlx.DB
	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// New builds a Store over db.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, cache: make(map[string]cacheEntry)}
}

func (s *Store) lookup(ctx context.Context, key string) (models.Setting, bool, error) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.setting, true, nil
	}
	if s.db == nil {
		return models.Setting{}, false, nil
	}

	var row models.Setting
	err := s.db.GetContext(ctx, &row, `SELECT key, kind, value, value_json, updated_at FROM settings WHERE key = $1`, key)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Setting{}, false, nil
		}
		return models.Setting{}, false, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{setting: row, expiresAt: time.Now().Add(cacheTTL)}
	s.mu.Unlock()
	return row, true, nil
}

// GetString returns the raw string value for key, or def if unset.
func (s *Store) GetString(ctx context.Context, key, def string) string {
	row, ok, err := s.lookup(ctx, key)
	if err != nil || !ok {
		return def
	}
	return row.Value
}

// GetInt returns key parsed as int, or def if unset/unparsable.
func (s *Store) GetInt(ctx context.Context, key string, def int) int {
	row, ok, err := s.lookup(ctx, key)
	if err != nil || !ok {
		return def
	}
	v, err := strconv.Atoi(row.Value)
	if err != nil {
		return def
	}
	return v
}

// GetFloat returns key parsed as float64, or def if unset/unparsable.
func (s *Store) GetFloat(ctx context.Context, key string, def float64) float64 {
	row, ok, err := s.lookup(ctx, key)
	if err != nil || !ok {
		return def
	}
	v, err := strconv.ParseFloat(row.Value, 64)
	if err != nil {
		return def
	}
	return v
}

// GetBool returns key parsed as bool, or def if unset/unparsable.
func (s *Store) GetBool(ctx context.Context, key string, def bool) bool {
	row, ok, err := s.lookup(ctx, key)
	if err != nil || !ok {
		return def
	}
	v, err := strconv.ParseBool(row.Value)
	if err != nil {
		return def
	}
	return v
}

// Set upserts a setting's value and invalidates the in-process cache entry.
func (s *Store) Set(ctx context.Context, key string, kind models.SettingKind, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, kind, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET kind = EXCLUDED.kind, value = EXCLUDED.value, updated_at = now()
	`, key, kind, value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
	return nil
}

// GetDuration is a convenience wrapper returning key (an int count of the
// given unit) as a time.Duration.
func (s *Store) GetDuration(ctx context.Context, key string, def int, unit time.Duration) time.Duration {
	return time.Duration(s.GetInt(ctx, key, def)) * unit
}
