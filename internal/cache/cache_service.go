// internal/cache/cache_service.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CacheService provides high-level caching operations on top of RedisClient.
type CacheService struct {
	redis *RedisClient
}

// NewCacheService creates a new cache service.
func NewCacheService(redis *RedisClient) *CacheService {
	return &CacheService{redis: redis}
}

// Cache key prefixes
const (
	SettingPrefix         = "setting:"
	MasterPrefix          = "master:"
	ServicePrefix         = "service:"
	BookingPrefix         = "booking:"
	AvailabilityPrefix    = "availability:"
	NotificationQueueKey  = "notifications:outbox"
	ExpirationLockPrefix  = "lock:expire:"
)

// Default TTLs
const (
	ShortTTL  = 5 * time.Minute
	MediumTTL = 30 * time.Minute
	LongTTL   = 2 * time.Hour
	DayTTL    = 24 * time.Hour
)

// Set stores any value in cache with medium TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.redis.SetJSON(ctx, key, value, MediumTTL)
}

// SetWithTTL stores any value in cache with a custom TTL.
func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return s.redis.SetJSON(ctx, key, value, ttl)
}

// Get retrieves a value from cache.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	return s.redis.GetJSON(ctx, key, dest)
}

// Delete removes a value from cache.
func (s *CacheService) Delete(ctx context.Context, key string) error {
	return s.redis.Delete(ctx, key)
}

// Exists checks if a key exists in cache.
func (s *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	return s.redis.Exists(ctx, key)
}

// CacheAvailability caches a month's availability day-set for (master, year,
// month, duration).
func (s *CacheService) CacheAvailability(ctx context.Context, masterID int64, year, month, duration int, days interface{}) error {
	key := fmt.Sprintf("%s%d:%d:%d:%d", AvailabilityPrefix, masterID, year, month, duration)
	return s.redis.SetJSON(ctx, key, days, ShortTTL)
}

// GetAvailability retrieves a cached month availability day-set.
func (s *CacheService) GetAvailability(ctx context.Context, masterID int64, year, month, duration int, dest interface{}) error {
	key := fmt.Sprintf("%s%d:%d:%d:%d", AvailabilityPrefix, masterID, year, month, duration)
	return s.redis.GetJSON(ctx, key, dest)
}

// InvalidateAvailability drops every cached availability entry for a master,
// called after any booking mutation for that master.
func (s *CacheService) InvalidateAvailability(ctx context.Context, masterID int64) error {
	return s.redis.DeletePattern(ctx, fmt.Sprintf("%s%d:*", AvailabilityPrefix, masterID))
}

// PushNotification enqueues a rendered notification payload for delivery by
// an out-of-core worker (the messaging-platform send itself is out of
// scope, see SPEC_FULL.md §4.10).
func (s *CacheService) PushNotification(ctx context.Context, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	return s.redis.LPush(ctx, NotificationQueueKey, data)
}
