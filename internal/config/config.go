// internal/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration, loaded once at
// boot. Business-tunable values also live as rows in the settings store
// (internal/settings). The env values in Business are loaded here, but
// nothing seeds the settings store from them, and settings lookups fall back
// to literal defaults written at each call site rather than to these values.
type Config struct {
	App      AppConfig      `json:"app"`
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	JWT      JWTConfig      `json:"jwt"`
	Redis    RedisConfig    `json:"redis"`
	API      APIConfig      `json:"api"`
	CORS     CORSConfig     `json:"cors"`
	Logging  LoggingConfig  `json:"logging"`
	Business BusinessConfig `json:"business"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port         string        `json:"port"`
	Host         string        `json:"host"`
	GinMode      string        `json:"gin_mode"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	URL             string        `json:"url"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
}

// JWTConfig represents JWT configuration for the façade layer
type JWTConfig struct {
	Secret     string        `json:"-"`
	Expiration time.Duration `json:"expiration"`
}

// RedisConfig represents Redis configuration
type RedisConfig struct {
	URL      string `json:"url"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

// APIConfig represents API configuration
type APIConfig struct {
	RateLimit int           `json:"rate_limit"`
	Timeout   time.Duration `json:"timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// CORSConfig represents CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers"`
}

// BusinessConfig holds the env-sourced values for the booking-engine core.
// Most fields here are mirrored by a settings-store key (see
// internal/settings). Of these fields only AdminIDs and BusinessTimezone are
// read by other code; the rest neither seed the settings store nor act as its
// fallback default.
type BusinessConfig struct {
	ReservationHoldMinutes        int
	ReservationExpireCheckSeconds int
	ClientCancelLockHours         int
	ClientRescheduleLockHours     int
	SlotDurationMinutes           int
	CalendarMaxDaysAhead          int
	SameDayLeadMinutes            int
	OnlinePaymentDiscountPercent  int
	TelegramPaymentsEnabled       bool
	RemindersCheckSeconds         int
	ReminderLeadMinutes           int
	CleanupCheckSeconds           int
	NoShowGraceHours              int
	DefaultLanguage               string
	DefaultCurrency               string
	BusinessTimezone              string
	AdminIDs                      []string
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: Could not load %s: %v", envFile, err)
		}
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg := &Config{
		App:      loadAppConfig(),
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		JWT:      loadJWTConfig(),
		Redis:    loadRedisConfig(),
		API:      loadAPIConfig(),
		Logging:  loadLoggingConfig(),
		CORS:     loadCORSConfig(),
		Business: loadBusinessConfig(),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	return AppConfig{
		Name:        getEnv("APP_NAME", "salon-booking-engine"),
		Version:     getEnv("APP_VERSION", "1.0.0"),
		Environment: getEnv("APP_ENV", "development"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         getEnv("PORT", "8080"),
		Host:         getEnv("HOST", "localhost"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:             getEnv("DATABASE_URL", ""),
		MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}
}

func loadJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:     getEnv("JWT_SECRET", ""),
		Expiration: getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getIntEnv("REDIS_DB", 0),
	}
}

func loadAPIConfig() APIConfig {
	return APIConfig{
		RateLimit: getIntEnv("API_RATE_LIMIT", 100),
		Timeout:   getDurationEnv("API_TIMEOUT", 30*time.Second),
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}
}

func loadCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		AllowedMethods: getSliceEnv("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}),
		AllowedHeaders: getSliceEnv("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
	}
}

// loadBusinessConfig loads the booking-engine defaults named in SPEC_FULL.md
// §4.1's settings table and §6's environment variable list.
func loadBusinessConfig() BusinessConfig {
	return BusinessConfig{
		ReservationHoldMinutes:        getIntEnv("RESERVATION_HOLD_MINUTES", 10),
		ReservationExpireCheckSeconds: getIntEnv("RESERVATION_EXPIRE_CHECK_SECONDS", 30),
		ClientCancelLockHours:         getIntEnv("CLIENT_CANCEL_LOCK_HOURS", 3),
		ClientRescheduleLockHours:     getIntEnv("CLIENT_RESCHEDULE_LOCK_HOURS", 3),
		SlotDurationMinutes:           getIntEnv("SLOT_DURATION_MINUTES", 60),
		CalendarMaxDaysAhead:          getIntEnv("CALENDAR_MAX_DAYS_AHEAD", 365),
		SameDayLeadMinutes:            getIntEnv("SAME_DAY_LEAD_MINUTES", 0),
		OnlinePaymentDiscountPercent:  getIntEnv("ONLINE_PAYMENT_DISCOUNT_PERCENT", 5),
		TelegramPaymentsEnabled:       getBoolEnv("TELEGRAM_PAYMENTS_ENABLED", true),
		RemindersCheckSeconds:         getIntEnv("REMINDERS_CHECK_SECONDS", 60),
		ReminderLeadMinutes:           getIntEnv("REMINDER_LEAD_MINUTES", 1440),
		CleanupCheckSeconds:           getIntEnv("CLEANUP_CHECK_SECONDS", 900),
		NoShowGraceHours:              getIntEnv("NO_SHOW_GRACE_HOURS", 2),
		DefaultLanguage:               getEnv("DEFAULT_LANGUAGE", "en"),
		DefaultCurrency:               getEnv("DEFAULT_CURRENCY", "USD"),
		BusinessTimezone:              getEnv("BUSINESS_TIMEZONE", "UTC"),
		AdminIDs:                      getSliceEnv("ADMIN_IDS", []string{}),
	}
}

// validateConfig validates required configuration fields
func validateConfig(cfg *Config) error {
	var errs []string

	if cfg.Database.URL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if cfg.JWT.Secret == "" && cfg.App.Environment == "production" {
		errs = append(errs, "JWT_SECRET is required in production")
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errs, ", "))
	}

	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Warning: invalid integer value for %s: %s, using fallback: %d", key, value, fallback)
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
		log.Printf("Warning: invalid int64 value for %s: %s, using fallback: %d", key, value, fallback)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
		log.Printf("Warning: invalid bool value for %s: %s, using fallback: %v", key, value, fallback)
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using fallback: %v", key, value, fallback)
	}
	return fallback
}

func getSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool { return c.App.Environment == "development" }

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool { return c.App.Environment == "production" }

// IsTest returns true if running in test environment
func (c *Config) IsTest() bool { return c.App.Environment == "test" }

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// GetInt64Env is exported for callers outside this package that need the
// same fallback parsing (e.g. cmd/ wiring reading one-off overrides).
func GetInt64Env(key string, fallback int64) int64 { return getInt64Env(key, fallback) }
