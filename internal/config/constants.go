// internal/config/constants.go
package config

import "time"

// ========================================================================
// PAGINATION CONSTANTS
// ========================================================================

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	MinPageLimit     = 1
)

// ========================================================================
// CACHE TTL CONSTANTS
// ========================================================================

const (
	// CacheTTLSettings is the settings-store per-key cache TTL (SPEC_FULL.md
	// §4.1: "~60 seconds, configurable").
	CacheTTLSettings = 60 * time.Second

	CacheTTLShort  = 5 * time.Minute
	CacheTTLMedium = 15 * time.Minute
	CacheTTLLong   = 1 * time.Hour
)

// ========================================================================
// AUTHENTICATION CONSTANTS
// ========================================================================

const (
	MinPasswordLength   = 8
	MaxPasswordLength   = 128
	TokenExpirationTime = 24 * time.Hour
	MaxFailedLoginTries = 5
	AccountLockDuration = 30 * time.Minute
)

// ========================================================================
// RATING CONSTANTS
// ========================================================================

const (
	MinRating = 1
	MaxRating = 5
)

// ========================================================================
// USER / ROLE CONSTANTS
// ========================================================================

const (
	RoleClient = "client"
	RoleMaster = "master"
	RoleAdmin  = "admin"
)

// ========================================================================
// PAYMENT METHOD CONSTANTS
// ========================================================================

const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// DefaultSkipPaths lists routes (health checks, metrics, docs) that the
// default rate-limit, request-size, validation and logging middleware
// configs skip. The auth middleware keeps its own list of public paths.
var DefaultSkipPaths = []string{"/health", "/metrics", "/swagger"}
