// internal/config/secrets.go
package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// GenerateJWTSecret generates a cryptographically secure JWT secret.
func GenerateJWTSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

// ValidateJWTSecret validates JWT secret meets security requirements.
func ValidateJWTSecret(secret string, environment string) error {
	if secret == "" {
		return fmt.Errorf("JWT secret cannot be empty")
	}

	minLength := 32
	if environment == "production" {
		minLength = 43
	}
	if len(secret) < minLength {
		return fmt.Errorf("JWT secret must be at least %d characters (got %d)", minLength, len(secret))
	}

	insecure := []string{"your-secret-key", "secret", "change-me", "test-secret", "development-secret"}
	lower := strings.ToLower(secret)
	for _, bad := range insecure {
		if lower == bad || strings.Contains(lower, bad) {
			return fmt.Errorf("JWT secret must not contain common/default values")
		}
	}

	return nil
}

// EnsureJWTSecret gets the JWT secret from env, generating a temporary one
// in development when absent.
func EnsureJWTSecret(environment string) (string, error) {
	secret := os.Getenv("JWT_SECRET")

	if environment == "production" || environment == "staging" {
		if secret == "" {
			return "", fmt.Errorf("JWT_SECRET is required in %s", environment)
		}
		if err := ValidateJWTSecret(secret, "production"); err != nil {
			return "", fmt.Errorf("JWT secret validation failed: %w", err)
		}
		return secret, nil
	}

	if secret == "" {
		generated, err := GenerateJWTSecret()
		if err != nil {
			return "", fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		fmt.Println("WARNING: JWT_SECRET not set, generated a temporary development secret")
		return generated, nil
	}

	return secret, nil
}

// ValidateDatabaseURL performs environment-aware sanity checks on the DSN.
func ValidateDatabaseURL(url string, environment string) error {
	if url == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if environment == "production" {
		if !strings.Contains(url, "sslmode=require") && !strings.Contains(url, "sslmode=verify-") {
			return fmt.Errorf("database must use SSL in production (add sslmode=require)")
		}
		if strings.Contains(url, "localhost") || strings.Contains(url, "127.0.0.1") {
			return fmt.Errorf("database URL should not use localhost in production")
		}
	}
	return nil
}

// ValidateProductionConfig performs comprehensive production validation.
func ValidateProductionConfig(cfg *Config) error {
	var errs []string

	if err := ValidateJWTSecret(cfg.JWT.Secret, cfg.App.Environment); err != nil {
		errs = append(errs, fmt.Sprintf("JWT: %v", err))
	}
	if err := ValidateDatabaseURL(cfg.Database.URL, cfg.App.Environment); err != nil {
		errs = append(errs, fmt.Sprintf("Database: %v", err))
	}
	if cfg.Server.GinMode != "release" {
		errs = append(errs, "Server: GIN_MODE must be 'release' in production")
	}
	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "*" {
			errs = append(errs, "CORS: wildcard origin (*) is not allowed in production")
			break
		}
	}
	if cfg.API.RateLimit > 10000 {
		errs = append(errs, fmt.Sprintf("API: rate limit is too high (%d req/min)", cfg.API.RateLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("production validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
