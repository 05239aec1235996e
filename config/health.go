// config/health.go
package config

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/cache"

	"github.com/gin-gonic/gin"
)

// CreateHealthCheckHandlerWithRedis creates a health check handler with Redis support
func CreateHealthCheckHandlerWithRedis(dbManager *DatabaseManager, redisClient *cache.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "healthy",
			"service":   "salon-booking-engine",
			"timestamp": time.Now().Format(time.RFC3339),
		}

		// Check database
		if err := dbManager.Ping(); err != nil {
			health["status"] = "unhealthy"
			health["database"] = map[string]interface{}{
				"status": "disconnected",
				"error":  err.Error(),
			}
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		health["database"] = map[string]interface{}{
			"status": "connected",
		}

		// Check Redis if available
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			_, err := redisClient.Get(ctx, "health-check")
			if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
				health["redis"] = map[string]interface{}{
					"status": "disconnected",
					"error":  err.Error(),
				}
			} else {
				health["redis"] = map[string]interface{}{
					"status": "connected",
				}
			}
		} else {
			health["redis"] = map[string]interface{}{
				"status": "disabled",
			}
		}

		c.JSON(http.StatusOK, health)
	}
}
