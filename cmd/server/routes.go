// cmd/server/routes.go
package main

import (
	"github.com/nazgool97/salon-bot-sub000/internal/cache"
	appConfig "github.com/nazgool97/salon-bot-sub000/internal/config"
	"github.com/nazgool97/salon-bot-sub000/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, cfg *appConfig.Config, cacheService *cache.CacheService) {
	routes.Setup(router, db, cfg, cacheService)
}
