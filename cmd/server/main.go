// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/nazgool97/salon-bot-sub000/config"
	"github.com/nazgool97/salon-bot-sub000/internal/cache"
	appConfig "github.com/nazgool97/salon-bot-sub000/internal/config"
	"github.com/nazgool97/salon-bot-sub000/internal/middleware"
	"github.com/nazgool97/salon-bot-sub000/internal/notify"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"
	"github.com/nazgool97/salon-bot-sub000/internal/validation"
	"github.com/nazgool97/salon-bot-sub000/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// defaultMaxRequestBodyBytes caps request bodies the façade accepts; the
// booking API carries no file uploads so this never needs to be large.
const defaultMaxRequestBodyBytes = 1 << 20 // 1 MiB

func main() {
	printBanner()

	cfg, err := appConfig.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logConfigSummary(cfg)
	validation.Initialize()

	dbManager, err := config.NewDatabaseManager(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	if err := dbManager.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	log.Println("database connection established")

	dbInfo, err := dbManager.GetDatabaseInfo()
	if err != nil {
		log.Printf("warning: could not get database info: %v", err)
	} else {
		log.Printf("database: %s (%d tables)", dbInfo.DatabaseName, dbInfo.TableCount)
	}

	var redisClient *cache.RedisClient

	redisClient, err = cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("warning: redis connection failed: %v, continuing without cache", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("redis connection established")
	}
	cacheService := cache.NewCacheService(redisClient)

	router := setupRouter(cfg, dbManager)
	setupRequestLimits(router)
	setupMiddlewareWithRedis(router, cfg, redisClient)

	SetupRoutes(router, dbManager.DB, cfg, cacheService)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	startWorkers(workerCtx, dbManager.DB, cacheService, cfg)

	serverManager := config.NewServerManager(cfg.Server, router)

	go func() {
		log.Printf("server starting on %s", serverManager.GetFullAddress())
		log.Printf("environment: %s", cfg.App.Environment)
		log.Printf("gin mode: %s", cfg.Server.GinMode)
		if redisClient != nil {
			log.Printf("redis: enabled (caching & rate limiting)")
		} else {
			log.Printf("redis: disabled (in-memory rate limiting)")
		}
		if err := serverManager.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := serverManager.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown:", err)
	}

	log.Println("server exited gracefully")
}

// startWorkers boots the three background loops (C8 expiration, C9
// cleanup, C10 reminders) alongside the HTTP server, sharing the same
// database handle and settings store the façade uses.
func startWorkers(ctx context.Context, db *sqlx.DB, cacheService *cache.CacheService, cfg *appConfig.Config) {
	bookings := repository.NewBookingRepository(db)
	store := settings.New(db)
	notifier := notify.New(cacheService, bookings)

	adminIDs := make([]int64, 0, len(cfg.Business.AdminIDs))
	for _, s := range cfg.Business.AdminIDs {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			adminIDs = append(adminIDs, id)
		}
	}

	expiration := workers.NewExpirationLoop(bookings, store)
	cleanup := workers.NewCleanupLoop(bookings, store, notifier, adminIDs)
	reminders := workers.NewReminderLoop(bookings, store, notifier)

	expiration.Start(ctx)
	cleanup.Start(ctx)
	reminders.Start(ctx)

	log.Println("background workers started: expiration, cleanup, reminders")
}

func printBanner() {
	banner := `
╔════════════════════════════════════════════════════════╗
║                                                        ║
║              salon booking engine · api                ║
║                  with redis cache                       ║
║                                                        ║
╚════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}

// setupRouter creates a bare router (no middleware) with the health check route
func setupRouter(cfg *appConfig.Config, dbManager *config.DatabaseManager) *gin.Engine {
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.GET("/health", config.CreateHealthCheckHandler(dbManager))
	return router
}

// setupRequestLimits configures request body size limits
func setupRequestLimits(router *gin.Engine) {
	router.MaxMultipartMemory = defaultMaxRequestBodyBytes
	router.Use(middleware.DefaultRequestBodyLimit(defaultMaxRequestBodyBytes))
	log.Printf("request body limit: %.2f MB", float64(defaultMaxRequestBodyBytes)/(1024*1024))
}

// setupMiddlewareWithRedis configures all middleware with optional Redis support
func setupMiddlewareWithRedis(router *gin.Engine, cfg *appConfig.Config, redisClient *cache.RedisClient) {
	middleware.SetupAll(router, middleware.SetupConfig{
		Config:      cfg,
		RedisClient: redisClient,
	})
}

// logConfigSummary logs a summary of the configuration
func logConfigSummary(cfg *appConfig.Config) {
	log.Println("configuration summary:")
	log.Printf("   app: %s v%s", cfg.App.Name, cfg.App.Version)
	log.Printf("   environment: %s", cfg.App.Environment)
	log.Printf("   server: %s (mode: %s)", cfg.GetServerAddress(), cfg.Server.GinMode)
	log.Printf("   redis: %s", cfg.Redis.URL)
	log.Printf("   jwt expiration: %v", cfg.JWT.Expiration)
	log.Printf("   rate limit: %d req/min", cfg.API.RateLimit)
	log.Printf("   cors origins: %v", cfg.CORS.AllowedOrigins)
	log.Printf("   business timezone: %s", cfg.Business.BusinessTimezone)

	if cfg.IsDevelopment() {
		log.Println("running in DEVELOPMENT mode")
	} else if cfg.IsProduction() {
		log.Println("running in PRODUCTION mode, security enhanced")
	}
}
