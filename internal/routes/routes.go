// internal/routes/routes.go
package routes

import (
	"strconv"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/authz"
	"github.com/nazgool97/salon-bot-sub000/internal/cache"
	appConfig "github.com/nazgool97/salon-bot-sub000/internal/config"
	"github.com/nazgool97/salon-bot-sub000/internal/handlers"
	"github.com/nazgool97/salon-bot-sub000/internal/middleware"
	"github.com/nazgool97/salon-bot-sub000/internal/notify"
	"github.com/nazgool97/salon-bot-sub000/internal/orchestrator"
	"github.com/nazgool97/salon-bot-sub000/internal/repository"
	"github.com/nazgool97/salon-bot-sub000/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup configures all application routes, wiring the repositories and C7
// through C12 core packages behind the gin handlers declared in
// internal/handlers.
func Setup(router *gin.Engine, db *sqlx.DB, cfg *appConfig.Config, cacheService *cache.CacheService) {
	jwtSecret := cfg.JWT.Secret
	jwtExpiration := cfg.JWT.Expiration

	loc, err := time.LoadLocation(cfg.Business.BusinessTimezone)
	if err != nil {
		loc = time.UTC
	}

	// ========================================================================
	// INITIALIZE REPOSITORIES
	// ========================================================================
	userRepo := repository.NewUserRepository(db)
	masterRepo := repository.NewMasterRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// ========================================================================
	// INITIALIZE CORE COMPONENTS
	// ========================================================================
	settingsStore := settings.New(db)
	notifier := notify.New(cacheService, bookingRepo)
	adminIDs := parseAdminIDs(cfg.Business.AdminIDs)
	authorizer := authz.New(db, adminIDs)
	orch := orchestrator.New(bookingRepo, masterRepo, serviceRepo, settingsStore, notifier, loc)

	// ========================================================================
	// INITIALIZE HANDLERS
	// ========================================================================
	authHandler := handlers.NewAuthHandler(userRepo, authorizer, jwtSecret, jwtExpiration)
	serviceHandler := handlers.NewServiceHandler(serviceRepo, masterRepo, settingsStore)
	bookingHandler := handlers.NewBookingHandler(orch, bookingRepo, masterRepo, settingsStore, loc)

	// ========================================================================
	// API DOCS (swaggo, driven by the @Summary/@Router godoc annotations on
	// the handlers)
	// ========================================================================
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ========================================================================
	// API v1 ROUTES
	// ========================================================================
	v1 := router.Group("/api/v1")
	{
		// ────────────────────────────────────────────────────────────────
		// AUTHENTICATION ROUTES
		// ────────────────────────────────────────────────────────────────
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig()))
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// ────────────────────────────────────────────────────────────────
		// CATALOG ROUTES (services, masters, pricing)
		// ────────────────────────────────────────────────────────────────
		v1.GET("/services", serviceHandler.ListServices)
		v1.GET("/masters", serviceHandler.ListMastersForServices)
		v1.POST("/quote", serviceHandler.Quote)

		// ────────────────────────────────────────────────────────────────
		// AVAILABILITY ROUTES
		// ────────────────────────────────────────────────────────────────
		availability := v1.Group("/availability")
		{
			availability.GET("/days", bookingHandler.AvailableDays)
			availability.GET("/slots", bookingHandler.AvailableSlots)
		}

		// ────────────────────────────────────────────────────────────────
		// BOOKING ROUTES (all require auth)
		// ────────────────────────────────────────────────────────────────
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.RequireAuth(jwtSecret))
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.POST("/hold", bookingHandler.Hold)
			bookings.GET("/mine", bookingHandler.ListMyBookings)
			bookings.POST("/:id/finalize", bookingHandler.Finalize)
			bookings.GET("/:id/invoice", bookingHandler.CreateInvoice)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
			bookings.POST("/:id/reschedule", bookingHandler.Reschedule)
			bookings.POST("/:id/rate", bookingHandler.Rate)
		}
	}
}

// parseAdminIDs converts the boot-env ADMIN_IDS string slice into int64
// external ids, skipping anything that doesn't parse rather than failing
// startup over an operator typo.
func parseAdminIDs(raw []string) []int64 {
	var ids []int64
	for _, s := range raw {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
