package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/config"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/handler"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/middleware"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/repository"
	"github.com/SonuCreativeLabs/DoodLance-sub006/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Connect to database
	repo, err := repository.New(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// Create services
	referralSvc := service.NewReferralService(repo, zapLogger, cfg.Referral.CodePrefix, cfg.Referral.Reserved)
	promoCodeSvc := service.NewPromoCodeService(repo, zapLogger)
	bookingSvc := service.NewBookingService(repo, promoCodeSvc, zapLogger, cfg.Booking.DefaultCommissionRate)
	catalogSvc := service.NewCatalogService(repo)
	userSvc := service.NewUserService(repo, referralSvc, zapLogger)
	adminSvc := service.NewAdminService(repo, zapLogger)

	// Create handlers
	h := handler.New(cfg, userSvc, referralSvc, promoCodeSvc, bookingSvc, catalogSvc, adminSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, promoCodeSvc, referralSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check
	app.Get("/health", h.Health)

	// API routes behind identity-provider auth
	api := app.Group("/api", middleware.SupabaseAuth(cfg))

	// User
	api.Post("/users/sync", h.SyncUser)
	api.Get("/user/me", h.GetMe)

	// Referrals
	api.Get("/referral/stats", h.GetReferralStats)

	// Services
	api.Get("/services", h.ListServices)

	// Bookings
	api.Post("/bookings", h.CreateBooking)
	api.Get("/bookings", h.ListMyBookings)
	api.Get("/bookings/:booking_id", h.GetBooking)
	api.Patch("/bookings/:booking_id/status", h.UpdateBookingStatus)

	// Promo codes
	api.Get("/promo/validate", h.ValidatePromoCode)

	// Admin panel routes
	admin := app.Group("/api/admin", middleware.SupabaseAuth(cfg), middleware.AdminAuth(adminSvc))
	admin.Get("/promo", adminHandler.ListPromoCodes)
	admin.Post("/promo", adminHandler.CreatePromoCode)
	admin.Post("/promo/deactivate", adminHandler.DeactivatePromoCode)
	admin.Post("/referrals/backfill", adminHandler.BackfillReferralCodes)
	admin.Get("/settings", adminHandler.GetSettings)
	admin.Post("/settings/commission-rate", adminHandler.SetCommissionRate)
	admin.Get("/logs", adminHandler.GetLogs)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zapLogger.Info("shutting down server")
		_ = app.Shutdown()
	}()

	zapLogger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
