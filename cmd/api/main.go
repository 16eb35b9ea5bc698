package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	config "github.com/anjiri1684/college_review/configs"
	"github.com/anjiri1684/college_review/database"
	"github.com/anjiri1684/college_review/handlers"
	"github.com/anjiri1684/college_review/jobs"
	"github.com/anjiri1684/college_review/notifications"
	"github.com/anjiri1684/college_review/routes"
	"github.com/anjiri1684/college_review/services"
	"github.com/anjiri1684/college_review/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("🔥 JWT_SECRET is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	local, err := database.ConnectLocal(cfg.LocalDBPath)
	if err != nil {
		log.Fatalf("🔥 Failed to open local review cache: %v", err)
	}
	remote, err := database.ConnectRemote(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to the review ledger: %v", err)
	}
	if err := database.MigrateLocal(local); err != nil {
		log.Fatalf("🔥 Failed to migrate local cache: %v", err)
	}
	if err := database.MigrateRemote(remote); err != nil {
		log.Fatalf("🔥 Failed to migrate ledger: %v", err)
	}

	store := database.NewReviewStore(local)
	producer := notifications.NewReviewProducer(cfg.KafkaBroker, cfg.KafkaTopic)
	defer producer.Close()

	// Typed nils must not reach the service as non-nil interfaces.
	var events services.EventPublisher
	if producer != nil {
		events = producer
	}
	var notifier services.FailureNotifier
	if mailer := notifications.NewEmailService(cfg); mailer != nil {
		notifier = mailer
	}

	syncService := services.NewSyncService(
		store,
		database.NewLedger(remote),
		database.NewOutbox(local),
		events,
		notifier,
		services.SyncOptions{
			MaxAttempts: cfg.OutboxMaxAttempts,
			BaseBackoff: cfg.OutboxBaseBackoff,
			MaxBackoff:  cfg.OutboxMaxBackoff,
			CollegesTTL: cfg.CollegesCacheTTL,
		},
	)
	identity := services.NewIdentityService(remote, cfg.JWTSecret)

	if cfg.SeedColleges {
		if _, err := syncService.ImportColleges(ctx); err != nil {
			log.Printf("⚠️ College seed failed: %v", err)
		}
	}
	if _, err := syncService.PullAll(ctx); err != nil {
		log.Printf("⚠️ Starting with cached reviews: %v", err)
	}
	go syncService.Run(ctx)

	c := cron.New()
	if _, err := c.AddFunc(cfg.OutboxRetrySchedule, jobs.RetryOutbox(syncService, time.Minute)); err != nil {
		log.Fatalf("🔥 Invalid OUTBOX_RETRY_SCHEDULE %q: %v", cfg.OutboxRetrySchedule, err)
	}
	if _, err := c.AddFunc(cfg.ReviewSyncSchedule, jobs.PullReviews(syncService, time.Minute)); err != nil {
		log.Fatalf("🔥 Invalid REVIEW_SYNC_SCHEDULE %q: %v", cfg.ReviewSyncSchedule, err)
	}
	c.Start()
	defer c.Stop()
	log.Println("✅ Outbox retry and review sync jobs scheduled successfully.")

	reviewFeed, err := store.ObserveAll(ctx)
	if err != nil {
		log.Fatalf("🔥 Failed to observe reviews: %v", err)
	}
	statsFeed, err := services.ObserveStats(ctx, store)
	if err != nil {
		log.Fatalf("🔥 Failed to observe stats: %v", err)
	}
	hub := websocket.NewHub()
	go hub.Run(ctx, reviewFeed, statsFeed)

	app := fiber.New(fiber.Config{
		AppName:       "College Review",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	h := handlers.New(syncService, identity, hub)
	routes.AuthRoutes(app, h, cfg.JWTSecret)
	routes.ReviewRoutes(app, h, cfg.JWTSecret)
	routes.PublicRoutes(app, h, cfg.JWTSecret)
	routes.ProfileRoutes(app, h, cfg.JWTSecret)
	routes.SyncRoutes(app, h, cfg.JWTSecret)
	routes.LiveRoutes(app, h)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("⚠️ Shutdown: %v", err)
		}
	}()

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
