package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/config"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/handler"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/middleware"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/pkg/i18n"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/repository"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/scheduler"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/service/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := config.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := repository.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient, err := config.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	minioClient, err := config.NewMinIOClient(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	presigner, err := config.NewMinIOPresigner(cfg)
	if err != nil {
		log.Fatalf("Failed to build MinIO presigner: %v", err)
	}

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		log.WithError(err).Warn("failed to load translations, display names fall back to keys")
	}

	repos := repository.NewRepositories(db)
	services, err := service.NewServices(repos, redisClient, service.Storage{Store: minioClient, Presigner: presigner}, cfg, log)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}
	handlers := handler.NewHandlers(services, log)

	sweeper := scheduler.NewRunner("deadline-sweep", cfg.DeadlineSweepInterval, func(ctx context.Context) error {
		_, err := services.Deadline.Run(ctx)
		return err
	}, log).WithLock(scheduler.NewRedisLocker(redisClient), cfg.DeadlineSweepLockTTL)

	sweepDone := make(chan struct{})
	go func() {
		defer close(sweepDone)
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("scheduler stopped")
		}
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(log),
		BodyLimit:    25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, services.Auth)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.Infof("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	<-sweepDone
}

func setupRoutes(app *fiber.App, h *handler.Handlers, authService auth.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)

	protected := v1.Group("", middleware.AuthRequired(authService))
	protected.Get("/auth/me", h.Auth.Me)

	protected.Get("/content-types", h.ContentType.List)
	protected.Get("/statuses", h.ContentType.Statuses)

	requests := protected.Group("/requests")
	requests.Post("/", middleware.RequireAnyRole(domain.RoleRequester, domain.RoleAdmin), h.Request.Create)
	requests.Get("/", h.Request.List)
	requests.Get("/:id", h.Request.Get)
	requests.Post("/:id/transition", h.Request.Transition)
	requests.Get("/:id/details", h.Request.GetDetails)
	requests.Put("/:id/details", h.Request.UpdateDetails)
	requests.Get("/:id/history", h.Request.History)
	requests.Post("/:id/attachments", h.Attachment.Upload)
	requests.Get("/:id/attachments", h.Attachment.List)
	requests.Get("/:id/attachments/:attachmentId", h.Attachment.Get)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Get("/stream", h.Notification.Stream)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	settings := protected.Group("/settings", middleware.RequireRole(domain.RoleAdmin))
	settings.Get("/", h.Settings.List)
	settings.Put("/:key", h.Settings.Update)
}
