package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"alerting-platform/internal/clock"
	"alerting-platform/internal/config"
	"alerting-platform/internal/handler"
	"alerting-platform/internal/middleware"
	"alerting-platform/internal/repository"
	"alerting-platform/internal/scheduler"
	"alerting-platform/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Failed to connect to Redis, analytics caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	clk := clock.System()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, redisClient, cfg, clk, logger)
	handlers := handler.NewHandlers(services)

	sched := scheduler.New(cfg, services.Alert, services.Preference, logger)
	if err := sched.RegisterJobs(); err != nil {
		logger.Fatal("Failed to register scheduler jobs", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, X-User-ID",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	setupRoutes(app, handlers, repos)

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func setupRoutes(app *fiber.App, h *handler.Handlers, repos *repository.Repositories) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", middleware.Identity(repos.User))

	api.Get("/alerts", h.Alert.List)
	api.Get("/alerts/:id", h.Alert.Get)

	api.Get("/user/alerts", h.UserAlert.List)
	api.Get("/user/alerts/snoozed", h.UserAlert.ListSnoozed)
	api.Post("/user/alerts/:id/snooze", h.UserAlert.Snooze)
	api.Post("/user/alerts/:id/read", h.UserAlert.MarkRead)
	api.Post("/user/alerts/:id/unread", h.UserAlert.MarkUnread)

	api.Get("/analytics", h.Analytics.GetStats)

	admin := api.Group("", middleware.RequireAdmin())
	admin.Post("/alerts", h.Alert.Create)
	admin.Put("/alerts/:id", h.Alert.Update)
	admin.Get("/admin/users", h.Directory.ListUsers)
	admin.Get("/admin/teams", h.Directory.ListTeams)
	admin.Post("/admin/trigger-reminders", h.Alert.TriggerReminders)
}
