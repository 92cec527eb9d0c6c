package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cabmobile/monitor/internal/bootstrap"
	"github.com/cabmobile/monitor/internal/config"
	"github.com/cabmobile/monitor/internal/delivery/http"
	"github.com/cabmobile/monitor/internal/logger"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	if envErr != nil {
		log.Info("no .env file found, using system environment")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Dependency Injection
	application, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to start application", zap.Error(err))
	}
	defer application.Close()

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "cabmobile monitor v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	})
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency}) ${respHeader:X-Request-ID}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID",
	}))

	// Routes
	handler := http.NewHandler(
		application.Session,
		application.Navigator,
		application.Home,
		application.Statistics,
		application.Camera,
		application.Health,
		log,
	)
	http.SetupRoutes(app, handler)

	// Graceful shutdown
	go func() {
		log.Info("server starting",
			zap.String("port", cfg.Port),
			zap.Bool("mock_api", cfg.MockMode()),
			zap.String("store", cfg.StoreDriver),
		)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Warn("server forced to shutdown", zap.Error(err))
	}
	stop()
	log.Info("server exited gracefully")
}
