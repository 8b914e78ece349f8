package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/interview-ace/ace/pkg/errx"
	"github.com/interview-ace/ace/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Environment and Logger
	_ = godotenv.Load()
	logx.SetLevel(logx.LevelInfo)
	logx.Info("Starting Interview Ace API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Background Parse Worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	container.ParseWorker.Start(workerCtx)

	// 4. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Interview Ace API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             25 * 1024 * 1024,
	})

	// 5. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 6. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":           "ok",
			"db":               container.DB.Ping() == nil,
			"redis":            container.Redis.Ping(c.Context()).Err() == nil,
			"audio_conversion": container.VoiceService.ConversionAvailable(),
		})
	})

	// 7. Register Routes
	container.ResumeHandlers.RegisterRoutes(app, container.Auth)
	container.QuestionHandlers.RegisterRoutes(app, container.Auth)
	container.FeedbackHandlers.RegisterRoutes(app, container.Auth)
	container.KnowledgeHandlers.RegisterRoutes(app, container.Auth)
	container.VoiceHandlers.RegisterRoutes(app, container.Auth)

	// 8. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	stopWorker()
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
