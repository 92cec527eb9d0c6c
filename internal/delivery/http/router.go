package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/session", handler.GetSession)
		api.Post("/session", handler.Login)
		api.Delete("/session", handler.Logout)

		api.Get("/navigation", handler.GetNavigation)
		api.Post("/navigation", handler.Navigate)
		api.Post("/navigation/back", handler.NavigateBack)

		screens := api.Group("/screens")
		screens.Get("/main", handler.GetMainScreen)
		screens.Get("/statistics", handler.GetStatisticsScreen)
		screens.Post("/statistics/retry", handler.RetryStatistics)
		screens.Get("/camera", handler.GetCameraScreen)
		screens.Get("/camera/frame", handler.GetCameraFrame)
		screens.Post("/camera/flip", handler.FlipCamera)
	}
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
