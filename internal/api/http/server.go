package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the Fiber app with middleware, health and metrics endpoints,
// and the API routes.
func NewApp(serviceName string, deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: RequestIDKey,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": serviceName,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	RegisterRoutes(app, deps)
	return app
}
