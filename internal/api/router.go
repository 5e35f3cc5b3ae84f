package api

import (
	"carbon-footprint/docs"
	"carbon-footprint/internal/api/handlers"
	"carbon-footprint/pkg/config"
	"carbon-footprint/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	cfg *config.ServerConfig,
	sessionHandler *handlers.SessionHandler,
	calcHandler *handlers.CalculationHandler,
	recHandler *handlers.RecommendationHandler,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
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
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: "GET,POST,PUT,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))
	app.Use(logger.New())

	// the docs import registers the swagger document in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api/v1")
	api.Get("/health", handlers.Health)

	sessions := api.Group("/sessions/:session_id", middleware.SessionID(appLogger))
	sessions.Get("", sessionHandler.GetSession)
	sessions.Get("/status", sessionHandler.GetStatus)
	sessions.Get("/responses", sessionHandler.GetResponses)
	sessions.Put("/responses", sessionHandler.SaveResponses)
	sessions.Post("/calculate", calcHandler.Calculate)
	sessions.Get("/calculation", calcHandler.GetCalculation)
	sessions.Get("/recommendations", recHandler.GetRecommendations)

	return app
}
