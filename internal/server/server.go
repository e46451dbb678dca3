package server

import (
	"context"
	"strings"

	"usecase-catalog-be/internal/bootstrap"
	"usecase-catalog-be/internal/config"
	"usecase-catalog-be/internal/pkg/apperror"
	"usecase-catalog-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	log := container.Logger
	isProd := cfg.IsProduction()

	app := fiber.New(fiber.Config{
		AppName:               "usecase-catalog",
		BodyLimit:             1 * 1024 * 1024, // 1MB
		ErrorHandler:          serverutils.ErrorHandler(log, isProd),
		DisableStartupMessage: isProd,
	})

	// Middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: !isProd}))
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: serverutils.RequestIDKey,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.App.CorsAllowedOrigins,
		AllowHeaders:  strings.Join([]string{fiber.HeaderOrigin, fiber.HeaderContentType, fiber.HeaderAccept, serverutils.HeaderAPIKey}, ", "),
		AllowMethods:  "GET, POST, OPTIONS",
		ExposeHeaders: strings.Join([]string{fiber.HeaderContentLength, fiber.HeaderContentType, fiber.HeaderXRequestID}, ", "),
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.RequestLogger(log))
	app.Use(serverutils.ErrorHandlerMiddleware(log, isProd))

	// Routes
	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{
		"port":        s.cfg.App.Port,
		"environment": s.cfg.App.Environment,
	})
	return s.app.Listen(":" + s.cfg.App.Port)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	c.HealthController.RegisterRoutes(app)
	c.UseCaseController.RegisterRoutes(app)

	app.Use(func(ctx *fiber.Ctx) error {
		return apperror.NotFound("Route not found")
	})
}
