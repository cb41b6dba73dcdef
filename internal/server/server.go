// Package server contains the HTTP handlers for the dashboard and its JSON API.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	_ "pulseboard/docs" // swagger docs
	"pulseboard/internal/analytics"
	"pulseboard/internal/catalog"
	"pulseboard/internal/config"
	"pulseboard/internal/middleware"
	"pulseboard/internal/models"
	"pulseboard/internal/observability"
	"pulseboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Dashboard is the part of service.DashboardService the handlers depend on.
type Dashboard interface {
	Catalog() *catalog.Catalog
	Options() service.DashboardOptions
	Dashboard(ctx context.Context, q service.DashboardQuery) (*analytics.View, error)
	Posts(ctx context.Context, q service.DashboardQuery) ([]models.EnrichedPost, analytics.Filter, error)
	Export(ctx context.Context, q service.DashboardQuery, w io.Writer) (int, error)
	ExportFileName() string
	Panels(subject string) map[string]bool
	FeatureFlags(subject string) (map[string]string, map[string]bool)
}

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	dashboard      Dashboard
	startedAt      time.Time
}

// NewServer creates a server for dashboard. redisClient may be nil, in which
// case export rate limiting fails open.
func NewServer(cfg *config.Config, dashboard Dashboard, redisClient *redis.Client) *Server {
	return &Server{
		config:         cfg,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		dashboard:      dashboard,
		startedAt:      time.Now(),
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	app.Use(middleware.TracingMiddleware())

	// Propagates request, trace and correlation IDs into the user context
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,HEAD,OPTIONS",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Correlation-ID",
		ExposeHeaders: "Content-Disposition, X-Correlation-ID, X-Trace-ID, X-Export-RateLimit-Limit, X-Export-RateLimit-Remaining",
		MaxAge:        86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.DashboardPage)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Pulseboard Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Get("/dashboard", s.GetDashboard)
	api.Get("/posts", s.GetPosts)
	api.Get("/catalog", s.GetCatalog)
	api.Get("/export.csv", middleware.RateLimit(
		s.redis, s.config.ExportRateLimit, s.config.ExportRateWindow(), "export"), s.ExportCSV)
	api.Get("/feature-flags", s.GetFeatureFlags)

	// Anything else under /api gets the JSON error body.
	api.Use(s.NotFound)
}

// NotFound reports an unknown API route.
func (s *Server) NotFound(c *fiber.Ctx) error {
	err := models.NewNotFoundError("route", c.Method()+" "+c.Path())
	return models.RespondWithError(c, statusFor(err), err)
}

// ErrorHandler renders errors that escape the handlers. Fiber errors keep
// their status; anything else is an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return models.RespondWithError(c, fiberErr.Code, &models.AppError{
			Code:    statusCode(fiberErr.Code),
			Message: fiberErr.Message,
		})
	}

	observability.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError,
		models.NewInternalError(err))
}

// App builds the Fiber app with middleware and routes wired.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}
	app := fiber.New(fiber.Config{
		AppName:      "Pulseboard",
		ErrorHandler: ErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// Start starts the server
func (s *Server) Start() error {
	app := s.App()
	observability.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			observability.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			observability.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	observability.Logger.Info("server shutdown complete")
	return nil
}
