package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/samudra-paket/tracking-service/internal/api/handler"
	"github.com/samudra-paket/tracking-service/internal/api/middleware"
	"github.com/samudra-paket/tracking-service/internal/core/domain"
	"github.com/samudra-paket/tracking-service/internal/core/ports"
	"github.com/samudra-paket/tracking-service/internal/infrastructure/http/handlers"
)

// Deps carries the services and infrastructure handles the router wires into
// HTTP handlers. Construction order lives in cmd/api/main.go.
type Deps struct {
	ShipmentService ports.ShipmentService
	TrackingService ports.TrackingService
	Dispatcher      handler.EventDispatcher

	Mongo *mongo.Database
	Redis *redis.Client

	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracking"))

	// --- Handlers ---
	shipmentHandler := handler.NewShipmentHandler(deps.ShipmentService)
	timelineHandler := handler.NewTimelineHandler(deps.TrackingService)
	eventHandler := handler.NewEventHandler(deps.Dispatcher)

	// --- Authenticated API routes ---
	authMiddleware := middleware.Auth(deps.JWTSecret)

	v1 := e.Group("/v1", authMiddleware)

	shipments := v1.Group("/shipments", middleware.RBAC(domain.RoleAdmin, domain.RoleClient))
	shipments.POST("", shipmentHandler.Create)
	shipments.GET("", shipmentHandler.List)
	shipments.GET("/:tracking_number", shipmentHandler.Get)
	shipments.GET("/:tracking_number/timeline", timelineHandler.Get)

	// Event ingestion is reserved for operational identities.
	events := v1.Group("/events", middleware.RBAC(domain.RoleAdmin))
	events.POST("", eventHandler.Receive)
	events.POST("/batch", eventHandler.ReceiveBatch)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics scrape endpoint ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
