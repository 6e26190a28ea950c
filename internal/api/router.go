package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petconnect/activities-api/internal/api/handler"
	"github.com/petconnect/activities-api/internal/api/middleware"
	"github.com/petconnect/activities-api/internal/core/domain"
	"github.com/petconnect/activities-api/internal/core/ports"
)

// Deps carries the collaborators the router wires into handlers. All are
// constructed once at startup and shared across requests.
type Deps struct {
	Auth       ports.AuthService
	Activities ports.ActivityService
	Mongo      *mongo.Database
	Redis      *redis.Client
	JWTSecret  string
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("activities"))

	authHandler := handler.NewAuthHandler(d.Auth)
	activityHandler := handler.NewActivityHandler(d.Activities)
	requireAuth := middleware.Auth(d.JWTSecret)
	requireAdmin := middleware.RBAC(domain.RoleAdmin)

	// --- Application routes ---
	g := e.Group("/api")
	g.POST("/registro", authHandler.Register)
	g.POST("/login", authHandler.Login)
	g.POST("/actividades/crear", activityHandler.Create, requireAuth, requireAdmin)
	g.POST("/actividades/inscribir", activityHandler.Enroll)
	g.GET("/actividades", activityHandler.List)
	g.GET("/mis-actividades/:usuarioId", activityHandler.ListForAccount)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
