package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/eparcel/eparcel-api/docs"
	"github.com/eparcel/eparcel-api/internal/api/handler"
	"github.com/eparcel/eparcel-api/internal/api/middleware"
	"github.com/eparcel/eparcel-api/internal/core/domain"
	"github.com/eparcel/eparcel-api/internal/core/ports"
)

// Deps carries everything the router needs; backends are wired in main so the
// same route table serves both the Mongo/Redis and the in-memory setups.
type Deps struct {
	AuthService    ports.AuthService
	UserService    ports.UserService
	ParcelService  ports.ParcelService
	ChatService    ports.ChatService
	InsightService ports.InsightService

	JWTSecret    string
	HealthChecks []handler.DependencyCheck
	Logger       zerolog.Logger
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
	e.Use(echoprometheus.NewMiddleware("eparcel"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService)
	parcelHandler := handler.NewParcelHandler(deps.ParcelService)
	chatHandler := handler.NewChatHandler(deps.ChatService)
	dashboardHandler := handler.NewDashboardHandler(deps.InsightService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks...)

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Public routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	v1 := e.Group("/v1", authMW)

	users := v1.Group("/users", middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.PUT("/:id/status", userHandler.SetStatus)

	parcels := v1.Group("/parcels")
	parcels.GET("", parcelHandler.List)
	parcels.POST("", parcelHandler.Create, middleware.RBAC(domain.RoleStaff))
	parcels.PUT("/:id/status", parcelHandler.UpdateStatus)
	parcels.DELETE("/:id", parcelHandler.Delete, middleware.RBAC(domain.RoleStaff))

	messages := v1.Group("/messages")
	messages.GET("", chatHandler.History)
	messages.POST("", chatHandler.Send)

	v1.GET("/dashboard/summary", dashboardHandler.Summary)

	return e
}
