package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/authcore/auth-service/internal/api/handler"
	"github.com/authcore/auth-service/internal/api/middleware"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/core/service"
	"github.com/authcore/auth-service/internal/core/token"
)

// Dependencies carries everything the router needs. Repo and Issuer are
// required; Denylist, Mongo and Redis are optional (nil disables refresh
// revocation and the matching readiness checks).
type Dependencies struct {
	Repo          ports.UserRepository
	Denylist      ports.TokenDenylist
	Issuer        *token.Issuer
	Roles         *domain.RoleSet
	DefaultRole   string
	RotateRefresh bool
	Logger        zerolog.Logger

	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Services ---
	authService, err := service.NewAuthService(
		deps.Repo, deps.Issuer, deps.Roles, deps.DefaultRole,
		deps.Denylist, deps.RotateRefresh, deps.Logger,
	)
	if err != nil {
		return nil, err
	}
	userService := service.NewUserService(deps.Repo, deps.Logger)
	adminService := service.NewAdminService(deps.Repo, deps.Roles, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(adminService)

	requireAuth := middleware.Auth(deps.Issuer)
	requireSuperAdmin := middleware.RBAC(deps.Roles.SuperAdmin())

	// --- Public routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)

	// --- Protected routes (any authenticated user) ---
	e.GET("/profile", userHandler.Profile, requireAuth)
	e.POST("/change-password", userHandler.ChangePassword, requireAuth)

	// --- Admin routes (super admin only) ---
	admin := e.Group("/admin", requireAuth, requireSuperAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
