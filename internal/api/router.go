package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/staffdir/directory-api/docs"
	"github.com/staffdir/directory-api/internal/api/handler"
	"github.com/staffdir/directory-api/internal/api/middleware"
	"github.com/staffdir/directory-api/internal/core/ports"
	"github.com/staffdir/directory-api/internal/core/service"
	"github.com/staffdir/directory-api/internal/infrastructure/config"
	mongostore "github.com/staffdir/directory-api/internal/infrastructure/db/mongo"
	redisstore "github.com/staffdir/directory-api/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(
	cfg *config.Config,
	db *mongo.Database,
	rdb *redis.Client,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Repositories ---
	companyRepo := mongostore.NewCompanyRepository(db)
	userRepo := mongostore.NewUserRepository(db)
	throttle := redisstore.NewLoginThrottle(rdb)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	resolver := service.NewPrincipalResolver(tokenService, userRepo)
	authService := service.NewAuthService(userRepo, tokenService, throttle, audit, log)
	companyService := service.NewCompanyService(companyRepo, audit, log)
	userService := service.NewUserService(userRepo, companyRepo, audit, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	companyHandler := handler.NewCompanyHandler(companyService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	requireAuth := middleware.RequireAuth(resolver)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Companies: listing and detail are public, the rest needs a principal ---
	e.GET("/companies", companyHandler.List)
	e.GET("/companies/:id", companyHandler.Get)
	e.GET("/companies/:id/users", companyHandler.Users, requireAuth)
	e.POST("/companies", companyHandler.Create, requireAuth)
	e.PUT("/companies/:id", companyHandler.Update, requireAuth)
	e.DELETE("/companies/:id", companyHandler.Delete, requireAuth)

	// --- Users: everything requires a principal ---
	e.GET("/user", userHandler.Self, requireAuth)
	e.GET("/users", userHandler.List, requireAuth)
	e.GET("/users/:id", userHandler.Get, requireAuth)
	e.POST("/users", userHandler.Create, requireAuth)
	e.PUT("/users/:id", userHandler.Update, requireAuth)
	e.PUT("/users/:id/set-company/:companyId", userHandler.SetCompany, requireAuth)
	e.PUT("/users/:id/unset-company", userHandler.UnsetCompany, requireAuth)
	e.DELETE("/users/:id", userHandler.Delete, requireAuth)

	return e
}
