package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fleetworks/account-service/internal/api/handler"
	"github.com/fleetworks/account-service/internal/api/middleware"
	"github.com/fleetworks/account-service/internal/core/domain"
	"github.com/fleetworks/account-service/internal/core/ports"
	"github.com/fleetworks/account-service/internal/core/service"
)

// RouterDeps bundles everything the router needs wired in.
type RouterDeps struct {
	Auth          ports.AuthService
	Admin         ports.AccountAdminService
	Issuer        *service.TokenIssuer
	Mongo         *mongo.Database
	Redis         *redis.Client
	Logger        zerolog.Logger
	SecureCookies bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Issuer, deps.SecureCookies)
	adminHandler := handler.NewAdminHandler(deps.Admin)
	authMiddleware := middleware.Auth(deps.Issuer)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/request-otp", authHandler.RequestOTP)
	auth.POST("/verify-email", authHandler.VerifyEmail)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.POST("/change-password", authHandler.ChangePassword, authMiddleware)
	auth.GET("/me", authHandler.Me, authMiddleware)
	// Logout is intentionally outside the auth middleware: the cookie must be
	// cleared even when the presented token no longer validates.
	auth.POST("/logout", authHandler.Logout)

	// --- Admin routes ---
	admin := e.Group("/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/accounts/:id", adminHandler.Get)
	admin.PATCH("/accounts/:id", adminHandler.Update)
	admin.DELETE("/accounts/:id", adminHandler.Delete)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  - is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness - are dependencies up?

	return e
}
