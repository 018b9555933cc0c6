package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/rpdbs/research-databank/docs"
	"github.com/rpdbs/research-databank/internal/api/handler"
	"github.com/rpdbs/research-databank/internal/api/middleware"
	"github.com/rpdbs/research-databank/internal/core/domain"
	"github.com/rpdbs/research-databank/internal/core/ports"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	Auth     ports.AuthService
	Projects ports.ProjectService
	Audit    ports.AuditService
	Sessions ports.SessionStore

	JWTSecret string
	Probes    map[string]handler.Pinger
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("databank_http"))

	authHandler := handler.NewAuthHandler(deps.Auth)
	projectHandler := handler.NewProjectHandler(deps.Projects)
	reportHandler := handler.NewReportHandler(deps.Projects)
	auditHandler := handler.NewAuditHandler(deps.Audit)
	healthHandler := handler.NewHealthHandler(deps.Probes)

	requireSession := middleware.Auth(deps.JWTSecret, deps.Sessions)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser, domain.RoleViewer)
	editors := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/public", authHandler.Public)
	e.POST("/auth/logout", authHandler.Logout, requireSession)

	// --- Versioned API ---
	v1 := e.Group("/v1", requireSession)
	v1.GET("/me", authHandler.Me)

	v1.GET("/projects", projectHandler.List, anyRole)
	v1.GET("/projects/export", projectHandler.Export, anyRole)
	v1.GET("/projects/:id", projectHandler.Get, anyRole)
	v1.POST("/projects", projectHandler.Create, editors)
	v1.PUT("/projects/:id", projectHandler.Update, editors)
	v1.DELETE("/projects/:id", projectHandler.Delete, editors)

	v1.GET("/reports/summary", reportHandler.Summary, adminOnly)
	v1.GET("/audit", auditHandler.List, adminOnly)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
