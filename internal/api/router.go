package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/catalog-api/docs"
	"github.com/99minutos/catalog-api/internal/api/handler"
	"github.com/99minutos/catalog-api/internal/api/middleware"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/service"
	"github.com/99minutos/catalog-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Store         ports.Store
	Images        ports.ImageStore
	JWTSecret     string
	TokenTTL      time.Duration
	MaxImageBytes int64
	// BodyLimit is an echo size string such as "10M". Empty disables the limit.
	BodyLimit string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// Each router gets its own registry so several instances can coexist in tests.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Dependencies ---
	uploader := service.NewImageUploader(d.Images, d.MaxImageBytes)
	authService := service.NewAuthService(d.Store.Users, d.Store.Lookup, d.JWTSecret, d.TokenTTL, d.Log)
	dataService := service.NewDataService(d.Store.Data, d.Log)
	catalogService := service.NewCatalogService(d.Store.Services, d.Store.Lookup, uploader, d.Log)

	authHandler := handler.NewAuthHandler(authService)
	dataHandler := handler.NewDataHandler(dataService)
	serviceHandler := handler.NewServiceHandler(catalogService)
	uploadHandler := handler.NewUploadHandler(d.Images)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(map[string]handlers.PingFunc{
		"store": d.Store.Ping,
	})
	e.GET("/health", healthHandler.Liveness)           // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: is the store up?

	// --- Auth routes (public) ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.GET("/register", authHandler.ListUsers)
	auth.GET("/register/:id", authHandler.GetUser)
	auth.DELETE("/register/:id", authHandler.DeleteUser)
	auth.POST("/login", authHandler.Login)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Protected API ---
	apiGroup := e.Group("/api", middleware.Auth(d.JWTSecret))

	apiGroup.GET("/data", dataHandler.List)
	apiGroup.POST("/data", dataHandler.Create)
	apiGroup.GET("/data/export", dataHandler.Export)
	apiGroup.GET("/data/:id", dataHandler.Get)
	apiGroup.PUT("/data/:id", dataHandler.Update)
	apiGroup.DELETE("/data/:id", dataHandler.Delete)

	apiGroup.GET("/service", serviceHandler.List)
	apiGroup.POST("/service", serviceHandler.Create)
	apiGroup.GET("/service/:id", serviceHandler.Get)
	apiGroup.PUT("/service/:id", serviceHandler.Update)
	apiGroup.DELETE("/service/:id", serviceHandler.Delete)

	// --- Stored images (public) ---
	e.GET("/uploads/services/:filename", uploadHandler.ServiceImage)

	return e
}
