package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cakedelivery/delivery-api/internal/infrastructure/http/handlers"
)

const metricsSubsystem = "http"

// Registry is where HTTP metrics are registered and /metrics reads from.
type Registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

type ServerOptions struct {
	// Checks backs the readiness probe, keyed by dependency name.
	Checks map[string]handlers.Check
	// Registry defaults to the global prometheus registry.
	Registry Registry
	// DisableSwagger hides /swagger/*.
	DisableSwagger bool
}

// NewServer builds the Echo instance with the operational endpoints that need
// no authentication: health probes, /metrics and the Swagger UI.
func NewServer(opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	var reg Registry = prometheus.DefaultRegisterer.(*prometheus.Registry)
	if opts.Registry != nil {
		reg = opts.Registry
	}

	// --- Global middleware ---
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  metricsSubsystem,
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(opts.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	if !opts.DisableSwagger {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}
