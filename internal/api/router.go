package api

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cakedelivery/delivery-api/internal/api/handler"
	"github.com/cakedelivery/delivery-api/internal/api/middleware"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	infrahttp "github.com/cakedelivery/delivery-api/internal/infrastructure/http"
	"github.com/cakedelivery/delivery-api/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the router needs from main.
type Dependencies struct {
	Logger             zerolog.Logger
	Production         bool
	RateLimitPerMinute int
	Checks             map[string]handlers.Check
	Registry           infrahttp.Registry

	Tokens   ports.TokenVerifier
	Auth     ports.AuthService
	Entities handler.Services
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := infrahttp.NewServer(infrahttp.ServerOptions{
		Checks:         deps.Checks,
		Registry:       deps.Registry,
		DisableSwagger: deps.Production,
	})
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(middleware.SecureHeaders(deps.Production))
	e.Use(middleware.RateLimitByIP(deps.RateLimitPerMinute))

	authMiddleware := middleware.Auth(deps.Tokens)
	apiGroup := e.Group("/api")

	// --- Auth routes ---
	handler.RegisterAuthRoutes(apiGroup, handler.NewAuthHandler(deps.Auth), authMiddleware)

	// --- Entity routes ---
	handler.RegisterEntityRoutes(apiGroup.Group("", authMiddleware), deps.Entities)

	return e
}
