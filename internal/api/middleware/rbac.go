package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

// RequirePermission enforces that the authenticated principal carries every
// bit of required. It must run after Auth.
func RequirePermission(required domain.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := PrincipalFrom(c)
			if principal == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if !principal.Permissions.Has(required) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
