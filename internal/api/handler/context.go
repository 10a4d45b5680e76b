package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cakedelivery/delivery-api/internal/api/middleware"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
)

// ctxPrincipal returns the principal injected by the Auth middleware, failing
// with 401 when the route was reached without it.
func ctxPrincipal(c echo.Context) (*ports.Principal, error) {
	p := middleware.PrincipalFrom(c)
	if p == nil || p.Email == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}

func setIf[V any](set map[string]any, field string, v *V) {
	if v != nil {
		set[field] = *v
	}
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return t.UTC()
}
