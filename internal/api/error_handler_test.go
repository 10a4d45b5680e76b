package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
		wantBody string
	}{
		{domain.ErrNotFound, http.StatusNotFound, `{"error":"not found"}`},
		{fmt.Errorf("%w: page size must be at least 1", domain.ErrValidation), http.StatusBadRequest, `{"error":"page size must be at least 1"}`},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, `{"error":"invalid credentials"}`},
		{domain.ErrForbidden, http.StatusForbidden, `{"error":"forbidden"}`},
		{domain.ErrUserExists, http.StatusConflict, `{"error":"user already exists"}`},
		{fmt.Errorf("insert cake: %w", domain.ErrDuplicate), http.StatusConflict, `{"error":"duplicate value"}`},
		{domain.ErrTooManyAttempts, http.StatusTooManyRequests, `{"error":"too many failed login attempts"}`},
		{echo.NewHTTPError(http.StatusUnprocessableEntity, "price must be greater than 0"), http.StatusUnprocessableEntity, `{"error":"price must be greater than 0"}`},
		{errors.New("mongo: connection reset"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/cakes", nil)
			rec := httptest.NewRecorder()
			handler(tt.err, e.NewContext(req, rec))

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			if got := rec.Body.String(); got != tt.wantBody+"\n" {
				t.Fatalf("expected body %s, got %s", tt.wantBody, got)
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNotFound, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response must be left untouched, got %d %q", rec.Code, rec.Body.String())
	}
}
