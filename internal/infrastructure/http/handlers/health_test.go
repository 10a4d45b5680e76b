package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLiveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := NewHealthHandler().Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		checks   map[string]Check
		wantCode int
		wantDeps map[string]string
	}{
		{
			name:     "all healthy",
			checks:   map[string]Check{"mongodb": ok, "redis": ok},
			wantCode: http.StatusOK,
			wantDeps: map[string]string{"mongodb": "ok", "redis": "ok"},
		},
		{
			name:     "redis down",
			checks:   map[string]Check{"mongodb": ok, "redis": down},
			wantCode: http.StatusServiceUnavailable,
			wantDeps: map[string]string{"mongodb": "ok", "redis": "unhealthy"},
		},
		{
			name:     "no dependencies",
			checks:   map[string]Check{},
			wantCode: http.StatusOK,
			wantDeps: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewHealthDependenciesHandler(tt.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if len(resp.Dependencies) != len(tt.wantDeps) {
				t.Fatalf("unexpected dependencies: %+v", resp.Dependencies)
			}
			for name, want := range tt.wantDeps {
				if got := resp.Dependencies[name].Status; got != want {
					t.Fatalf("%s: expected %s, got %s", name, want, got)
				}
			}
		})
	}
}
