package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cakedelivery/delivery-api/internal/api/middleware"
	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, input ports.RegisterInput) (*domain.User, error)
	authenticateFn func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn      func(ctx context.Context, token string) (*ports.TokenPair, error)
	revoked        []string
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.authenticateFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, token string) (*ports.TokenPair, error) {
	return s.refreshFn(ctx, token)
}

func (s *stubAuthService) Revoke(_ context.Context, email string) error {
	s.revoked = append(s.revoked, email)
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Username != "alice" || in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Role != domain.RoleUser {
				t.Fatalf("self registration must use the User role, got %q", in.Role)
			}
			return &domain.User{ID: "u1", Username: in.Username, Email: in.Email, Role: in.Role, PasswordHash: "secret-hash"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"s3cretpass","role":"Admin"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret-hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["user"]["role"] != domain.RoleUser {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/register", `{"username":"al","email":"nope","password":"short"}`)
	err := h.Register(c)
	if got := httpStatus(t, err); got != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", got)
	}
	if !strings.Contains(err.Error(), "email must be a valid email") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"longenough"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	exp := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	h := NewAuthHandler(&stubAuthService{
		authenticateFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "carol@example.com" || password != "pw" {
				t.Fatalf("unexpected credentials %s/%s", email, password)
			}
			return &ports.AuthResult{
				TokenPair: ports.TokenPair{
					AccessToken:           "access",
					AccessTokenExpiresAt:  exp,
					RefreshToken:          "refresh",
					RefreshTokenExpiresAt: exp.Add(7 * 24 * time.Hour),
				},
				User: &domain.User{ID: "u2", Email: email, Role: domain.RoleManager},
			}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/login", `{"email":"carol@example.com","password":"pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access" || resp["refresh_token"] != "refresh" || resp["token_type"] != "Bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	if _, ok := resp["user"].(map[string]any); !ok {
		t.Fatalf("expected user in response: %+v", resp)
	}
}

func TestAuthHandler_Login_PropagatesServiceErrors(t *testing.T) {
	for _, want := range []error{domain.ErrInvalidCredentials, domain.ErrTooManyAttempts} {
		e := newTestEcho()
		h := NewAuthHandler(&stubAuthService{
			authenticateFn: func(context.Context, string, string) (*ports.AuthResult, error) {
				return nil, want
			},
		})

		c, _ := jsonRequest(e, http.MethodPost, "/api/auth/login", `{"email":"dan@example.com","password":"pw"}`)
		if err := h.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		refreshFn: func(_ context.Context, token string) (*ports.TokenPair, error) {
			if token != "good" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"good"}`)
	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"refresh_token":"r2"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	c, _ = jsonRequest(e, http.MethodPost, "/api/auth/refresh", `{"refresh_token":"stale"}`)
	if got := httpStatus(t, h.Refresh(c)); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}

func TestAuthHandler_Revoke(t *testing.T) {
	tests := []struct {
		name      string
		principal *ports.Principal
		body      string
		wantErr   error
		wantEmail string
	}{
		{
			name:      "self by default",
			principal: &ports.Principal{Email: "eve@example.com", Permissions: domain.PermissionsForRole(domain.RoleUser)},
			body:      `{}`,
			wantEmail: "eve@example.com",
		},
		{
			name:      "other account without manage users",
			principal: &ports.Principal{Email: "eve@example.com", Permissions: domain.PermissionsForRole(domain.RoleManager)},
			body:      `{"email":"frank@example.com"}`,
			wantErr:   domain.ErrForbidden,
		},
		{
			name:      "other account as admin",
			principal: &ports.Principal{Email: "root@example.com", Permissions: domain.PermissionsForRole(domain.RoleAdmin)},
			body:      `{"email":"frank@example.com"}`,
			wantEmail: "frank@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{}
			h := NewAuthHandler(stub)

			c, rec := jsonRequest(e, http.MethodPost, "/api/auth/revoke", tt.body)
			c.Set(middleware.PrincipalKey, tt.principal)

			err := h.Revoke(c)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(stub.revoked) != 0 {
					t.Fatalf("nothing should be revoked, got %v", stub.revoked)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusNoContent {
				t.Fatalf("expected 204, got %d", rec.Code)
			}
			if len(stub.revoked) != 1 || stub.revoked[0] != tt.wantEmail {
				t.Fatalf("expected revoke of %s, got %v", tt.wantEmail, stub.revoked)
			}
		})
	}
}

func TestAuthHandler_Revoke_RequiresPrincipal(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/auth/revoke", `{}`)
	if got := httpStatus(t, h.Revoke(c)); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}
