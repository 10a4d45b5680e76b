package ports

import (
	"context"
	"time"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// TokenPair is an access token plus its rotating refresh token.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// AuthResult is returned by a successful authentication.
type AuthResult struct {
	TokenPair
	User *domain.User
}

// Principal is the identity carried by a verified access token.
type Principal struct {
	UserID      string
	Email       string
	Role        string
	Permissions domain.Permission
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Revoke(ctx context.Context, email string) error
}

// TokenVerifier validates an access token and returns its principal.
type TokenVerifier interface {
	ParseAccessToken(raw string) (*Principal, error)
}
