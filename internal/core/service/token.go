package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
)

const (
	defaultAccessTokenLifetime  = time.Hour
	defaultRefreshTokenLifetime = 7 * 24 * time.Hour
	refreshTokenBytes           = 64
)

var ErrInvalidToken = errors.New("invalid token")

// TokenConfig is built once at startup and never mutated.
type TokenConfig struct {
	SigningKey           string
	Issuer               string
	Audience             string
	AccessTokenLifetime  time.Duration
	RefreshTokenLifetime time.Duration
}

// AccessClaims is the claim set of an access token. The subject is the user id.
type AccessClaims struct {
	Email       string `json:"email"`
	Role        string `json:"role"`
	Permissions string `json:"Permissions"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens and mints opaque refresh tokens.
type TokenIssuer struct {
	cfg TokenConfig
	now func() time.Time
}

var _ ports.TokenVerifier = (*TokenIssuer)(nil)

func NewTokenIssuer(cfg TokenConfig) (*TokenIssuer, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("token issuer: signing key is required")
	}
	if cfg.AccessTokenLifetime <= 0 {
		cfg.AccessTokenLifetime = defaultAccessTokenLifetime
	}
	if cfg.RefreshTokenLifetime <= 0 {
		cfg.RefreshTokenLifetime = defaultRefreshTokenLifetime
	}
	return &TokenIssuer{cfg: cfg, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (t *TokenIssuer) RefreshTokenLifetime() time.Duration { return t.cfg.RefreshTokenLifetime }

// IssueAccessToken signs a token for user valid from now for the configured lifetime.
func (t *TokenIssuer) IssueAccessToken(user *domain.User, now time.Time) (string, time.Time, error) {
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}
	expiresAt := now.Add(t.cfg.AccessTokenLifetime)

	claims := AccessClaims{
		Email:       user.Email,
		Role:        role,
		Permissions: domain.PermissionsForRole(role).Claim(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    t.cfg.Issuer,
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.SigningKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseAccessToken verifies signature, algorithm, issuer, audience and expiry.
func (t *TokenIssuer) ParseAccessToken(raw string) (*ports.Principal, error) {
	claims := &AccessClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	}
	if t.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(t.cfg.Issuer))
	}
	if t.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(t.cfg.Audience))
	}

	tkn, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(t.cfg.SigningKey), nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	perms, err := domain.ParsePermission(claims.Permissions)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed permissions claim", ErrInvalidToken)
	}

	return &ports.Principal{
		UserID:      claims.Subject,
		Email:       claims.Email,
		Role:        claims.Role,
		Permissions: perms,
	}, nil
}

// newRefreshToken returns 64 bytes from crypto/rand, URL-safe base64 encoded.
func newRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
