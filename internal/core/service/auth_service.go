package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
)

// AuthService implements registration, login, refresh-token rotation and revocation.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenIssuer
	throttle ports.LoginThrottle
	logger   zerolog.Logger
	now      func() time.Time

	hashCost  int
	dummyOnce sync.Once
	dummyHash []byte
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService wires the flow. throttle may be nil to disable login throttling.
func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, throttle ports.LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		throttle: throttle,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		hashCost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	email := normalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.IsKnownRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fmt.Errorf("%w: password is too long", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// Authenticate verifies the credentials and starts a session. Unknown email,
// wrong password and inactive account all yield domain.ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.loginAllowed(ctx, email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.compareDummy(password)
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil || !user.IsActive {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	pair, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}
	if err := s.users.RecordLogin(ctx, user.ID, pair.RefreshToken, pair.RefreshTokenExpiresAt, now); err != nil {
		return nil, fmt.Errorf("record login: %w", err)
	}
	s.resetFailures(ctx, email)

	user.LastLoginAt = &now
	user.RefreshToken = pair.RefreshToken
	user.RefreshTokenExpiresAt = &pair.RefreshTokenExpiresAt

	s.logger.Info().Str("user_id", user.ID).Msg("user authenticated")
	return &ports.AuthResult{TokenPair: *pair, User: user}, nil
}

// Refresh exchanges a live refresh token for a new pair. The old token is
// swapped out atomically, so replaying it afterwards fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByRefreshToken(ctx, refreshToken)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}

	now := s.now()
	if !user.RefreshTokenValid(now) || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(user, now)
	if err != nil {
		return nil, err
	}
	rotated, err := s.users.RotateRefreshToken(ctx, user.ID, refreshToken, pair.RefreshToken, pair.RefreshTokenExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	if !rotated {
		s.logger.Warn().Str("user_id", user.ID).Msg("refresh token already rotated")
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Debug().Str("user_id", user.ID).Msg("refresh token rotated")
	return pair, nil
}

// Revoke clears the stored refresh token. Calling it again, or for an unknown
// email, is a no-op.
func (s *AuthService) Revoke(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if err := s.users.ClearRefreshToken(ctx, email); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	s.logger.Info().Str("email", email).Msg("refresh token revoked")
	return nil
}

func (s *AuthService) issuePair(user *domain.User, now time.Time) (*ports.TokenPair, error) {
	access, accessExp, err := s.tokens.IssueAccessToken(user, now)
	if err != nil {
		return nil, err
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	return &ports.TokenPair{
		AccessToken:           access,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refresh,
		RefreshTokenExpiresAt: now.Add(s.tokens.RefreshTokenLifetime()),
	}, nil
}

// compareDummy spends the same bcrypt work as a real comparison.
func (s *AuthService) compareDummy(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cake-delivery-placeholder"), s.hashCost)
	})
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}

func (s *AuthService) loginAllowed(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return true
	}
	ok, err := s.throttle.Allowed(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
		return true
	}
	return ok
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login failures")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
