package ports

import (
	"context"
	"time"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

// UserRepository defines the credential persistence operations used by the
// authentication flow. Every method is a single-document operation.
type UserRepository interface {
	// Create returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail and FindByRefreshToken return domain.ErrUserNotFound on no match.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*domain.User, error)
	// RecordLogin stores the refresh token, its expiry and the login time together.
	RecordLogin(ctx context.Context, userID, token string, expiresAt, loginAt time.Time) error
	// RotateRefreshToken replaces current with next only if current is still
	// stored for the user. It reports whether the swap happened.
	RotateRefreshToken(ctx context.Context, userID, current, next string, expiresAt time.Time) (bool, error)
	// ClearRefreshToken removes the token and expiry. Unknown emails are not an error.
	ClearRefreshToken(ctx context.Context, email string) error
}

// LoginThrottle limits repeated failed logins per account.
type LoginThrottle interface {
	Allowed(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
