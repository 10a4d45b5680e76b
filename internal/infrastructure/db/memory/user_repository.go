package memory

import (
	"context"
	"errors"
	"time"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

// UserRepository implements ports.UserRepository over a memory collection.
type UserRepository struct {
	users *Collection[domain.User]
}

var _ ports.UserRepository = (*UserRepository)(nil)

// NewUserRepository stores users in the named collection with a unique email.
func NewUserRepository(db *Database, collection string) *UserRepository {
	db.EnsureUnique(collection, "email")
	return &UserRepository{users: NewCollection[domain.User](db, collection)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := r.users.Insert(ctx, user)
	if errors.Is(err, domain.ErrDuplicate) {
		return nil, domain.ErrUserExists
	}
	if err != nil {
		return nil, err
	}
	return r.users.FindOne(ctx, query.ID(id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, query.Eq("email", email))
}

func (r *UserRepository) FindByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	return r.findOne(ctx, query.Eq("refresh_token", token))
}

func (r *UserRepository) RecordLogin(ctx context.Context, userID, token string, expiresAt, loginAt time.Time) error {
	_, err := r.users.updateOne(ctx, query.ID(userID), map[string]any{
		"refresh_token":            token,
		"refresh_token_expires_at": expiresAt,
		"last_login_at":            loginAt,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	return err
}

func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID, current, next string, expiresAt time.Time) (bool, error) {
	_, err := r.users.updateOne(ctx, query.ID(userID).And(query.Eq("refresh_token", current)), map[string]any{
		"refresh_token":            next,
		"refresh_token_expires_at": expiresAt,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, email string) error {
	_, err := r.users.updateOne(ctx, query.Eq("email", email), map[string]any{
		"refresh_token":            nil,
		"refresh_token_expires_at": nil,
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

func (r *UserRepository) findOne(ctx context.Context, pred query.Predicate) (*domain.User, error) {
	u, err := r.users.FindOne(ctx, pred)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return u, err
}
