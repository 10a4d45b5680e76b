package ports

import (
	"context"

	"github.com/cakedelivery/delivery-api/internal/core/query"
)

// Store is the persistence contract for one collection of documents of type T.
// Implementations must treat a malformed identifier as "no match" rather than
// returning an error.
type Store[T any] interface {
	// FindOne returns domain.ErrNotFound when nothing matches.
	FindOne(ctx context.Context, pred query.Predicate) (*T, error)
	Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]T, error)
	Count(ctx context.Context, pred query.Predicate) (int64, error)
	// Insert persists doc and returns the identifier assigned by the store.
	// Unique index violations are reported as domain.ErrDuplicate.
	Insert(ctx context.Context, doc *T) (string, error)
	// UpdateByID applies set atomically and returns the updated document,
	// or domain.ErrNotFound when no document has that identifier.
	UpdateByID(ctx context.Context, id string, set map[string]any) (*T, error)
	// Delete removes every matching document and returns how many were removed.
	Delete(ctx context.Context, pred query.Predicate) (int64, error)
}
