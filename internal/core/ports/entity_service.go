package ports

import (
	"context"
	"time"
)

const (
	DefaultPageSize = 10
	// MaxPageSize bounds page_size on the HTTP listing endpoint. The service
	// itself accepts any size of at least 1.
	MaxPageSize = 100
)

// Draft builds a new entity from a creation payload.
type Draft[T any] interface {
	Entity(now time.Time) T
}

// Patch describes a partial update. Changes returns only the fields the caller
// supplied, keyed by document field name.
type Patch interface {
	Changes() map[string]any
}

// PageRequest asks for one page of an entity collection.
type PageRequest struct {
	PageNumber int
	PageSize   int
	OrderBy    string
	Ascending  bool
}

// Page is one page of results plus the totals needed to navigate the rest.
type Page[V any] struct {
	Items      []V
	TotalCount int64
	TotalPages int
	PageNumber int
	PageSize   int
}

// SearchCriteria is a caller-supplied field name and value.
type SearchCriteria struct {
	Field string
	Value string
}

// EntityService is the CRUD contract shared by every entity. T is the stored
// entity, V its external representation.
type EntityService[T, V any] interface {
	FindByID(ctx context.Context, id string) (V, bool, error)
	GetAll(ctx context.Context) ([]V, error)
	GetPage(ctx context.Context, req PageRequest) (Page[V], error)
	Add(ctx context.Context, draft Draft[T]) (V, error)
	Update(ctx context.Context, id string, patch Patch) (V, bool, error)
	HardDelete(ctx context.Context, id string) (bool, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]V, error)
	ExistsMatching(ctx context.Context, criteria SearchCriteria) (bool, error)
	DeleteMatching(ctx context.Context, criteria SearchCriteria) (bool, error)
}
