package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

// Descriptor declares how an entity is stored, ordered, searched and presented.
type Descriptor[T, V any] struct {
	// Name is used in log lines and error messages.
	Name       string
	Collection string
	// Sort is the order-by allow-list for paginated reads.
	Sort query.SortFields
	// Search fields may match loosely (substring); Match fields back
	// existence checks and delete-by and compare exactly.
	Search query.Fields
	Match  query.Fields
	View   func(*T) V
}

// Identity presents an entity as itself.
func Identity[T any](doc *T) T { return *doc }

// EntityService implements CRUD, pagination and search for one entity type
// on top of a ports.Store. It holds no entity state between calls.
type EntityService[T, V any] struct {
	desc   Descriptor[T, V]
	store  ports.Store[T]
	logger zerolog.Logger
	now    func() time.Time
}

var _ ports.EntityService[domain.Cake, domain.Cake] = (*EntityService[domain.Cake, domain.Cake])(nil)

func NewEntityService[T, V any](desc Descriptor[T, V], store ports.Store[T], logger zerolog.Logger) *EntityService[T, V] {
	return &EntityService[T, V]{
		desc:   desc,
		store:  store,
		logger: logger.With().Str("entity", desc.Name).Str("collection", desc.Collection).Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *EntityService[T, V]) Name() string { return s.desc.Name }

// FindBy returns the first document matching pred. Absence is reported
// through found, never as an error.
func (s *EntityService[T, V]) FindBy(ctx context.Context, pred query.Predicate) (view V, found bool, err error) {
	doc, err := s.store.FindOne(ctx, pred)
	if errors.Is(err, domain.ErrNotFound) {
		return view, false, nil
	}
	if err != nil {
		return view, false, fmt.Errorf("find %s: %w", s.desc.Name, err)
	}
	return s.desc.View(doc), true, nil
}

func (s *EntityService[T, V]) FindByID(ctx context.Context, id string) (V, bool, error) {
	return s.FindBy(ctx, query.ID(id))
}

// GetAll returns every document unpaginated. Meant for small reference tables.
func (s *EntityService[T, V]) GetAll(ctx context.Context) ([]V, error) {
	return s.SearchBy(ctx, query.All())
}

// GetPage validates req before touching the store, then fetches the page and
// the total count concurrently.
func (s *EntityService[T, V]) GetPage(ctx context.Context, req ports.PageRequest) (ports.Page[V], error) {
	if req.PageNumber < 1 {
		return ports.Page[V]{}, fmt.Errorf("%w: page number must be at least 1", domain.ErrValidation)
	}
	if req.PageSize < 1 {
		return ports.Page[V]{}, fmt.Errorf("%w: page size must be at least 1", domain.ErrValidation)
	}
	field, err := s.desc.Sort.Resolve(req.OrderBy)
	if err != nil {
		return ports.Page[V]{}, err
	}

	var (
		total int64
		docs  []T
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.store.Count(gctx, query.All())
		if err != nil {
			return fmt.Errorf("count %s: %w", s.desc.Name, err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		found, err := s.store.Find(gctx, query.All(), query.FindOptions{
			Sort:  &query.Sort{Field: field, Ascending: req.Ascending},
			Skip:  int64(req.PageNumber-1) * int64(req.PageSize),
			Limit: int64(req.PageSize),
		})
		if err != nil {
			return fmt.Errorf("list %s: %w", s.desc.Name, err)
		}
		docs = found
		return nil
	})
	if err := g.Wait(); err != nil {
		return ports.Page[V]{}, err
	}

	return ports.Page[V]{
		Items:      s.views(docs),
		TotalCount: total,
		TotalPages: totalPages(total, req.PageSize),
		PageNumber: req.PageNumber,
		PageSize:   req.PageSize,
	}, nil
}

// Add persists the entity built by draft with a single insert and returns it
// as stored, including its new identifier.
func (s *EntityService[T, V]) Add(ctx context.Context, draft ports.Draft[T]) (view V, err error) {
	if draft == nil {
		return view, fmt.Errorf("%w: %s payload is required", domain.ErrValidation, s.desc.Name)
	}
	entity := draft.Entity(s.now())

	id, err := s.store.Insert(ctx, &entity)
	if err != nil {
		return view, fmt.Errorf("create %s: %w", s.desc.Name, err)
	}

	created, err := s.store.FindOne(ctx, query.ID(id))
	if err != nil {
		return view, fmt.Errorf("reload %s %s: %w", s.desc.Name, id, err)
	}

	s.logger.Info().Str("id", id).Msg("entity created")
	return s.desc.View(created), nil
}

// Update applies only the fields present in patch. An empty patch returns the
// current document unchanged.
func (s *EntityService[T, V]) Update(ctx context.Context, id string, patch ports.Patch) (view V, found bool, err error) {
	var changes map[string]any
	if patch != nil {
		changes = patch.Changes()
	}
	delete(changes, query.IDField)
	if len(changes) == 0 {
		return s.FindByID(ctx, id)
	}

	doc, err := s.store.UpdateByID(ctx, id, changes)
	if errors.Is(err, domain.ErrNotFound) {
		return view, false, nil
	}
	if err != nil {
		return view, false, fmt.Errorf("update %s %s: %w", s.desc.Name, id, err)
	}

	s.logger.Info().Str("id", id).Int("fields", len(changes)).Msg("entity updated")
	return s.desc.View(doc), true, nil
}

func (s *EntityService[T, V]) HardDelete(ctx context.Context, id string) (bool, error) {
	return s.HardDeleteBy(ctx, query.ID(id))
}

// HardDeleteBy permanently removes every matching document and reports whether
// any was removed. A predicate matching everything is refused.
func (s *EntityService[T, V]) HardDeleteBy(ctx context.Context, pred query.Predicate) (bool, error) {
	if pred.IsAll() {
		return false, fmt.Errorf("%w: refusing to delete every %s", domain.ErrValidation, s.desc.Name)
	}
	n, err := s.store.Delete(ctx, pred)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", s.desc.Name, err)
	}
	if n > 0 {
		s.logger.Info().Int64("deleted", n).Msg("entities deleted")
	}
	return n > 0, nil
}

func (s *EntityService[T, V]) Exists(ctx context.Context, id string) (bool, error) {
	return s.ExistsBy(ctx, query.ID(id))
}

// ExistsBy counts matches without decoding any document.
func (s *EntityService[T, V]) ExistsBy(ctx context.Context, pred query.Predicate) (bool, error) {
	n, err := s.store.Count(ctx, pred)
	if err != nil {
		return false, fmt.Errorf("count %s: %w", s.desc.Name, err)
	}
	return n > 0, nil
}

// SearchBy returns every document matching pred in identifier order.
func (s *EntityService[T, V]) SearchBy(ctx context.Context, pred query.Predicate) ([]V, error) {
	docs, err := s.store.Find(ctx, pred, query.FindOptions{
		Sort: &query.Sort{Field: query.IDField, Ascending: true},
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", s.desc.Name, err)
	}
	return s.views(docs), nil
}

// Search resolves criteria against the entity's search fields.
func (s *EntityService[T, V]) Search(ctx context.Context, criteria ports.SearchCriteria) ([]V, error) {
	pred, err := s.desc.Search.Predicate(criteria.Field, criteria.Value)
	if err != nil {
		return nil, err
	}
	return s.SearchBy(ctx, pred)
}

// ExistsMatching resolves criteria against the entity's exact-match fields.
func (s *EntityService[T, V]) ExistsMatching(ctx context.Context, criteria ports.SearchCriteria) (bool, error) {
	pred, err := s.desc.Match.Predicate(criteria.Field, criteria.Value)
	if err != nil {
		return false, err
	}
	return s.ExistsBy(ctx, pred)
}

func (s *EntityService[T, V]) DeleteMatching(ctx context.Context, criteria ports.SearchCriteria) (bool, error) {
	pred, err := s.desc.Match.Predicate(criteria.Field, criteria.Value)
	if err != nil {
		return false, err
	}
	return s.HardDeleteBy(ctx, pred)
}

func (s *EntityService[T, V]) views(docs []T) []V {
	out := make([]V, 0, len(docs))
	for i := range docs {
		out = append(out, s.desc.View(&docs[i]))
	}
	return out
}

func totalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}
