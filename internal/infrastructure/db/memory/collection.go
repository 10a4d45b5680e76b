package memory

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

// Collection is a typed view over one collection of a Database.
type Collection[T any] struct {
	db   *Database
	name string
}

var _ ports.Store[domain.Cake] = (*Collection[domain.Cake])(nil)

func NewCollection[T any](db *Database, name string) *Collection[T] {
	return &Collection[T]{db: db, name: name}
}

func (c *Collection[T]) FindOne(ctx context.Context, pred query.Predicate) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	coll, ok := c.db.collections[c.name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, doc := range coll.docs {
		if matches(doc, pred) {
			return decode[T](doc)
		}
	}
	return nil, domain.ErrNotFound
}

func (c *Collection[T]) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	coll, ok := c.db.collections[c.name]
	if !ok {
		return []T{}, nil
	}

	var hits []bson.M
	for _, doc := range coll.docs {
		if matches(doc, pred) {
			hits = append(hits, doc)
		}
	}

	if opts.Sort != nil {
		field, asc := opts.Sort.Field, opts.Sort.Ascending
		sort.SliceStable(hits, func(i, j int) bool {
			cmp := compareValues(hits[i][field], hits[j][field])
			if asc {
				return cmp < 0
			}
			return cmp > 0
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= int64(len(hits)) {
			hits = nil
		} else {
			hits = hits[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(hits)) > opts.Limit {
		hits = hits[:opts.Limit]
	}

	out := make([]T, 0, len(hits))
	for _, doc := range hits {
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, nil
}

func (c *Collection[T]) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()

	coll, ok := c.db.collections[c.name]
	if !ok {
		return 0, nil
	}
	var n int64
	for _, doc := range coll.docs {
		if matches(doc, pred) {
			n++
		}
	}
	return n, nil
}

func (c *Collection[T]) Insert(ctx context.Context, v *T) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc, err := toDocument(v)
	if err != nil {
		return "", err
	}
	id, ok := doc[query.IDField].(primitive.ObjectID)
	if !ok {
		id = primitive.NewObjectID()
		doc[query.IDField] = id
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	coll := c.db.collectionLocked(c.name)
	if coll.violatesUnique(doc, -1) {
		return "", domain.ErrDuplicate
	}
	coll.docs = append(coll.docs, doc)
	return id.Hex(), nil
}

func (c *Collection[T]) UpdateByID(ctx context.Context, id string, set map[string]any) (*T, error) {
	return c.updateOne(ctx, query.ID(id), set)
}

// updateOne applies set to the first document matching pred. Nil values
// remove the field.
func (c *Collection[T]) updateOne(ctx context.Context, pred query.Predicate, set map[string]any) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	changes, err := toDocument(set)
	if err != nil {
		return nil, err
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	coll, ok := c.db.collections[c.name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for i, doc := range coll.docs {
		if !matches(doc, pred) {
			continue
		}
		updated := make(bson.M, len(doc)+len(changes))
		for k, v := range doc {
			updated[k] = v
		}
		for k, v := range changes {
			if v == nil {
				delete(updated, k)
				continue
			}
			updated[k] = v
		}
		if coll.violatesUnique(updated, i) {
			return nil, domain.ErrDuplicate
		}
		coll.docs[i] = updated
		return decode[T](updated)
	}
	return nil, domain.ErrNotFound
}

func (c *Collection[T]) Delete(ctx context.Context, pred query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c.db.mu.Lock()
	defer c.db.mu.Unlock()

	coll, ok := c.db.collections[c.name]
	if !ok {
		return 0, nil
	}
	kept := coll.docs[:0]
	var removed int64
	for _, doc := range coll.docs {
		if matches(doc, pred) {
			removed++
			continue
		}
		kept = append(kept, doc)
	}
	coll.docs = kept
	return removed, nil
}

// toDocument round-trips v through BSON so stored values have the same types
// the MongoDB driver would produce.
func toDocument(v any) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

func decode[T any](doc bson.M) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &out, nil
}
