package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
	"github.com/cakedelivery/delivery-api/internal/core/ports"
	"github.com/cakedelivery/delivery-api/internal/core/query"
)

// Collection implements ports.Store[T] over a MongoDB collection.
type Collection[T any] struct {
	col *mongo.Collection
}

var _ ports.Store[domain.Cake] = (*Collection[domain.Cake])(nil)

func NewCollection[T any](db *mongo.Database, name string) *Collection[T] {
	return &Collection[T]{col: db.Collection(name)}
}

func (c *Collection[T]) FindOne(ctx context.Context, pred query.Predicate) (*T, error) {
	filter, ok := buildFilter(pred)
	if !ok {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	if err := c.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) Find(ctx context.Context, pred query.Predicate, opts query.FindOptions) ([]T, error) {
	filter, ok := buildFilter(pred)
	if !ok {
		return []T{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	findOpts := options.Find()
	if opts.Sort != nil {
		findOpts.SetSort(buildSort(*opts.Sort))
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}

	cursor, err := c.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Collection[T]) Count(ctx context.Context, pred query.Predicate) (int64, error) {
	filter, ok := buildFilter(pred)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return c.col.CountDocuments(ctx, filter)
}

func (c *Collection[T]) Insert(ctx context.Context, doc *T) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicate
		}
		return "", err
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
}

// UpdateByID sets the given fields and returns the document after the update.
// Nil values are unset.
func (c *Collection[T]) UpdateByID(ctx context.Context, id string, set map[string]any) (*T, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc T
	err = c.col.FindOneAndUpdate(ctx,
		bson.D{{Key: query.IDField, Value: oid}},
		buildUpdate(set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) Delete(ctx context.Context, pred query.Predicate) (int64, error) {
	filter, ok := buildFilter(pred)
	if !ok {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := c.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// buildFilter translates a predicate into a MongoDB filter. It reports false
// when the predicate can never match, e.g. for a malformed identifier.
// buildSort orders by s.Field and breaks ties on _id in the same direction,
// so skip/limit paging over a non-unique field is deterministic.
func buildSort(s query.Sort) bson.D {
	dir := -1
	if s.Ascending {
		dir = 1
	}
	sort := bson.D{{Key: s.Field, Value: dir}}
	if s.Field != query.IDField {
		sort = append(sort, bson.E{Key: query.IDField, Value: dir})
	}
	return sort
}

func buildFilter(pred query.Predicate) (bson.D, bool) {
	filter := bson.D{}
	for _, cond := range pred.Conditions() {
		switch cond.Op {
		case query.OpID:
			s, _ := cond.Value.(string)
			oid, err := primitive.ObjectIDFromHex(s)
			if err != nil {
				return nil, false
			}
			filter = append(filter, bson.E{Key: query.IDField, Value: oid})
		case query.OpContains:
			s, _ := cond.Value.(string)
			filter = append(filter, bson.E{Key: cond.Field, Value: primitive.Regex{
				Pattern: regexp.QuoteMeta(s),
				Options: "i",
			}})
		default:
			filter = append(filter, bson.E{Key: cond.Field, Value: cond.Value})
		}
	}
	return filter, true
}

func buildUpdate(set map[string]any) bson.D {
	sets := bson.D{}
	unsets := bson.D{}
	for k, v := range set {
		if v == nil {
			unsets = append(unsets, bson.E{Key: k, Value: ""})
			continue
		}
		sets = append(sets, bson.E{Key: k, Value: v})
	}
	update := bson.D{}
	if len(sets) > 0 {
		update = append(update, bson.E{Key: "$set", Value: sets})
	}
	if len(unsets) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unsets})
	}
	return update
}
