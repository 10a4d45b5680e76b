package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cakedelivery/delivery-api/internal/core/query"
)

func TestBuildFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	filter, ok := buildFilter(query.ID(oid.Hex()).And(query.Eq("category_id", "c1")))
	assert.True(t, ok)
	assert.Equal(t, bson.D{{Key: "_id", Value: oid}, {Key: "category_id", Value: "c1"}}, filter)

	filter, ok = buildFilter(query.Contains("name", "a.b("))
	assert.True(t, ok)
	assert.Equal(t, bson.D{{Key: "name", Value: primitive.Regex{Pattern: `a\.b\(`, Options: "i"}}}, filter)

	filter, ok = buildFilter(query.All())
	assert.True(t, ok)
	assert.Empty(t, filter)
}

func TestBuildFilter_MalformedID(t *testing.T) {
	_, ok := buildFilter(query.ID("not-hex"))
	assert.False(t, ok)
}

func TestBuildUpdate(t *testing.T) {
	update := buildUpdate(map[string]any{"refresh_token": nil})
	assert.Equal(t, bson.D{{Key: "$unset", Value: bson.D{{Key: "refresh_token", Value: ""}}}}, update)

	update = buildUpdate(map[string]any{"price": 10.5})
	assert.Equal(t, bson.D{{Key: "$set", Value: bson.D{{Key: "price", Value: 10.5}}}}, update)
}

func TestBuildSort(t *testing.T) {
	assert.Equal(t,
		bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: -1}},
		buildSort(query.Sort{Field: "price"}))
	assert.Equal(t,
		bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}},
		buildSort(query.Sort{Field: "price", Ascending: true}))
	assert.Equal(t,
		bson.D{{Key: "_id", Value: 1}},
		buildSort(query.Sort{Field: "_id", Ascending: true}))
}
