package memory

import (
	"bytes"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cakedelivery/delivery-api/internal/core/query"
)

func matches(doc bson.M, pred query.Predicate) bool {
	for _, cond := range pred.Conditions() {
		if !matchCondition(doc, cond) {
			return false
		}
	}
	return true
}

func matchCondition(doc bson.M, cond query.Condition) bool {
	switch cond.Op {
	case query.OpID:
		s, ok := cond.Value.(string)
		if !ok {
			return false
		}
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return false
		}
		stored, ok := doc[query.IDField].(primitive.ObjectID)
		return ok && stored == oid
	case query.OpContains:
		s, ok := doc[cond.Field].(string)
		sub, subOK := cond.Value.(string)
		if !ok || !subOK {
			return false
		}
		return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	case query.OpEq:
		v, ok := doc[cond.Field]
		if !ok {
			return cond.Value == nil
		}
		return equalValues(v, cond.Value)
	default:
		return false
	}
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	if sa, ok := toString(a); ok {
		sb, ok := toString(b)
		return ok && sa == sb
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders values the way MongoDB orders mixed types:
// missing and null first, then numbers, strings, object ids, booleans, dates.
func compareValues(a, b any) int {
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case rankNumber:
		fa, _ := toFloat(a)
		fb, _ := toFloat(b)
		return cmpOrdered(fa, fb)
	case rankString:
		sa, _ := toString(a)
		sb, _ := toString(b)
		return strings.Compare(sa, sb)
	case rankObjectID:
		oa, ob := a.(primitive.ObjectID), b.(primitive.ObjectID)
		return bytes.Compare(oa[:], ob[:])
	case rankBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case rankDate:
		return cmpOrdered(a.(primitive.DateTime), b.(primitive.DateTime))
	default:
		return 0
	}
}

const (
	rankNull = iota
	rankNumber
	rankString
	rankObjectID
	rankBool
	rankDate
	rankOther
)

func typeRank(v any) int {
	if v == nil {
		return rankNull
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	if _, ok := toString(v); ok {
		return rankString
	}
	switch v.(type) {
	case primitive.ObjectID:
		return rankObjectID
	case bool:
		return rankBool
	case primitive.DateTime:
		return rankDate
	default:
		return rankOther
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

func cmpOrdered[N int64 | float64 | primitive.DateTime](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
