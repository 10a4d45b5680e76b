// Package query holds the store-agnostic predicate and sort vocabulary used
// by the entity services. Store adapters translate it into their own filters.
package query

// Op is the comparison applied by a Condition.
type Op uint8

const (
	// OpEq matches a field equal to the value.
	OpEq Op = iota
	// OpContains matches a string field containing the value, ignoring case.
	OpContains
	// OpID matches the store-native identifier. A value that is not a valid
	// identifier matches nothing.
	OpID
)

func (o Op) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpContains:
		return "contains"
	case OpID:
		return "id"
	default:
		return "unknown"
	}
}

// IDField is the document key holding the identifier.
const IDField = "_id"

// Condition is a single field comparison.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Predicate is a conjunction of conditions. The zero value matches everything.
type Predicate struct {
	conds []Condition
}

// All matches every document.
func All() Predicate { return Predicate{} }

func Where(field string, op Op, value any) Predicate {
	return Predicate{conds: []Condition{{Field: field, Op: op, Value: value}}}
}

func Eq(field string, value any) Predicate { return Where(field, OpEq, value) }

func Contains(field, substr string) Predicate { return Where(field, OpContains, substr) }

func ID(id string) Predicate { return Where(IDField, OpID, id) }

// And returns a predicate matching both p and other.
func (p Predicate) And(other Predicate) Predicate {
	conds := make([]Condition, 0, len(p.conds)+len(other.conds))
	conds = append(conds, p.conds...)
	conds = append(conds, other.conds...)
	return Predicate{conds: conds}
}

// Conditions returns a copy of the conditions.
func (p Predicate) Conditions() []Condition {
	out := make([]Condition, len(p.conds))
	copy(out, p.conds)
	return out
}

func (p Predicate) IsAll() bool { return len(p.conds) == 0 }

// Sort orders results by a single field. Ties keep the store's natural order.
type Sort struct {
	Field     string
	Ascending bool
}

// FindOptions bounds a multi-document read. Zero Limit means no limit.
type FindOptions struct {
	Sort  *Sort
	Skip  int64
	Limit int64
}
