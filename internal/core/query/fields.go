package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/cakedelivery/delivery-api/internal/core/domain"
)

// FieldFunc turns a caller-supplied string into a typed predicate.
type FieldFunc func(value string) (Predicate, error)

// Fields is the closed set of externally addressable fields of an entity.
type Fields map[string]FieldFunc

// Predicate resolves name against the set. Unknown names and empty values
// are rejected with domain.ErrValidation.
func (f Fields) Predicate(name, value string) (Predicate, error) {
	build, ok := f[name]
	if !ok {
		return Predicate{}, fmt.Errorf("%w: unsupported field %q (allowed: %s)",
			domain.ErrValidation, name, strings.Join(f.Names(), ", "))
	}
	if strings.TrimSpace(value) == "" {
		return Predicate{}, fmt.Errorf("%w: value for %q is required", domain.ErrValidation, name)
	}
	return build(value)
}

// Names lists the supported field names, sorted.
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Identifier matches the document identifier.
func Identifier() FieldFunc {
	return func(value string) (Predicate, error) {
		return ID(value), nil
	}
}

// Exact matches a string field verbatim.
func Exact(field string) FieldFunc {
	return func(value string) (Predicate, error) {
		return Eq(field, value), nil
	}
}

// Substring matches a string field containing the value, case-insensitively.
func Substring(field string) FieldFunc {
	return func(value string) (Predicate, error) {
		return Contains(field, value), nil
	}
}

// Integer parses the value and matches an integer field.
func Integer(field string) FieldFunc {
	return func(value string) (Predicate, error) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Predicate{}, fmt.Errorf("%w: %q expects an integer", domain.ErrValidation, field)
		}
		return Eq(field, n), nil
	}
}

// OneOf matches a string field restricted to an enumeration.
func OneOf(field string, allowed ...string) FieldFunc {
	return func(value string) (Predicate, error) {
		if !slices.Contains(allowed, value) {
			return Predicate{}, fmt.Errorf("%w: %q must be one of: %s",
				domain.ErrValidation, field, strings.Join(allowed, ", "))
		}
		return Eq(field, value), nil
	}
}

// SortFields maps external order-by names to document fields.
type SortFields map[string]string

// Resolve returns the document field for name. An empty name sorts by
// identifier; unknown names are rejected with domain.ErrValidation.
func (s SortFields) Resolve(name string) (string, error) {
	if name == "" {
		return IDField, nil
	}
	field, ok := s[name]
	if !ok {
		allowed := make([]string, 0, len(s))
		for k := range s {
			allowed = append(allowed, k)
		}
		slices.Sort(allowed)
		return "", fmt.Errorf("%w: cannot order by %q (allowed: %s)",
			domain.ErrValidation, name, strings.Join(allowed, ", "))
	}
	return field, nil
}
