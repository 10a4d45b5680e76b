// Package memory is an in-process document store with the same observable
// behaviour as the MongoDB adapter: documents are BSON, identifiers are
// ObjectIDs rendered as hex, and unique fields are enforced.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Database holds named collections guarded by a single lock, so every
// mutation is atomic with respect to every read.
type Database struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

type collection struct {
	docs   []bson.M
	unique []string
}

func NewDatabase() *Database {
	return &Database{collections: make(map[string]*collection)}
}

// Ping always succeeds; it lets the database stand in for a remote store in
// readiness checks.
func (d *Database) Ping(ctx context.Context) error {
	return ctx.Err()
}

// EnsureUnique declares fields whose values must be unique within a collection.
func (d *Database) EnsureUnique(name string, fields ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c := d.collectionLocked(name)
	c.unique = append(c.unique, fields...)
}

// collectionLocked must be called with mu held for writing.
func (d *Database) collectionLocked(name string) *collection {
	c, ok := d.collections[name]
	if !ok {
		c = &collection{}
		d.collections[name] = c
	}
	return c
}

// violatesUnique reports whether doc clashes with another document on a unique field.
func (c *collection) violatesUnique(doc bson.M, skip int) bool {
	for _, field := range c.unique {
		v, ok := doc[field]
		if !ok || v == nil {
			continue
		}
		for i, other := range c.docs {
			if i == skip {
				continue
			}
			if ov, ok := other[field]; ok && equalValues(ov, v) {
				return true
			}
		}
	}
	return false
}
