// internal/store/store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names shared by every backend.
const (
	CollectionUsers    = "users"
	CollectionProducts = "products"
	CollectionSales    = "sales"
	CollectionLikes    = "product_likes"
	CollectionCache    = "copilot_cache"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Document is a loosely-typed record addressed by (collection, id). Values are
// restricted to JSON-representable types; Normalize enforces that on write so
// both backends return observably identical data on read.
type Document map[string]interface{}

type Op string

const (
	OpEq  Op = "=="
	OpGt  Op = ">"
	OpGte Op = ">="
	OpLt  Op = "<"
	OpLte Op = "<="
)

// Condition is a single predicate on a top-level document field. A query
// matches the conjunction of all its conditions.
type Condition struct {
	Field string
	Op    Op
	Value interface{}
}

func Eq(field string, value interface{}) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

// DocumentStore is the persistence contract of the catalog. Two backends
// implement it (Postgres with a JSON document column, and MongoDB); the
// conformance suite in store_test.go pins their shared behavior.
type DocumentStore interface {
	// Get returns the document or ErrNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// Set fully replaces the document, inserting it if absent.
	Set(ctx context.Context, collection, id string, doc Document) error

	// Update merges only the given fields into an existing document. An empty
	// fields map is a no-op; a missing id returns ErrNotFound.
	Update(ctx context.Context, collection, id string, fields Document) error

	// Delete removes the document, returning ErrNotFound if absent.
	Delete(ctx context.Context, collection, id string) error

	// Query returns all documents matching the conjunction of conds, in no
	// particular order. Callers sort.
	Query(ctx context.Context, collection string, conds ...Condition) ([]Document, error)

	Close(ctx context.Context) error
}

// Normalize collapses a value to its JSON shape: maps become
// map[string]interface{}, slices []interface{}, numbers float64 and
// time.Time values RFC3339 strings. Values that cannot be marshaled are
// passed through untouched rather than failing the write.
func Normalize(v interface{}) interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}

func NormalizeDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = Normalize(v)
	}
	return out
}

func matchesInMemory(doc Document, conds []Condition) bool {
	for _, cond := range conds {
		if !condMatches(doc[cond.Field], cond) {
			return false
		}
	}
	return true
}

func condMatches(value interface{}, cond Condition) bool {
	want := Normalize(cond.Value)
	if cond.Op == OpEq {
		return equalValues(value, want)
	}

	c, ok := compareValues(value, want)
	if !ok {
		return false
	}
	switch cond.Op {
	case OpGt:
		return c > 0
	case OpGte:
		return c >= 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	}
	return false
}

func equalValues(a, b interface{}) bool {
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	ab, errA := json.Marshal(a)
	bb, errB := json.Marshal(b)
	return errA == nil && errB == nil && string(ab) == string(bb)
}

// compareValues orders two scalar values of the same kind. Only numbers and
// strings are ordered; everything else is incomparable.
func compareValues(a, b interface{}) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	}
	if af, ok := toFloat(a); ok {
		return compareValues(af, b)
	}
	return 0, false
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
