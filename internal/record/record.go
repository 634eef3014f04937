// Package record defines the ordered field map that raw and normalized
// resources flow through, plus the deep-copy, lookup, and merge primitives
// the cache and transformers are built on.
package record

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is a string-keyed field map that preserves insertion order.
// Field order is an observable contract: serialized output emits fields in
// exactly the order they were set, and setting an existing field keeps its
// original position.
type Record struct {
	fields *orderedmap.OrderedMap[string, any]
}

// New creates an empty record.
func New() *Record {
	return &Record{fields: orderedmap.New[string, any]()}
}

// Get returns the value stored under key and whether the key is present.
func (r *Record) Get(key string) (any, bool) {
	return r.fields.Get(key)
}

// Set stores a value under key. A new key is appended after all existing
// fields; an existing key is updated in place.
func (r *Record) Set(key string, value any) {
	r.fields.Set(key, value)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the field names in record order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// All iterates the fields in record order.
func (r *Record) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

// Merge overlays other onto r: keys already present keep their position and
// take other's value, new keys are appended in other's order. The overlay is
// shallow, values are shared, not copied.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}

	for key, value := range other.All() {
		r.fields.Set(key, value)
	}
}

// Clone returns a deep copy of the record. Mutating the copy never affects
// the original, at any nesting depth.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}

	out := New()
	for key, value := range r.All() {
		out.fields.Set(key, Clone(value))
	}

	return out
}

// Clone deep-copies any value from the decoded JSON domain: records, lists,
// and plain maps are copied recursively, scalars are returned as-is.
func Clone(v any) any {
	switch val := v.(type) {
	case *Record:
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Clone(item)
		}

		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)

		return out
	case []*Record:
		out := make([]*Record, len(val))
		for i, item := range val {
			out[i] = item.Clone()
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for key, item := range val {
			out[key] = Clone(item)
		}

		return out
	default:
		return v
	}
}
