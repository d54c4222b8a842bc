// Package intern shares structurally identical values through a bounded,
// hash-keyed table. Sharing is an optimization only: an evicted or dropped
// entry just means a duplicate value is built.
package intern

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	ristretto "github.com/dgraph-io/ristretto/v2"
)

// Fingerprint hashes the given parts, separated so that ("ab", "c") and
// ("a", "bc") differ.
func Fingerprint(parts ...string) uint64 {
	d := xxhash.New()
	for _, part := range parts {
		_, _ = d.WriteString(part)
		_, _ = d.Write([]byte{0})
	}
	return d.Sum64()
}

// Table is a nil-safe intern table: a nil *Table never finds anything and
// drops every store.
type Table[V any] struct {
	cache *ristretto.Cache[uint64, V]
}

func New[V any](capacity int64) (*Table[V], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("intern table capacity must be positive: %d", capacity)
	}
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, V]{
		NumCounters:        capacity * 10,
		MaxCost:            capacity,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Table[V]{cache: cache}, nil
}

// Lookup returns the value stored under key when match confirms it is the
// wanted one. Hash collisions therefore never alias distinct values.
func (t *Table[V]) Lookup(key uint64, match func(V) bool) (V, bool) {
	var zero V
	if t == nil {
		return zero, false
	}
	v, ok := t.cache.Get(key)
	if !ok || !match(v) {
		return zero, false
	}
	return v, true
}

// Store records v under key and waits until it is visible to Lookup.
func (t *Table[V]) Store(key uint64, v V) {
	if t == nil {
		return
	}
	if t.cache.Set(key, v, 1) {
		t.cache.Wait()
	}
}

func (t *Table[V]) Close() {
	if t == nil {
		return
	}
	t.cache.Close()
}
