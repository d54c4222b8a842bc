// Package cache memoizes series coefficients by index.
//
// A cache is safe only in a single goroutine. Never share one across goroutines.
package cache

import (
	"fmt"
	"maps"
	"slices"
)

// ErrNonProductive reports a coefficient that (transitively) depends on itself
// or on a later coefficient of the same series.
var ErrNonProductive = fmt.Errorf("non-productive recursive definition")

// Formula computes the coefficient at index n.
type Formula[T any] func(n int) (T, error)

type Cache[T any] interface {
	// Get returns the memoized coefficient at n, computing it with f on a miss.
	// A failed computation leaves the cache unchanged.
	Get(n int, f Formula[T]) (T, error)
	Load(n int) (T, bool)
	Len() int
	// Range visits memoized coefficients in increasing index order.
	Range(fn func(n int, v T) bool)
}

var (
	_ Cache[int] = (*Sparse[int])(nil)
	_ Cache[int] = (*Dense[int])(nil)
)

// Sparse memoizes only the indices that were requested.
type Sparse[T any] struct {
	values  map[int]T
	pending map[int]struct{}
}

func NewSparse[T any]() *Sparse[T] {
	return &Sparse[T]{
		values:  map[int]T{},
		pending: map[int]struct{}{},
	}
}

func (c *Sparse[T]) Get(n int, f Formula[T]) (T, error) {
	if v, ok := c.values[n]; ok {
		return v, nil
	}
	var zero T
	if _, busy := c.pending[n]; busy {
		return zero, fmt.Errorf("%w: coefficient %d depends on itself", ErrNonProductive, n)
	}
	c.pending[n] = struct{}{}
	defer delete(c.pending, n)

	v, err := f(n)
	if err != nil {
		return zero, err
	}
	c.values[n] = v
	return v, nil
}

func (c *Sparse[T]) Load(n int) (T, bool) {
	v, ok := c.values[n]
	return v, ok
}

func (c *Sparse[T]) Len() int { return len(c.values) }

func (c *Sparse[T]) Range(fn func(n int, v T) bool) {
	for _, n := range slices.Sorted(maps.Keys(c.values)) {
		if !fn(n, c.values[n]) {
			return
		}
	}
}

// Restore reloads previously computed coefficients.
func (c *Sparse[T]) Restore(entries map[int]T) {
	for n, v := range entries {
		c.values[n] = v
	}
}

// Dense memoizes a contiguous run of coefficients starting at offset and
// extends it one index at a time, strictly in increasing order.
type Dense[T any] struct {
	offset    int
	values    []T
	producing bool
}

func NewDense[T any](offset int) *Dense[T] {
	return &Dense[T]{offset: offset}
}

func (c *Dense[T]) Get(n int, f Formula[T]) (T, error) {
	if n < c.offset {
		return f(n)
	}
	i := n - c.offset
	if i < len(c.values) {
		return c.values[i], nil
	}
	var zero T
	if c.producing {
		return zero, fmt.Errorf(
			"%w: coefficient %d requested while producing %d",
			ErrNonProductive, n, c.offset+len(c.values),
		)
	}
	c.producing = true
	defer func() { c.producing = false }()

	for len(c.values) <= i {
		v, err := f(c.offset + len(c.values))
		if err != nil {
			return zero, err
		}
		c.values = append(c.values, v)
	}
	return c.values[i], nil
}

func (c *Dense[T]) Load(n int) (T, bool) {
	i := n - c.offset
	if i < 0 || i >= len(c.values) {
		var zero T
		return zero, false
	}
	return c.values[i], true
}

func (c *Dense[T]) Len() int { return len(c.values) }

func (c *Dense[T]) Range(fn func(n int, v T) bool) {
	for i, v := range c.values {
		if !fn(c.offset+i, v) {
			return
		}
	}
}
