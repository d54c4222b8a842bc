// Package series is a lazy, memoized engine for formal power and Laurent
// series over a commutative ring.
//
// Coefficients are produced on demand and cached forever. Series may be
// defined in terms of themselves through Placeholder and Define, as long as
// every self-reference is shifted by a positive valuation.
//
// An Engine and every Series built from it are safe only in a single
// goroutine. Never share them across goroutines without external locking.
package series

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/on-the-ground/lazy_series_go/internal/intern"
	"github.com/on-the-ground/lazy_series_go/internal/poly"
	"github.com/on-the-ground/lazy_series_go/pure"
	"github.com/on-the-ground/lazy_series_go/ring"
)

// CoefficientFunc computes the coefficient at index n.
type CoefficientFunc[T any] func(n int) (T, error)

// Engine builds series over one coefficient ring.
type Engine[T any] struct {
	ring   ring.Ring[T]
	ops    poly.Ops[T]
	cfg    Config
	logger *zap.Logger

	depth int
	nodes *intern.Table[node[T]]

	functions map[string]CoefficientFunc[T]
	maps      map[string]func(T) T
}

func New[T any](r ring.Ring[T], cfg Config) (*Engine[T], error) {
	if r == nil {
		return nil, fmt.Errorf("nil coefficient ring")
	}
	cfg = cfg.normalized()
	e := &Engine[T]{
		ring:      r,
		ops:       poly.Over(r),
		cfg:       cfg,
		logger:    cfg.Logger.With(zap.String("ring", r.Name())),
		functions: map[string]CoefficientFunc[T]{},
		maps:      map[string]func(T) T{},
	}
	if cfg.InternCapacity > 0 {
		nodes, err := intern.New[node[T]](cfg.InternCapacity)
		if err != nil {
			return nil, fmt.Errorf("failed to create intern table: %w", err)
		}
		e.nodes = nodes
	}
	return e, nil
}

// Close releases the intern table. Series of a closed engine keep working.
func (e *Engine[T]) Close() {
	e.nodes.Close()
	e.nodes = nil
}

func (e *Engine[T]) Ring() ring.Ring[T] { return e.ring }

func (e *Engine[T]) Config() Config { return e.cfg }

// RegisterFunction names a coefficient function so series built from it can
// be snapshotted and restored.
func (e *Engine[T]) RegisterFunction(name string, f CoefficientFunc[T]) {
	e.functions[name] = f
}

// RegisterMap names a coefficient map for MapNamed.
func (e *Engine[T]) RegisterMap(name string, f func(T) T) {
	e.maps[name] = f
}

func (e *Engine[T]) enter() error {
	if e.depth >= e.cfg.MaxDepth {
		return fmt.Errorf("%w: more than %d nested evaluations, raise MaxDepth or request lower coefficients first", ErrDepthExceeded, e.cfg.MaxDepth)
	}
	e.depth++
	return nil
}

func (e *Engine[T]) leave() { e.depth-- }

func (e *Engine[T]) wrap(n node[T]) *Series[T] {
	return &Series[T]{eng: e, node: n}
}

func (e *Engine[T]) owns(s *Series[T]) {
	if s.eng != e {
		panic("series: operands belong to different engines")
	}
}

// tableized memoizes a pure coefficient map when MapTableSize is set.
func (e *Engine[T]) tableized(f func(T) T) func(T) T {
	if e.cfg.MapTableSize == 0 {
		return f
	}
	return pure.Tableize(f, e.cfg.MapTableSize)
}

// intern returns a previously built node with the same signature, or builds
// and records a new one.
func (e *Engine[T]) intern(sig string, build func() node[T]) node[T] {
	if e.nodes == nil {
		return build()
	}
	key := intern.Fingerprint(sig)
	if n, ok := e.nodes.Lookup(key, func(n node[T]) bool { return signatureOf(n) == sig }); ok {
		e.logger.Debug("shared operator node", zap.String("signature", sig), zap.String("id", n.id()))
		return n
	}
	n := build()
	if l, ok := n.(lazyNode[T]); ok {
		l.base().sig = sig
	}
	e.nodes.Store(key, n)
	return n
}
