package series

import (
	"fmt"
)

// divNode solves l = q·r for q one coefficient at a time. rv is the exact
// valuation of r, whose coefficient there must be a unit.
type divNode[T any] struct {
	lazy[T]
	l, r  node[T]
	rv    int
	ainv  T
	ready bool
}

func (e *Engine[T]) newDiv(l, r node[T], rv int) *divNode[T] {
	n := &divNode[T]{lazy: newLazy(e, l.approx()-rv, l.sparse()), l: l, r: r, rv: rv}
	n.formula = n.compute
	return n
}

func (n *divNode[T]) kind() Kind          { return KindDivide }
func (n *divNode[T]) operands() []node[T] { return []node[T]{n.l, n.r} }

func (n *divNode[T]) unit() (T, error) {
	if !n.ready {
		inv, err := leadingInverse(n.eng, n.r, n.rv)
		if err != nil {
			return inv, err
		}
		n.ainv, n.ready = inv, true
	}
	return n.ainv, nil
}

func (n *divNode[T]) compute(k int) (T, error) {
	rg := n.eng.ring
	ainv, err := n.unit()
	if err != nil {
		return ainv, err
	}
	sum, err := n.l.coefficient(k + n.rv)
	if err != nil {
		return sum, err
	}
	for i := n.lo; i < k; i++ {
		c, err := n.coefficient(i)
		if err != nil {
			return c, err
		}
		if rg.IsZero(c) {
			continue
		}
		b, err := n.r.coefficient(k + n.rv - i)
		if err != nil {
			return b, err
		}
		sum = rg.Sub(sum, rg.Mul(c, b))
	}
	return rg.Mul(sum, ainv), nil
}

// invNode is 1/x for x of exact valuation xv.
type invNode[T any] struct {
	lazy[T]
	x     node[T]
	xv    int
	ainv  T
	ready bool
}

func (e *Engine[T]) newInv(x node[T], xv int) *invNode[T] {
	n := &invNode[T]{lazy: newLazy(e, -xv, x.sparse()), x: x, xv: xv}
	n.formula = n.compute
	return n
}

func (n *invNode[T]) kind() Kind          { return KindInvert }
func (n *invNode[T]) operands() []node[T] { return []node[T]{n.x} }

func (n *invNode[T]) unit() (T, error) {
	if !n.ready {
		inv, err := leadingInverse(n.eng, n.x, n.xv)
		if err != nil {
			return inv, err
		}
		n.ainv, n.ready = inv, true
	}
	return n.ainv, nil
}

func (n *invNode[T]) compute(k int) (T, error) {
	rg := n.eng.ring
	ainv, err := n.unit()
	if err != nil || k == -n.xv {
		return ainv, err
	}
	sum := rg.Zero()
	for i := n.lo; i < k; i++ {
		c, err := n.coefficient(i)
		if err != nil {
			return c, err
		}
		if rg.IsZero(c) {
			continue
		}
		b, err := n.x.coefficient(k + n.xv - i)
		if err != nil {
			return b, err
		}
		sum = rg.Add(sum, rg.Mul(c, b))
	}
	return rg.Neg(rg.Mul(sum, ainv)), nil
}

func leadingInverse[T any](e *Engine[T], x node[T], v int) (T, error) {
	c, err := x.coefficient(v)
	if err != nil {
		return c, err
	}
	inv, err := e.ring.Inverse(c)
	if err != nil {
		return inv, fmt.Errorf("leading coefficient at %d: %w", v, err)
	}
	return inv, nil
}
