package series

import (
	"fmt"

	"go.uber.org/zap"
)

func (e *Engine[T]) one(sparse bool) node[T] {
	return e.exact(e.ops.One(), e.ring.Zero(), 0, sparse)
}

func (e *Engine[T]) constant(c T, sparse bool) node[T] {
	return e.exact(e.ops.Monomial(c, 0), e.ring.Zero(), 0, sparse)
}

// commutative orders the operands of a symmetric operator for its signature.
func commutative[T any](k Kind, l, r node[T]) string {
	if l.id() > r.id() {
		l, r = r, l
	}
	return signature(k, l.sparse(), "", l, r)
}

func (e *Engine[T]) neg(x node[T]) node[T] {
	switch v := x.(type) {
	case *zeroNode[T]:
		return x
	case *exactNode[T]:
		return e.collapsed("negate", e.negExact(v))
	case *negNode[T]:
		return v.x
	}
	return e.intern(signature(KindNegate, x.sparse(), "", x), func() node[T] { return e.newNeg(x) })
}

func (e *Engine[T]) scale(x node[T], s T) node[T] {
	switch {
	case e.ring.IsZero(s):
		return e.zero(x.sparse())
	case e.ring.Equal(s, e.ring.One()), isZeroNode(x):
		return x
	}
	if v, ok := asExact(x); ok {
		return e.collapsed("scale", e.scaleExact(v, s))
	}
	sig := signature(KindScale, x.sparse(), e.ring.Format(s), x)
	return e.intern(sig, func() node[T] { return e.newScale(x, s) })
}

func (e *Engine[T]) add(l, r node[T], subtract bool) node[T] {
	switch {
	case isZeroNode(r):
		return l
	case isZeroNode(l) && subtract:
		return e.neg(r)
	case isZeroNode(l):
		return r
	case subtract && e.sameStructure(l, r), !subtract && e.negationOf(l, r):
		return e.collapsed("cancel", e.zero(l.sparse()))
	}
	a, aok := asExact(l)
	b, bok := asExact(r)
	if aok && bok {
		return e.collapsed("add", e.addExact(a, b, subtract))
	}
	if subtract {
		return e.intern(signature(KindSubtract, l.sparse(), "", l, r), func() node[T] { return e.newAdd(l, r, true) })
	}
	return e.intern(commutative(KindAdd, l, r), func() node[T] { return e.newAdd(l, r, false) })
}

// negationOf reports whether l + r is structurally zero.
func (e *Engine[T]) negationOf(l, r node[T]) bool {
	if n, ok := r.(*negNode[T]); ok && e.sameStructure(n.x, l) {
		return true
	}
	if n, ok := l.(*negNode[T]); ok && e.sameStructure(n.x, r) {
		return true
	}
	return false
}

func (e *Engine[T]) mul(l, r node[T]) node[T] {
	switch {
	case isZeroNode(l), isZeroNode(r):
		return e.zero(l.sparse())
	case e.isOne(l):
		return r
	case e.isOne(r):
		return l
	}
	a, aok := asExact(l)
	b, bok := asExact(r)
	if aok && bok {
		if n, ok := e.mulExact(a, b); ok {
			return e.collapsed("multiply", n)
		}
	}
	return e.intern(commutative(KindMultiply, l, r), func() node[T] { return e.newMul(l, r) })
}

func (e *Engine[T]) div(l, r node[T]) (node[T], error) {
	switch {
	case isZeroNode(r):
		return nil, ErrDivisionByZero
	case isZeroNode(l):
		return l, nil
	case e.isOne(r):
		return l, nil
	}
	a, aok := asExact(l)
	b, bok := asExact(r)
	if aok && bok {
		if n, ok := e.divExact(a, b); ok {
			return e.collapsed("divide", n), nil
		}
	}
	rv, err := e.valuation(r)
	if err != nil {
		return nil, fmt.Errorf("valuation of divisor: %w", err)
	}
	n := e.intern(signature(KindDivide, l.sparse(), "", l, r), func() node[T] { return e.newDiv(l, r, rv) })
	if d, ok := n.(*divNode[T]); ok {
		if _, err := d.unit(); err != nil {
			return nil, fmt.Errorf("divisor: %w", err)
		}
	}
	return n, nil
}

func (e *Engine[T]) invert(x node[T]) (node[T], error) {
	switch v := x.(type) {
	case *zeroNode[T]:
		return nil, ErrDivisionByZero
	case *invNode[T]:
		return v.x, nil
	case *exactNode[T]:
		one, _ := asExact(e.one(v.isSparse))
		if n, ok := e.divExact(one, v); ok {
			return e.collapsed("invert", n), nil
		}
	}
	xv, err := e.valuation(x)
	if err != nil {
		return nil, fmt.Errorf("valuation of inverted series: %w", err)
	}
	n := e.intern(signature(KindInvert, x.sparse(), "", x), func() node[T] { return e.newInv(x, xv) })
	if v, ok := n.(*invNode[T]); ok {
		if _, err := v.unit(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func (e *Engine[T]) pow(x node[T], k int) (node[T], error) {
	if k == 0 {
		return e.one(x.sparse()), nil
	}
	if k < 0 {
		inv, err := e.invert(x)
		if err != nil {
			return nil, err
		}
		x, k = inv, -k
	}
	var res node[T]
	for {
		if k&1 == 1 {
			if res == nil {
				res = x
			} else {
				res = e.mul(res, x)
			}
		}
		k >>= 1
		if k == 0 {
			return res, nil
		}
		x = e.mul(x, x)
	}
}

func (e *Engine[T]) compose(f, g node[T]) (node[T], error) {
	if isZeroNode(f) {
		return f, nil
	}
	if isZeroNode(g) {
		if err := e.requireNonNegative(f); err != nil {
			return nil, err
		}
		c, err := f.coefficient(0)
		if err != nil {
			return nil, err
		}
		return e.collapsed("compose", e.constant(c, f.sparse())), nil
	}
	if x, ok := isPolynomial(f); ok {
		if x.p.Shift == 0 && len(x.p.Coeffs) == 1 {
			return f, nil
		}
		return e.composePolynomial(x, g)
	}

	gv, err := e.positiveValuation(g)
	if err != nil {
		return nil, err
	}
	var ginv node[T]
	if f.approx() < 0 {
		if gv, err = e.valuation(g); err != nil {
			return nil, err
		}
		if ginv, err = e.invert(g); err != nil {
			return nil, fmt.Errorf("%w: inverse of inner series: %w", ErrInvalidComposition, err)
		}
	}
	return e.intern(signature(KindCompose, f.sparse(), "", f, g), func() node[T] { return e.newCompose(f, g, gv, ginv) }), nil
}

// requireNonNegative fails unless f vanishes below index 0.
func (e *Engine[T]) requireNonNegative(f node[T]) error {
	if x, ok := asExact(f); ok {
		if x.valuation() < 0 {
			return fmt.Errorf("%w: outer series has valuation %d", ErrInvalidComposition, x.valuation())
		}
		return nil
	}
	for n := f.approx(); n < 0; n++ {
		c, err := f.coefficient(n)
		if err != nil {
			return err
		}
		if !e.ring.IsZero(c) {
			return fmt.Errorf("%w: outer series has a nonzero coefficient at %d", ErrInvalidComposition, n)
		}
	}
	if l, ok := f.(lazyNode[T]); ok {
		l.base().raise(0)
	}
	return nil
}

// positiveValuation proves that g vanishes at and below index 0, scanning
// coefficients when the bound is not yet known, and returns a positive
// lower bound of its valuation.
func (e *Engine[T]) positiveValuation(g node[T]) (int, error) {
	if x, ok := asExact(g); ok {
		if v := x.valuation(); v <= 0 {
			return 0, fmt.Errorf("%w: inner series has valuation %d", ErrInvalidComposition, v)
		}
		return x.valuation(), nil
	}
	lo := g.approx()
	if lo >= 1 {
		return lo, nil
	}
	e.logger.Debug("scanning inner series for positive valuation", zap.String("id", g.id()), zap.Int("from", lo))
	for n := lo; n <= 0; n++ {
		c, err := g.coefficient(n)
		if err != nil {
			return 0, err
		}
		if !e.ring.IsZero(c) {
			return 0, fmt.Errorf("%w: inner series has a nonzero coefficient at %d", ErrInvalidComposition, n)
		}
	}
	if l, ok := g.(lazyNode[T]); ok {
		l.base().raise(1)
	}
	return 1, nil
}

// composePolynomial substitutes g into a polynomial f. No valuation
// condition on g is needed since the sum is finite.
func (e *Engine[T]) composePolynomial(f *exactNode[T], g node[T]) (node[T], error) {
	if gp, ok := isPolynomial(g); ok {
		if f.p.Shift >= 0 {
			return e.collapsed("compose", e.exact(e.ops.Compose(f.p, gp.p), e.ring.Zero(), 0, f.isSparse)), nil
		}
		if len(gp.p.Coeffs) == 1 {
			if q, err := e.ops.SubstituteMonomial(f.p, gp.p.Coeffs[0], gp.p.Shift); err == nil {
				return e.collapsed("compose", e.exact(q, e.ring.Zero(), 0, f.isSparse)), nil
			}
		}
	}

	res := e.zero(f.isSparse)
	var powers, inv []node[T]
	var ginv node[T]
	for i, c := range f.p.Coeffs {
		if e.ring.IsZero(c) {
			continue
		}
		var term node[T]
		switch k := f.p.Shift + i; {
		case k == 0:
			term = e.constant(c, f.isSparse)
		case k > 0:
			for len(powers) < k {
				if len(powers) == 0 {
					powers = append(powers, g)
				} else {
					powers = append(powers, e.mul(powers[len(powers)-1], g))
				}
			}
			term = e.scale(powers[k-1], c)
		default:
			if ginv == nil {
				var err error
				if ginv, err = e.invert(g); err != nil {
					return nil, fmt.Errorf("%w: inverse of inner series: %w", ErrInvalidComposition, err)
				}
			}
			for len(inv) < -k {
				if len(inv) == 0 {
					inv = append(inv, ginv)
				} else {
					inv = append(inv, e.mul(inv[len(inv)-1], ginv))
				}
			}
			term = e.scale(inv[-k-1], c)
		}
		res = e.add(res, term, false)
	}
	return res, nil
}
