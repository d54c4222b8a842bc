package series

import (
	"fmt"
)

// Equal compares two series. Closed forms compare exactly and structurally
// identical expressions are equal. Otherwise coefficients are compared from
// the lower approximate valuation up to EqualityLookahead past the higher
// one; without a difference the answer is ErrUndecidable.
func (s *Series[T]) Equal(o *Series[T]) (bool, error) {
	s.eng.owns(o)
	e := s.eng
	a, b := s.node, o.node
	if a == b {
		return true, nil
	}
	_, aExact := asExact(a)
	_, bExact := asExact(b)
	az, bz := isZeroNode(a), isZeroNode(b)
	switch {
	case az && bz:
		return true, nil
	case (az || aExact) && (bz || bExact):
		return e.sameStructure(a, b), nil
	case e.sameStructure(a, b):
		return true, nil
	}

	lo, hi := lookaheadWindow(a.approx(), b.approx(), e.cfg.EqualityLookahead)
	for n := lo; n < hi; n++ {
		x, err := a.coefficient(n)
		if err != nil {
			return false, err
		}
		y, err := b.coefficient(n)
		if err != nil {
			return false, err
		}
		if !e.ring.Equal(x, y) {
			return false, nil
		}
	}
	return false, fmt.Errorf("%w: no difference in coefficients [%d, %d)", ErrUndecidable, lo, hi)
}

func lookaheadWindow(va, vb, lookahead int) (lo, hi int) {
	switch {
	case va == Infinity:
		return vb, vb + lookahead
	case vb == Infinity:
		return va, va + lookahead
	}
	return min(va, vb), max(va, vb) + lookahead
}

// NonZero reports whether s has a nonzero coefficient. A lazily defined
// series answers true once a nonzero coefficient is found among the cached
// ones or the first EqualityLookahead ones; otherwise ErrUndecidable.
func (s *Series[T]) NonZero() (bool, error) {
	e := s.eng
	switch s.node.(type) {
	case *zeroNode[T]:
		return false, nil
	case *exactNode[T]:
		return true, nil
	}
	l := s.node.(lazyNode[T]).base()
	found := false
	l.memo.Range(func(_ int, c T) bool {
		found = !e.ring.IsZero(c)
		return !found
	})
	if found {
		return true, nil
	}
	lo := l.lo
	for n := lo; n < lo+e.cfg.EqualityLookahead; n++ {
		c, err := s.node.coefficient(n)
		if err != nil {
			return false, err
		}
		if !e.ring.IsZero(c) {
			return true, nil
		}
	}
	return false, fmt.Errorf("%w: first %d coefficients vanish", ErrUndecidable, e.cfg.EqualityLookahead)
}

// sameStructure reports whether a and b are built by the same operators from
// the same sources. Function, placeholder and apply nodes only equal themselves.
func (e *Engine[T]) sameStructure(a, b node[T]) bool {
	if a == b {
		return true
	}
	if a.kind() != b.kind() {
		return false
	}
	switch x := a.(type) {
	case *zeroNode[T]:
		return true
	case *exactNode[T]:
		return e.equalExact(x, b.(*exactNode[T]))
	case *negNode[T]:
		return e.sameStructure(x.x, b.(*negNode[T]).x)
	case *scaleNode[T]:
		y := b.(*scaleNode[T])
		return e.ring.Equal(x.scalar, y.scalar) && e.sameStructure(x.x, y.x)
	case *addNode[T]:
		y := b.(*addNode[T])
		if x.subtract {
			return e.sameStructure(x.l, y.l) && e.sameStructure(x.r, y.r)
		}
		return e.samePair(x.l, x.r, y.l, y.r)
	case *mulNode[T]:
		y := b.(*mulNode[T])
		return e.samePair(x.l, x.r, y.l, y.r)
	case *divNode[T]:
		y := b.(*divNode[T])
		return e.sameStructure(x.l, y.l) && e.sameStructure(x.r, y.r)
	case *invNode[T]:
		return e.sameStructure(x.x, b.(*invNode[T]).x)
	case *composeNode[T]:
		y := b.(*composeNode[T])
		return e.sameStructure(x.f, y.f) && e.sameStructure(x.g, y.g)
	}
	return false
}

// samePair compares the operands of a commutative operator in either order.
func (e *Engine[T]) samePair(a1, a2, b1, b2 node[T]) bool {
	return (e.sameStructure(a1, b1) && e.sameStructure(a2, b2)) ||
		(e.sameStructure(a1, b2) && e.sameStructure(a2, b1))
}
