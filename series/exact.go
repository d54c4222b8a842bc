package series

import (
	"go.uber.org/zap"

	"github.com/on-the-ground/lazy_series_go/internal/poly"
)

type zeroNode[T any] struct {
	ident    string
	eng      *Engine[T]
	isSparse bool
}

func (z *zeroNode[T]) id() string { return z.ident }
func (z *zeroNode[T]) kind() Kind { return KindZero }
func (z *zeroNode[T]) approx() int { return Infinity }
func (z *zeroNode[T]) coefficient(int) (T, error) { return z.eng.ring.Zero(), nil }
func (z *zeroNode[T]) sparse() bool { return z.isSparse }
func (z *zeroNode[T]) operands() []node[T] { return nil }

// exactNode is an eventually constant series: p below degree, constant from
// degree on. It is normalized so that equal series have equal fields: p has
// no coefficient at or above degree, a zero constant puts degree right above
// p, and a nonzero constant never equals the coefficient at degree-1.
type exactNode[T any] struct {
	ident    string
	eng      *Engine[T]
	p        poly.Laurent[T]
	constant T
	degree   int
	isSparse bool
}

func (x *exactNode[T]) id() string { return x.ident }
func (x *exactNode[T]) kind() Kind { return KindExact }
func (x *exactNode[T]) approx() int { return x.valuation() }
func (x *exactNode[T]) sparse() bool { return x.isSparse }
func (x *exactNode[T]) operands() []node[T] { return nil }

func (x *exactNode[T]) coefficient(n int) (T, error) {
	if n >= x.degree {
		return x.constant, nil
	}
	return x.eng.ops.Coefficient(x.p, n), nil
}

func (x *exactNode[T]) valuation() int {
	if !x.p.IsZero() {
		return x.p.Shift
	}
	return x.degree
}

func (x *exactNode[T]) hasTail() bool { return !x.eng.ring.IsZero(x.constant) }

// numerator returns N with x = N/(1−z) when x has a tail, else x itself.
func (x *exactNode[T]) numerator() (poly.Laurent[T], bool) {
	ops := x.eng.ops
	if !x.hasTail() {
		return x.p, false
	}
	return ops.Add(ops.MulOneMinusZ(x.p), ops.Monomial(x.constant, x.degree)), true
}

// padded spells out the coefficients of x below d as a polynomial, d >= x.degree.
func (x *exactNode[T]) padded(d int) poly.Laurent[T] {
	if !x.hasTail() || d <= x.degree {
		return x.p
	}
	tail := make([]T, d-x.degree)
	for i := range tail {
		tail[i] = x.constant
	}
	return x.eng.ops.Add(x.p, x.eng.ops.Normalize(x.degree, tail))
}

// span spells out every coefficient of x from its valuation up to degree.
// Interior zeros are kept, so the result is not normalized.
func (x *exactNode[T]) span() poly.Laurent[T] {
	lo := x.valuation()
	return poly.Laurent[T]{Shift: lo, Coeffs: x.eng.ops.Range(x.p, lo, x.degree)}
}

func (e *Engine[T]) zero(sparse bool) node[T] {
	return &zeroNode[T]{ident: newID(), eng: e, isSparse: sparse}
}

// exact builds the normalized eventually constant node. p must vanish at and
// above degree when the constant is nonzero.
func (e *Engine[T]) exact(p poly.Laurent[T], constant T, degree int, sparse bool) node[T] {
	r := e.ring
	if r.IsZero(constant) {
		if p.IsZero() {
			return e.zero(sparse)
		}
		return &exactNode[T]{ident: newID(), eng: e, p: p, constant: r.Zero(), degree: p.Degree() + 1, isSparse: sparse}
	}
	for !p.IsZero() && p.Degree() == degree-1 && r.Equal(p.Coeffs[len(p.Coeffs)-1], constant) {
		p = e.ops.Normalize(p.Shift, p.Coeffs[:len(p.Coeffs)-1])
		degree--
	}
	return &exactNode[T]{ident: newID(), eng: e, p: p, constant: constant, degree: degree, isSparse: sparse}
}

// accumulated builds q/(1−z).
func (e *Engine[T]) accumulated(q poly.Laurent[T], sparse bool) node[T] {
	p, constant, degree := e.ops.Accumulate(q)
	return e.exact(p, constant, degree, sparse)
}

func asExact[T any](n node[T]) (*exactNode[T], bool) {
	x, ok := n.(*exactNode[T])
	return x, ok
}

func isZeroNode[T any](n node[T]) bool {
	_, ok := n.(*zeroNode[T])
	return ok
}

// isPolynomial reports whether n is exact with a zero tail.
func isPolynomial[T any](n node[T]) (*exactNode[T], bool) {
	x, ok := asExact(n)
	if !ok || x.hasTail() {
		return nil, false
	}
	return x, true
}

func (e *Engine[T]) isOne(n node[T]) bool {
	x, ok := isPolynomial(n)
	return ok && e.ops.IsOne(x.p)
}

func (e *Engine[T]) negExact(a *exactNode[T]) node[T] {
	return e.exact(e.ops.Neg(a.p), e.ring.Neg(a.constant), a.degree, a.isSparse)
}

func (e *Engine[T]) scaleExact(a *exactNode[T], s T) node[T] {
	return e.exact(e.ops.Scale(a.p, s), e.ring.Mul(a.constant, s), a.degree, a.isSparse)
}

// addExact pads both operands to a common degree and combines them termwise.
func (e *Engine[T]) addExact(a, b *exactNode[T], subtract bool) node[T] {
	d := max(a.degree, b.degree)
	pa, pb := a.padded(d), b.padded(d)
	if subtract {
		return e.exact(e.ops.Sub(pa, pb), e.ring.Sub(a.constant, b.constant), d, a.isSparse)
	}
	return e.exact(e.ops.Add(pa, pb), e.ring.Add(a.constant, b.constant), d, a.isSparse)
}

// mulExact stays closed when at least one tail is zero.
func (e *Engine[T]) mulExact(a, b *exactNode[T]) (node[T], bool) {
	na, ta := a.numerator()
	nb, tb := b.numerator()
	switch {
	case ta && tb:
		return nil, false
	case ta || tb:
		return e.accumulated(e.ops.Mul(na, nb), a.isSparse), true
	}
	return e.exact(e.ops.Mul(na, nb), e.ring.Zero(), 0, a.isSparse), true
}

// divExact returns a/b when the quotient is again eventually constant and at
// most one operand has a tail.
func (e *Engine[T]) divExact(a, b *exactNode[T]) (node[T], bool) {
	na, ta := a.numerator()
	nb, tb := b.numerator()
	if ta && tb {
		return nil, false
	}
	num := na
	if tb {
		num = e.ops.MulOneMinusZ(num)
	}
	if q, ok := e.ops.DivExact(num, nb); ok {
		if ta {
			return e.accumulated(q, a.isSparse), true
		}
		return e.exact(q, e.ring.Zero(), 0, a.isSparse), true
	}
	if !ta {
		if q, ok := e.ops.DivExact(e.ops.MulOneMinusZ(num), nb); ok {
			return e.accumulated(q, a.isSparse), true
		}
	}
	return nil, false
}

// mapExact applies f from the valuation on: to every coefficient below degree,
// zeros included, and to the tail.
func (e *Engine[T]) mapExact(a *exactNode[T], f func(T) T) node[T] {
	return e.exact(e.ops.Map(a.span(), f), f(a.constant), a.degree, a.isSparse)
}

func (e *Engine[T]) truncateExact(a *exactNode[T], d int) node[T] {
	if d >= a.degree {
		return e.exact(a.padded(d), e.ring.Zero(), 0, a.isSparse)
	}
	lo := a.valuation()
	if d <= lo {
		return e.zero(a.isSparse)
	}
	return e.exact(e.ops.Normalize(lo, e.ops.Range(a.p, lo, d)), e.ring.Zero(), 0, a.isSparse)
}

func (e *Engine[T]) equalExact(a, b *exactNode[T]) bool {
	if !e.ring.Equal(a.constant, b.constant) {
		return false
	}
	d := max(a.degree, b.degree)
	return e.ops.Equal(a.padded(d), b.padded(d))
}

func (e *Engine[T]) collapsed(op string, n node[T]) node[T] {
	e.logger.Debug("closed form", zap.String("op", op), zap.String("kind", string(n.kind())))
	return n
}
