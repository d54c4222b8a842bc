// Package poly implements exact Laurent polynomial arithmetic over a ring.
package poly

import (
	"github.com/on-the-ground/lazy_series_go/ring"
)

// Laurent is a Laurent polynomial: the coefficient of z^(Shift+i) is Coeffs[i].
// Values produced by Ops are normalized: no zero at either end of Coeffs and
// the zero polynomial has no coefficients at all.
type Laurent[T any] struct {
	Shift  int
	Coeffs []T
}

// IsZero reports whether p is the zero polynomial.
func (p Laurent[T]) IsZero() bool { return len(p.Coeffs) == 0 }

// Valuation is the lowest exponent with a nonzero coefficient.
// Only meaningful for nonzero polynomials.
func (p Laurent[T]) Valuation() int { return p.Shift }

// Degree is the highest exponent with a nonzero coefficient.
// Only meaningful for nonzero polynomials.
func (p Laurent[T]) Degree() int { return p.Shift + len(p.Coeffs) - 1 }

// Ops bundles polynomial arithmetic over one coefficient ring.
type Ops[T any] struct {
	r ring.Ring[T]
}

func Over[T any](r ring.Ring[T]) Ops[T] {
	return Ops[T]{r: r}
}

func (o Ops[T]) Ring() ring.Ring[T] { return o.r }

// Normalize trims zeros from both ends without copying the kept elements.
func (o Ops[T]) Normalize(shift int, coeffs []T) Laurent[T] {
	lo, hi := 0, len(coeffs)
	for lo < hi && o.r.IsZero(coeffs[lo]) {
		lo++
	}
	for hi > lo && o.r.IsZero(coeffs[hi-1]) {
		hi--
	}
	if lo == hi {
		return Laurent[T]{}
	}
	return Laurent[T]{Shift: shift + lo, Coeffs: coeffs[lo:hi:hi]}
}

func (o Ops[T]) Monomial(c T, n int) Laurent[T] {
	return o.Normalize(n, []T{c})
}

func (o Ops[T]) One() Laurent[T] {
	return o.Monomial(o.r.One(), 0)
}

// Coefficient returns the coefficient of z^n.
func (o Ops[T]) Coefficient(p Laurent[T], n int) T {
	i := n - p.Shift
	if i < 0 || i >= len(p.Coeffs) {
		return o.r.Zero()
	}
	return p.Coeffs[i]
}

// Range lists the coefficients of z^from .. z^(to-1).
func (o Ops[T]) Range(p Laurent[T], from, to int) []T {
	out := make([]T, 0, max(to-from, 0))
	for n := from; n < to; n++ {
		out = append(out, o.Coefficient(p, n))
	}
	return out
}

func (o Ops[T]) Add(a, b Laurent[T]) Laurent[T] {
	return o.combine(a, b, o.r.Add)
}

func (o Ops[T]) Sub(a, b Laurent[T]) Laurent[T] {
	return o.combine(a, b, o.r.Sub)
}

func (o Ops[T]) combine(a, b Laurent[T], op func(T, T) T) Laurent[T] {
	if a.IsZero() && b.IsZero() {
		return Laurent[T]{}
	}
	lo, hi := bounds(a, b)
	coeffs := make([]T, hi-lo)
	for i := range coeffs {
		coeffs[i] = op(o.Coefficient(a, lo+i), o.Coefficient(b, lo+i))
	}
	return o.Normalize(lo, coeffs)
}

func bounds[T any](a, b Laurent[T]) (lo, hi int) {
	switch {
	case a.IsZero():
		return b.Shift, b.Shift + len(b.Coeffs)
	case b.IsZero():
		return a.Shift, a.Shift + len(a.Coeffs)
	}
	return min(a.Shift, b.Shift), max(a.Shift+len(a.Coeffs), b.Shift+len(b.Coeffs))
}

func (o Ops[T]) Neg(p Laurent[T]) Laurent[T] {
	coeffs := make([]T, len(p.Coeffs))
	for i, c := range p.Coeffs {
		coeffs[i] = o.r.Neg(c)
	}
	return o.Normalize(p.Shift, coeffs)
}

func (o Ops[T]) Scale(p Laurent[T], c T) Laurent[T] {
	coeffs := make([]T, len(p.Coeffs))
	for i, a := range p.Coeffs {
		coeffs[i] = o.r.Mul(a, c)
	}
	return o.Normalize(p.Shift, coeffs)
}

// ShiftBy multiplies p by z^k.
func (o Ops[T]) ShiftBy(p Laurent[T], k int) Laurent[T] {
	if p.IsZero() {
		return p
	}
	return Laurent[T]{Shift: p.Shift + k, Coeffs: p.Coeffs}
}

func (o Ops[T]) Mul(a, b Laurent[T]) Laurent[T] {
	if a.IsZero() || b.IsZero() {
		return Laurent[T]{}
	}
	coeffs := make([]T, len(a.Coeffs)+len(b.Coeffs)-1)
	for i := range coeffs {
		coeffs[i] = o.r.Zero()
	}
	for i, x := range a.Coeffs {
		if o.r.IsZero(x) {
			continue
		}
		for j, y := range b.Coeffs {
			coeffs[i+j] = o.r.Add(coeffs[i+j], o.r.Mul(x, y))
		}
	}
	return o.Normalize(a.Shift+b.Shift, coeffs)
}

// MulOneMinusZ returns p·(1−z).
func (o Ops[T]) MulOneMinusZ(p Laurent[T]) Laurent[T] {
	return o.Sub(p, o.ShiftBy(p, 1))
}

// DivExact returns a/b when b divides a exactly. The lowest coefficient of b
// must be a unit; otherwise the division is reported as inexact.
func (o Ops[T]) DivExact(a, b Laurent[T]) (Laurent[T], bool) {
	if b.IsZero() {
		return Laurent[T]{}, false
	}
	if a.IsZero() {
		return Laurent[T]{}, true
	}
	if len(a.Coeffs) < len(b.Coeffs) {
		return Laurent[T]{}, false
	}
	lead, err := o.r.Inverse(b.Coeffs[0])
	if err != nil {
		return Laurent[T]{}, false
	}
	rem := make([]T, len(a.Coeffs))
	copy(rem, a.Coeffs)
	q := make([]T, len(a.Coeffs)-len(b.Coeffs)+1)
	for i := range q {
		q[i] = o.r.Mul(rem[i], lead)
		if o.r.IsZero(q[i]) {
			continue
		}
		for j, c := range b.Coeffs {
			rem[i+j] = o.r.Sub(rem[i+j], o.r.Mul(q[i], c))
		}
	}
	for _, c := range rem {
		if !o.r.IsZero(c) {
			return Laurent[T]{}, false
		}
	}
	return o.Normalize(a.Shift-b.Shift, q), true
}

// Compose substitutes g for the variable of f. f must not have negative
// exponents.
func (o Ops[T]) Compose(f, g Laurent[T]) Laurent[T] {
	if f.IsZero() {
		return f
	}
	if f.Shift < 0 {
		panic("poly: Compose requires non-negative exponents")
	}
	res := Laurent[T]{}
	for e := f.Degree(); e >= 0; e-- {
		res = o.Add(o.Mul(res, g), o.Monomial(o.Coefficient(f, e), 0))
	}
	return res
}

// SubstituteMonomial evaluates f at c·z^k. Negative exponents of f need c to
// be a unit.
func (o Ops[T]) SubstituteMonomial(f Laurent[T], c T, k int) (Laurent[T], error) {
	res := Laurent[T]{}
	var inv T
	if f.Shift < 0 {
		var err error
		if inv, err = o.r.Inverse(c); err != nil {
			return Laurent[T]{}, err
		}
	}
	for i, a := range f.Coeffs {
		e := f.Shift + i
		var factor T
		if e >= 0 {
			factor = ring.Pow(o.r, c, e)
		} else {
			factor = ring.Pow(o.r, inv, -e)
		}
		res = o.Add(res, o.Monomial(o.r.Mul(a, factor), k*e))
	}
	return res, nil
}

// Sum evaluates p at z = 1.
func (o Ops[T]) Sum(p Laurent[T]) T {
	s := o.r.Zero()
	for _, c := range p.Coeffs {
		s = o.r.Add(s, c)
	}
	return s
}

// Accumulate returns the eventually constant form of q/(1−z): the partial
// sums of q below its degree, and the total from the degree on.
func (o Ops[T]) Accumulate(q Laurent[T]) (p Laurent[T], constant T, degree int) {
	if q.IsZero() {
		return q, o.r.Zero(), 0
	}
	sums := make([]T, len(q.Coeffs))
	acc := o.r.Zero()
	for i, c := range q.Coeffs {
		acc = o.r.Add(acc, c)
		sums[i] = acc
	}
	return o.Normalize(q.Shift, sums[:len(sums)-1]), acc, q.Degree()
}

func (o Ops[T]) Equal(a, b Laurent[T]) bool {
	if len(a.Coeffs) != len(b.Coeffs) {
		return false
	}
	if a.IsZero() {
		return true
	}
	if a.Shift != b.Shift {
		return false
	}
	for i := range a.Coeffs {
		if !o.r.Equal(a.Coeffs[i], b.Coeffs[i]) {
			return false
		}
	}
	return true
}

func (o Ops[T]) IsOne(p Laurent[T]) bool {
	return len(p.Coeffs) == 1 && p.Shift == 0 && o.r.Equal(p.Coeffs[0], o.r.One())
}

// Map applies fn to every stored coefficient, interior zeros included.
func (o Ops[T]) Map(p Laurent[T], fn func(T) T) Laurent[T] {
	coeffs := make([]T, len(p.Coeffs))
	for i, c := range p.Coeffs {
		coeffs[i] = fn(c)
	}
	return o.Normalize(p.Shift, coeffs)
}

// Transform maps p into another ring, applying fn to every stored coefficient.
func Transform[S, T any](p Laurent[S], to Ops[T], fn func(S) (T, error)) (Laurent[T], error) {
	coeffs := make([]T, len(p.Coeffs))
	for i, c := range p.Coeffs {
		v, err := fn(c)
		if err != nil {
			return Laurent[T]{}, err
		}
		coeffs[i] = v
	}
	return to.Normalize(p.Shift, coeffs), nil
}
