// Package gallery builds well-known generating functions, mostly through
// self-referential definitions and composition.
package gallery

import (
	"fmt"
	"slices"

	"github.com/on-the-ground/lazy_series_go/series"
)

// ExpFunction is the registered name of the coefficient function of exp(z).
const ExpFunction = "exp"

// Builder makes one gallery series in engine e.
type Builder[T any] func(e *series.Engine[T], sparse bool) (*series.Series[T], error)

// Register installs the named coefficient functions gallery series use, so
// their snapshots can be restored in e.
func Register[T any](e *series.Engine[T]) {
	r := e.Ring()
	e.RegisterFunction(ExpFunction, func(n int) (T, error) {
		fact := r.One()
		for k := 2; k <= n; k++ {
			fact = r.Mul(fact, r.FromInt64(int64(k)))
		}
		inv, err := r.Inverse(fact)
		if err != nil {
			return inv, fmt.Errorf("1/%d! in %s: %w", n, r.Name(), err)
		}
		return inv, nil
	})
}

// Builders lists every gallery series by name.
func Builders[T any]() map[string]Builder[T] {
	return map[string]Builder[T]{
		"catalan":      Catalan[T],
		"motzkin":      Motzkin[T],
		"binary-trees": BinaryTrees[T],
		"fibonacci":    Fibonacci[T],
		"powers-of-2":  PowersOfTwo[T],
		"exp":          Exp[T],
		"bell":         BellEGF[T],
		"derangements": Derangements[T],
	}
}

// Names lists the gallery in alphabetical order.
func Names() []string {
	names := make([]string, 0, 8)
	for name := range Builders[int64]() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Build registers the gallery functions in e and builds the named series.
func Build[T any](e *series.Engine[T], name string, sparse bool) (*series.Series[T], error) {
	b, ok := Builders[T]()[name]
	if !ok {
		return nil, fmt.Errorf("unknown gallery series %q", name)
	}
	Register(e)
	return b(e, sparse)
}

// Catalan is C = 1 + z·C², counting binary trees by internal nodes.
func Catalan[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	c := e.Placeholder(sparse, 0)
	z := e.Gen(sparse)
	if err := c.Define(e.One(sparse).Add(z.Mul(c.Mul(c)))); err != nil {
		return nil, err
	}
	return c, nil
}

// Motzkin is M = 1 + z·M + z²·M².
func Motzkin[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	m := e.Placeholder(sparse, 0)
	z := e.Gen(sparse)
	z2 := e.Monomial(e.Ring().One(), 2, sparse)
	if err := m.Define(e.One(sparse).Add(z.Mul(m)).Add(z2.Mul(m.Mul(m)))); err != nil {
		return nil, err
	}
	return m, nil
}

// BinaryTrees is T = z + T², binary trees counted by leaves. The declared
// valuation 1 makes T² start at z², which keeps the definition productive.
func BinaryTrees[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	t := e.Placeholder(sparse, 1)
	if err := t.Define(e.Gen(sparse).Add(t.Mul(t))); err != nil {
		return nil, err
	}
	return t, nil
}

// Fibonacci is z/(1 − z − z²).
func Fibonacci[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	r := e.Ring()
	den := e.FromPolynomial([]T{r.One(), r.FromInt64(-1), r.FromInt64(-1)}, 0, sparse)
	return e.Gen(sparse).Div(den)
}

// Geometric is 1/(1 − q·z).
func Geometric[T any](e *series.Engine[T], q T, sparse bool) (*series.Series[T], error) {
	r := e.Ring()
	return e.FromPolynomial([]T{r.One(), r.Neg(q)}, 0, sparse).Invert()
}

// PowersOfTwo is 1/(1 − 2z).
func PowersOfTwo[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	return Geometric(e, e.Ring().FromInt64(2), sparse)
}

// Exp is Σ zⁿ/n!. It needs n! to be invertible in the coefficient ring.
func Exp[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	Register(e)
	return e.FromNamedFunction(ExpFunction, 0, sparse)
}

// BellEGF is exp(exp(z) − 1), the exponential generating function of the
// Bell numbers.
func BellEGF[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	exp, err := Exp(e, sparse)
	if err != nil {
		return nil, err
	}
	return exp.Compose(exp.Sub(e.One(sparse)))
}

// Derangements is exp(−z)/(1 − z), the exponential generating function of
// permutations without fixed points.
func Derangements[T any](e *series.Engine[T], sparse bool) (*series.Series[T], error) {
	exp, err := Exp(e, sparse)
	if err != nil {
		return nil, err
	}
	r := e.Ring()
	expNeg, err := exp.Compose(e.Monomial(r.FromInt64(-1), 1, sparse))
	if err != nil {
		return nil, err
	}
	return expNeg.Div(e.FromPolynomial([]T{r.One(), r.FromInt64(-1)}, 0, sparse))
}

// EGFCoefficients multiplies the first n coefficients of an exponential
// generating function by k!, recovering the counting sequence.
func EGFCoefficients[T any](s *series.Series[T], n int) ([]T, error) {
	r := s.Engine().Ring()
	coeffs, err := s.Slice(series.From(0), series.Until(n))
	if err != nil {
		return nil, err
	}
	fact := r.One()
	for k := range coeffs {
		if k > 1 {
			fact = r.Mul(fact, r.FromInt64(int64(k)))
		}
		coeffs[k] = r.Mul(coeffs[k], fact)
	}
	return coeffs, nil
}
