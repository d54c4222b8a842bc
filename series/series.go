package series

import (
	"fmt"
	"slices"
)

// Series is a lazily evaluated formal Laurent series. Coefficients are
// computed on first request and cached.
type Series[T any] struct {
	eng  *Engine[T]
	node node[T]
}

// FromCoefficientFunction builds the series whose coefficient n is f(n) for
// n >= valuation and zero below. f must be deterministic.
func (e *Engine[T]) FromCoefficientFunction(f CoefficientFunc[T], valuation int, sparse bool) *Series[T] {
	return e.wrap(e.newFunc(f, "", valuation, sparse))
}

// FromNamedFunction is FromCoefficientFunction with a registered function, so
// the series can be snapshotted.
func (e *Engine[T]) FromNamedFunction(name string, valuation int, sparse bool) (*Series[T], error) {
	f, ok := e.functions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFunction, name)
	}
	return e.wrap(e.newFunc(f, name, valuation, sparse)), nil
}

// FromPolynomial builds the finite series Σ coeffs[i]·z^(shift+i).
func (e *Engine[T]) FromPolynomial(coeffs []T, shift int, sparse bool) *Series[T] {
	p := e.ops.Normalize(shift, slices.Clone(coeffs))
	return e.wrap(e.exact(p, e.ring.Zero(), 0, sparse))
}

// FromPolynomialWithTail builds the series equal to the polynomial below
// degree and to constant from degree on. The polynomial must vanish at and
// above degree.
func (e *Engine[T]) FromPolynomialWithTail(coeffs []T, shift int, sparse bool, constant T, degree int) (*Series[T], error) {
	p := e.ops.Normalize(shift, slices.Clone(coeffs))
	if !e.ring.IsZero(constant) && !p.IsZero() && p.Degree() >= degree {
		return nil, fmt.Errorf("%w: polynomial of degree %d reaches into the tail starting at %d", ErrInvalidDegree, p.Degree(), degree)
	}
	return e.wrap(e.exact(p, constant, degree, sparse)), nil
}

func (e *Engine[T]) Zero(sparse bool) *Series[T] { return e.wrap(e.zero(sparse)) }

func (e *Engine[T]) One(sparse bool) *Series[T] { return e.wrap(e.one(sparse)) }

// Gen is the series variable z.
func (e *Engine[T]) Gen(sparse bool) *Series[T] {
	return e.Monomial(e.ring.One(), 1, sparse)
}

func (e *Engine[T]) Constant(c T, sparse bool) *Series[T] {
	return e.wrap(e.constant(c, sparse))
}

// Monomial is c·z^n.
func (e *Engine[T]) Monomial(c T, n int, sparse bool) *Series[T] {
	return e.wrap(e.exact(e.ops.Monomial(c, n), e.ring.Zero(), 0, sparse))
}

// Placeholder declares a series to be bound later with Define. Coefficients
// below valuation are taken to be zero.
func (e *Engine[T]) Placeholder(sparse bool, valuation int) *Series[T] {
	return e.wrap(e.newPlaceholder(valuation, sparse))
}

func (s *Series[T]) Engine() *Engine[T] { return s.eng }

// ID identifies the node behind the series.
func (s *Series[T]) ID() string { return s.node.id() }

func (s *Series[T]) Kind() Kind { return s.node.kind() }

func (s *Series[T]) Sparse() bool { return s.node.sparse() }

// ApproximateValuation is the current lower bound of the valuation.
func (s *Series[T]) ApproximateValuation() int { return s.node.approx() }

func (s *Series[T]) Coefficient(n int) (T, error) {
	return s.node.coefficient(n)
}

// Valuation returns the index of the first nonzero coefficient, or Infinity
// for the zero series. A lazily defined series is scanned upward from its
// approximate valuation; see Config.MaxValuationScan.
func (s *Series[T]) Valuation() (int, error) {
	return s.eng.valuation(s.node)
}

func (e *Engine[T]) valuation(n node[T]) (int, error) {
	switch v := n.(type) {
	case *zeroNode[T]:
		return Infinity, nil
	case *exactNode[T]:
		return v.valuation(), nil
	}
	l := n.(lazyNode[T]).base()
	start := l.lo
	for k := start; ; k++ {
		if limit := e.cfg.MaxValuationScan; limit > 0 && k-start >= limit {
			return 0, fmt.Errorf("%w: no nonzero coefficient in [%d, %d)", ErrUndecidable, start, k)
		}
		c, err := n.coefficient(k)
		if err != nil {
			return 0, err
		}
		if !e.ring.IsZero(c) {
			l.raise(k)
			return k, nil
		}
	}
}

type window struct {
	from, until, step int
	hasFrom, hasUntil bool
}

type SliceOption func(*window)

func From(n int) SliceOption {
	return func(w *window) { w.from, w.hasFrom = n, true }
}

// Until is the exclusive end of a slice. It is required.
func Until(n int) SliceOption {
	return func(w *window) { w.until, w.hasUntil = n, true }
}

func Step(k int) SliceOption {
	return func(w *window) { w.step = k }
}

// Slice lists coefficients from From (default: the valuation) up to, but not
// including, Until. A negative Step walks downward and needs an explicit From.
func (s *Series[T]) Slice(opts ...SliceOption) ([]T, error) {
	w := window{step: 1}
	for _, opt := range opts {
		opt(&w)
	}
	switch {
	case !w.hasUntil:
		return nil, fmt.Errorf("%w: unbounded slice", ErrUnsupportedOperation)
	case w.step == 0:
		return nil, fmt.Errorf("%w: zero slice step", ErrUnsupportedOperation)
	case !w.hasFrom && w.step < 0:
		return nil, fmt.Errorf("%w: descending slice without a start", ErrUnsupportedOperation)
	case !w.hasFrom:
		v, err := s.Valuation()
		if err != nil {
			return nil, err
		}
		w.from = min(v, w.until)
	}

	var out []T
	for n := w.from; (w.step > 0 && n < w.until) || (w.step < 0 && n > w.until); n += w.step {
		c, err := s.node.coefficient(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Series[T]) Add(o *Series[T]) *Series[T] {
	s.eng.owns(o)
	return s.eng.wrap(s.eng.add(s.node, o.node, false))
}

func (s *Series[T]) Sub(o *Series[T]) *Series[T] {
	s.eng.owns(o)
	return s.eng.wrap(s.eng.add(s.node, o.node, true))
}

func (s *Series[T]) Neg() *Series[T] {
	return s.eng.wrap(s.eng.neg(s.node))
}

// Scale multiplies every coefficient by c.
func (s *Series[T]) Scale(c T) *Series[T] {
	return s.eng.wrap(s.eng.scale(s.node, c))
}

func (s *Series[T]) Mul(o *Series[T]) *Series[T] {
	s.eng.owns(o)
	return s.eng.wrap(s.eng.mul(s.node, o.node))
}

// Div returns s/o. The coefficient of o at its valuation must be a unit.
func (s *Series[T]) Div(o *Series[T]) (*Series[T], error) {
	s.eng.owns(o)
	n, err := s.eng.div(s.node, o.node)
	if err != nil {
		return nil, err
	}
	return s.eng.wrap(n), nil
}

func (s *Series[T]) Invert() (*Series[T], error) {
	n, err := s.eng.invert(s.node)
	if err != nil {
		return nil, err
	}
	return s.eng.wrap(n), nil
}

// Pow raises s to any integer power; negative powers go through Invert.
func (s *Series[T]) Pow(k int) (*Series[T], error) {
	n, err := s.eng.pow(s.node, k)
	if err != nil {
		return nil, err
	}
	return s.eng.wrap(n), nil
}

// Compose returns s(g). Unless s is a polynomial, g must have positive
// valuation.
func (s *Series[T]) Compose(g *Series[T]) (*Series[T], error) {
	s.eng.owns(g)
	n, err := s.eng.compose(s.node, g.node)
	if err != nil {
		return nil, err
	}
	return s.eng.wrap(n), nil
}
