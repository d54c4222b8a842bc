package series

import (
	"fmt"

	"github.com/on-the-ground/lazy_series_go/internal/poly"
	"github.com/on-the-ground/lazy_series_go/pure"
	"github.com/on-the-ground/lazy_series_go/ring"
)

// Laurent is a finite Laurent polynomial: Coeffs[i] belongs to z^(Shift+i).
type Laurent[T any] = poly.Laurent[T]

// Truncated is a finite approximation Σ Coeffs[i]·z^(Start+i) + O(z^Precision).
type Truncated[T any] struct {
	Start     int
	Coeffs    []T
	Precision int
}

// Truncate returns the exact series agreeing with s below d and vanishing
// from d on.
func (s *Series[T]) Truncate(d int) (*Series[T], error) {
	e := s.eng
	switch v := s.node.(type) {
	case *zeroNode[T]:
		return s, nil
	case *exactNode[T]:
		return e.wrap(e.truncateExact(v, d)), nil
	}
	lo := s.node.approx()
	if d <= lo {
		return e.wrap(e.zero(s.node.sparse())), nil
	}
	coeffs, err := s.Slice(From(lo), Until(d))
	if err != nil {
		return nil, err
	}
	return e.wrap(e.exact(e.ops.Normalize(lo, coeffs), e.ring.Zero(), 0, s.node.sparse())), nil
}

// ApproximateSeries lists the coefficients from min(0, valuation) up to
// precision-1.
func (s *Series[T]) ApproximateSeries(precision int) (Truncated[T], error) {
	v, err := s.Valuation()
	if err != nil {
		return Truncated[T]{}, err
	}
	start := min(0, v, precision)
	coeffs, err := s.Slice(From(start), Until(precision))
	if err != nil {
		return Truncated[T]{}, err
	}
	return Truncated[T]{Start: start, Coeffs: coeffs, Precision: precision}, nil
}

// Polynomial returns s as a Laurent polynomial when it is known to be one.
func (s *Series[T]) Polynomial() (Laurent[T], error) {
	switch v := s.node.(type) {
	case *zeroNode[T]:
		return Laurent[T]{}, nil
	case *exactNode[T]:
		if !v.hasTail() {
			return v.p, nil
		}
	}
	return Laurent[T]{}, fmt.Errorf("%w: %s series", ErrNotAPolynomial, s.node.kind())
}

// PolynomialUpTo returns the coefficients of s up to z^degree inclusive.
func (s *Series[T]) PolynomialUpTo(degree int) (Laurent[T], error) {
	if isZeroNode(s.node) {
		return Laurent[T]{}, nil
	}
	lo := s.node.approx()
	if degree < lo {
		return Laurent[T]{}, nil
	}
	coeffs, err := s.Slice(From(lo), Until(degree+1))
	if err != nil {
		return Laurent[T]{}, err
	}
	return s.eng.ops.Normalize(lo, coeffs), nil
}

// MapCoefficients applies the pure function f to every coefficient from the
// approximate valuation of s on, zeros included.
func (s *Series[T]) MapCoefficients(f func(T) T) *Series[T] {
	return s.eng.wrap(s.eng.mapNode(s.node, s.eng.tableized(f), ""))
}

// MapNamed is MapCoefficients with a function registered through
// RegisterMap, so the result can be snapshotted.
func (s *Series[T]) MapNamed(name string) (*Series[T], error) {
	f, ok := s.eng.maps[name]
	if !ok {
		return nil, fmt.Errorf("%w: map %q", ErrUnknownFunction, name)
	}
	return s.eng.wrap(s.eng.mapNode(s.node, s.eng.tableized(f), name)), nil
}

func (e *Engine[T]) mapNode(x node[T], f func(T) T, name string) node[T] {
	switch v := x.(type) {
	case *zeroNode[T]:
		return x
	case *exactNode[T]:
		return e.collapsed("map", e.mapExact(v, f))
	}
	return newApply(e, x, infallible(f), name)
}

// MapCoefficients maps the coefficients of s into the ring of target, with the
// same reach as the method of the same name.
func MapCoefficients[S, T any](s *Series[S], f func(S) T, target *Engine[T]) *Series[T] {
	res, _ := ChangeRing(s, func(c S) (T, error) { return f(c), nil }, target)
	return res
}

// ChangeRing reinterprets the lazy computation of s under the ring of target.
// Closed forms are converted right away; anything else converts each
// coefficient when it is requested.
func ChangeRing[S, T any](s *Series[S], convert ring.Converter[S, T], target *Engine[T]) (*Series[T], error) {
	if target.cfg.MapTableSize > 0 {
		convert = pure.Tableize2[S, T, error](convert, target.cfg.MapTableSize)
	}
	switch v := s.node.(type) {
	case *zeroNode[S]:
		return target.wrap(target.zero(v.isSparse)), nil
	case *exactNode[S]:
		p, err := poly.Transform(v.span(), target.ops, convert)
		if err != nil {
			return nil, err
		}
		constant, err := convert(v.constant)
		if err != nil {
			return nil, err
		}
		return target.wrap(target.exact(p, constant, v.degree, v.isSparse)), nil
	}
	return target.wrap(newApply(target, s.node, convert, "")), nil
}
