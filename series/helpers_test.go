package series_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/lazy_series_go/ring"
	"github.com/on-the-ground/lazy_series_go/series"
)

func newQQ(t *testing.T, cfg series.Config) *series.Engine[*big.Rat] {
	t.Helper()
	e, err := series.New(ring.Rationals(), cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func newZZ(t *testing.T, cfg series.Config) *series.Engine[*big.Int] {
	t.Helper()
	e, err := series.New(ring.Integers(), cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func rats(ns ...int64) []*big.Rat {
	out := make([]*big.Rat, len(ns))
	for i, n := range ns {
		out[i] = big.NewRat(n, 1)
	}
	return out
}

func bigs(ns ...int64) []*big.Int {
	out := make([]*big.Int, len(ns))
	for i, n := range ns {
		out[i] = big.NewInt(n)
	}
	return out
}

// window formats the coefficients from..until-1 of s.
func window[T any](t *testing.T, s *series.Series[T], from, until int) []string {
	t.Helper()
	cs, err := s.Slice(series.From(from), series.Until(until))
	require.NoError(t, err)
	r := s.Engine().Ring()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = r.Format(c)
	}
	return out
}

// catalan builds C = 1 + z·C².
func catalan[T any](t *testing.T, e *series.Engine[T], sparse bool) *series.Series[T] {
	t.Helper()
	c := e.Placeholder(sparse, 0)
	z := e.Gen(sparse)
	require.NoError(t, c.Define(e.One(sparse).Add(z.Mul(c.Mul(c)))))
	return c
}

// successor is the lazy series Σ (n+1)·zⁿ.
func successor(e *series.Engine[*big.Rat], sparse bool) *series.Series[*big.Rat] {
	return e.FromCoefficientFunction(func(n int) (*big.Rat, error) {
		return big.NewRat(int64(n)+1, 1), nil
	}, 0, sparse)
}

// fromSlice is a lazy series with the given coefficients from shift on.
func fromSlice(e *series.Engine[*big.Int], shift int, cs []int64) *series.Series[*big.Int] {
	return e.FromCoefficientFunction(func(n int) (*big.Int, error) {
		i := n - shift
		if i < 0 || i >= len(cs) {
			return new(big.Int), nil
		}
		return big.NewInt(cs[i]), nil
	}, shift, false)
}

func ratStrings(cs []*big.Rat) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.RatString()
	}
	return out
}
