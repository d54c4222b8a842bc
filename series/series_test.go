package series_test

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/lazy_series_go/series"
)

func TestCatalanFromSelfReference(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		t.Run(fmt.Sprintf("sparse=%v", sparse), func(t *testing.T) {
			e := newQQ(t, series.Config{})
			c := catalan(t, e, sparse)
			assert.Equal(t, series.KindPlaceholder, c.Kind())
			assert.Equal(t, []string{"1", "1", "2", "5", "14", "42", "132"}, window(t, c, 0, 7))

			// a far coefficient straight away, then the cached prefix again
			v, err := c.Coefficient(15)
			require.NoError(t, err)
			assert.Equal(t, "9694845", v.RatString())
			assert.Equal(t, []string{"1", "1", "2", "5"}, window(t, c, 0, 4))
		})
	}
}

func TestGeometricScenario(t *testing.T) {
	e := newQQ(t, series.Config{})
	z := e.Gen(true)
	s, err := z.Div(e.FromPolynomial(rats(1, -2), 0, true))
	require.NoError(t, err)
	assert.True(t, s.Sparse())

	assert.Equal(t, []string{"0", "1", "2", "4", "8", "16"}, window(t, s, 0, 6))
	for k := 1; k <= 40; k++ {
		v, err := s.Coefficient(k)
		require.NoError(t, err)
		want := new(big.Rat).SetInt(new(big.Int).Lsh(big.NewInt(1), uint(k-1)))
		assert.Equal(t, want.RatString(), v.RatString(), "k=%d", k)
	}
}

func TestCoefficientBelowValuationIsZero(t *testing.T) {
	e := newQQ(t, series.Config{})
	calls := 0
	s := e.FromCoefficientFunction(func(n int) (*big.Rat, error) {
		calls++
		return big.NewRat(int64(n), 1), nil
	}, 2, false)

	v, err := s.Coefficient(-5)
	require.NoError(t, err)
	assert.Equal(t, "0", v.RatString())
	assert.Equal(t, 0, calls)

	assert.Equal(t, []string{"0", "0", "2", "3"}, window(t, s, 0, 4))
	assert.Equal(t, 2, calls)
}

func TestValuation(t *testing.T) {
	e := newQQ(t, series.Config{})
	s := e.FromCoefficientFunction(func(n int) (*big.Rat, error) {
		if n < 3 {
			return new(big.Rat), nil
		}
		return big.NewRat(1, 1), nil
	}, -2, false)
	v, err := s.Valuation()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, s.ApproximateValuation())

	v, err = e.Zero(false).Valuation()
	require.NoError(t, err)
	assert.Equal(t, series.Infinity, v)

	v, err = e.Monomial(big.NewRat(5, 1), -4, false).Valuation()
	require.NoError(t, err)
	assert.Equal(t, -4, v)
}

func TestValuationScanLimit(t *testing.T) {
	e := newQQ(t, series.Config{MaxValuationScan: 20})
	zero := e.FromCoefficientFunction(func(int) (*big.Rat, error) { return new(big.Rat), nil }, 0, true)
	_, err := zero.Valuation()
	assert.ErrorIs(t, err, series.ErrUndecidable)
}

func TestSlice(t *testing.T) {
	e := newQQ(t, series.Config{})
	s := successor(e, false)

	_, err := s.Slice(series.From(0))
	assert.ErrorIs(t, err, series.ErrUnsupportedOperation)
	_, err = s.Slice(series.From(0), series.Until(3), series.Step(0))
	assert.ErrorIs(t, err, series.ErrUnsupportedOperation)
	_, err = s.Slice(series.Until(3), series.Step(-1))
	assert.ErrorIs(t, err, series.ErrUnsupportedOperation)

	cs, err := s.Slice(series.Until(4))
	require.NoError(t, err)
	assert.Len(t, cs, 4)

	cs, err = s.Slice(series.From(1), series.Until(8), series.Step(3))
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "5", "8"}, ratStrings(cs))

	cs, err = s.Slice(series.From(3), series.Until(0), series.Step(-1))
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "3", "2"}, ratStrings(cs))

	cs, err = e.Zero(false).Slice(series.Until(5))
	require.NoError(t, err)
	assert.Empty(t, cs)
}

func TestDefine(t *testing.T) {
	e := newQQ(t, series.Config{})
	p := e.Placeholder(false, 0)
	assert.False(t, p.Defined())

	_, err := p.Coefficient(0)
	assert.ErrorIs(t, err, series.ErrUndefined)

	require.NoError(t, p.Define(successor(e, false)))
	assert.True(t, p.Defined())
	assert.ErrorIs(t, p.Define(e.One(false)), series.ErrAlreadyDefined)
	assert.ErrorIs(t, e.One(false).Define(e.One(false)), series.ErrAlreadyDefined)

	assert.Equal(t, []string{"1", "2", "3"}, window(t, p, 0, 3))
}

func TestDefineLinkedPlaceholders(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		t.Run(fmt.Sprintf("sparse=%v", sparse), func(t *testing.T) {
			e := newZZ(t, series.Config{})
			one, z := e.One(sparse), e.Gen(sparse)

			s := e.Placeholder(sparse, 0)
			u := e.Placeholder(sparse, 0)
			require.NoError(t, s.Define(one.Add(z.Mul(u.Mul(u).Mul(u)))))
			require.NoError(t, u.Define(one.Add(z.Mul(s.Mul(s)))))

			assert.Equal(t, []string{"1", "1", "3", "9", "34", "132", "546", "2327", "10191"}, window(t, s, 0, 9))
			assert.Equal(t, []string{"1", "1", "2", "7", "24", "95", "386", "1641", "7150"}, window(t, u, 0, 9))
		})
	}
}

func TestDefineWithDeclaredValuations(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		t.Run(fmt.Sprintf("sparse=%v", sparse), func(t *testing.T) {
			e := newZZ(t, series.Config{})
			mono := func(n int) *series.Series[*big.Int] { return e.Monomial(big.NewInt(1), n, sparse) }

			a := e.Placeholder(sparse, 5)
			b := e.Placeholder(sparse, 0)
			c := e.Placeholder(sparse, 2)
			require.NoError(t, a.Define(mono(5).Add(b.Mul(b))))
			require.NoError(t, b.Define(mono(5).Add(c.Mul(c))))
			require.NoError(t, c.Define(mono(2).Add(c.Mul(c)).Add(a.Mul(a))))

			assert.Equal(t, []string{"0", "0", "0", "0", "0", "1", "0", "0", "1", "2", "5", "4", "14", "10", "48"}, window(t, a, 0, 15))
			assert.Equal(t, []string{"0", "0", "0", "0", "1", "1", "2", "0", "5", "0", "14", "0", "44", "0", "138"}, window(t, b, 0, 15))
			assert.Equal(t, []string{"0", "0", "1", "0", "1", "0", "2", "0", "5", "0", "15", "0", "44", "2", "142"}, window(t, c, 0, 15))
		})
	}
}

func TestNonProductiveDefinition(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		t.Run(fmt.Sprintf("sparse=%v", sparse), func(t *testing.T) {
			e := newQQ(t, series.Config{})
			c := e.Placeholder(sparse, 0)
			// no factor of z: coefficient 0 needs itself
			require.NoError(t, c.Define(e.One(sparse).Add(c.Mul(c))))

			_, err := c.Coefficient(0)
			assert.ErrorIs(t, err, series.ErrNonProductive)
			_, err = c.Coefficient(0)
			assert.ErrorIs(t, err, series.ErrNonProductive)
		})
	}
}

func TestDirectSelfBindingIsNonProductive(t *testing.T) {
	e := newQQ(t, series.Config{})
	c := e.Placeholder(false, 0)
	require.NoError(t, c.Define(c))
	_, err := c.Coefficient(2)
	assert.ErrorIs(t, err, series.ErrNonProductive)
}

func TestMaxDepth(t *testing.T) {
	e := newQQ(t, series.Config{MaxDepth: 64})
	// G = 1 + z·G: sparse evaluation of a far coefficient recurses through
	// every lower one, dense evaluation fills them in order.
	build := func(sparse bool) *series.Series[*big.Rat] {
		g := e.Placeholder(sparse, 0)
		require.NoError(t, g.Define(e.One(sparse).Add(e.Gen(sparse).Mul(g))))
		return g
	}

	g := build(true)
	_, err := g.Coefficient(200)
	assert.ErrorIs(t, err, series.ErrDepthExceeded)
	assert.NotErrorIs(t, err, series.ErrNonProductive)

	// the definition is productive: climbing up in small steps succeeds
	for n := 0; n <= 200; n += 10 {
		_, err = g.Coefficient(n)
		require.NoError(t, err)
	}
	v, err := g.Coefficient(200)
	require.NoError(t, err)
	assert.Equal(t, "1", v.RatString())

	v, err = build(false).Coefficient(200)
	require.NoError(t, err)
	assert.Equal(t, "1", v.RatString())
}

func TestMixingEnginesPanics(t *testing.T) {
	a := newQQ(t, series.Config{})
	b := newQQ(t, series.Config{})
	assert.Panics(t, func() { a.One(false).Add(b.One(false)) })
}

func TestConfigDefaults(t *testing.T) {
	cfg := series.DefaultConfig()
	assert.Equal(t, 50, cfg.EqualityLookahead)
	assert.Equal(t, 0, cfg.MaxValuationScan)
	assert.Equal(t, 1<<16, cfg.MaxDepth)
	assert.NotNil(t, cfg.Logger)

	e := newQQ(t, series.Config{EqualityLookahead: -3, MaxDepth: 10})
	assert.Equal(t, 50, e.Config().EqualityLookahead)
	assert.Equal(t, 10, e.Config().MaxDepth)
}
