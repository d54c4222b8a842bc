package series_test

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/lazy_series_go/ring"
	"github.com/on-the-ground/lazy_series_go/series"
)

// geometric is 1/(1−z) in closed form.
func geometric(t *testing.T, e *series.Engine[*big.Rat], sparse bool) *series.Series[*big.Rat] {
	t.Helper()
	g, err := e.FromPolynomialWithTail(nil, 0, sparse, big.NewRat(1, 1), 0)
	require.NoError(t, err)
	return g
}

func TestCancellation(t *testing.T) {
	e := newQQ(t, series.Config{})
	f := successor(e, false)

	assert.Equal(t, series.KindZero, f.Add(f.Neg()).Kind())
	assert.Equal(t, series.KindZero, f.Neg().Add(f).Kind())
	assert.Equal(t, series.KindZero, f.Sub(f).Kind())

	g := f.Mul(e.Gen(false)).Add(f)
	h := f.Add(f.Mul(e.Gen(false)))
	assert.Equal(t, series.KindZero, g.Sub(h).Kind())

	// different sources are never assumed equal
	other := successor(e, false)
	assert.Equal(t, series.KindSubtract, f.Sub(other).Kind())
	assert.Equal(t, []string{"0", "0", "0"}, window(t, f.Sub(other), 0, 3))
}

func TestIdentities(t *testing.T) {
	e := newQQ(t, series.Config{})
	f := successor(e, false)

	assert.Equal(t, f.ID(), f.Add(e.Zero(false)).ID())
	assert.Equal(t, f.ID(), e.Zero(false).Add(f).ID())
	assert.Equal(t, f.ID(), f.Mul(e.One(false)).ID())
	assert.Equal(t, f.ID(), e.One(false).Mul(f).ID())
	assert.Equal(t, f.ID(), f.Neg().Neg().ID())
	assert.Equal(t, f.ID(), f.Scale(big.NewRat(1, 1)).ID())
	assert.Equal(t, series.KindZero, f.Scale(new(big.Rat)).Kind())
	assert.Equal(t, series.KindZero, f.Mul(e.Zero(false)).Kind())

	neg := e.Zero(false).Sub(f)
	assert.Equal(t, series.KindNegate, neg.Kind())
	assert.Equal(t, []string{"-1", "-2", "-3"}, window(t, neg, 0, 3))

	q, err := f.Div(e.One(false))
	require.NoError(t, err)
	assert.Equal(t, f.ID(), q.ID())
}

func TestClosedForms(t *testing.T) {
	e := newQQ(t, series.Config{})
	geo := geometric(t, e, false)
	oneMinusZ := e.FromPolynomial(rats(1, -1), 0, false)

	p := geo.Mul(oneMinusZ)
	assert.Equal(t, series.KindExact, p.Kind())
	poly, err := p.Polynomial()
	require.NoError(t, err)
	assert.Equal(t, 0, poly.Shift)
	assert.Equal(t, []string{"1"}, ratStrings(poly.Coeffs))

	inv, err := geo.Invert()
	require.NoError(t, err)
	assert.Equal(t, series.KindExact, inv.Kind())
	eq, err := inv.Equal(oneMinusZ)
	require.NoError(t, err)
	assert.True(t, eq)

	back, err := e.One(false).Div(oneMinusZ)
	require.NoError(t, err)
	assert.Equal(t, series.KindExact, back.Kind())
	assert.Equal(t, []string{"1", "1", "1", "1"}, window(t, back, 0, 4))

	// 2 + 3z + 5/(1−z)·z² + 1/(1−z)
	sum, err := e.FromPolynomialWithTail(rats(2, 3), 0, false, big.NewRat(5, 1), 2)
	require.NoError(t, err)
	total := sum.Add(geo)
	assert.Equal(t, series.KindExact, total.Kind())
	assert.Equal(t, []string{"3", "4", "6", "6", "6"}, window(t, total, 0, 5))

	scaled := geo.Scale(big.NewRat(-2, 1)).Neg()
	assert.Equal(t, series.KindExact, scaled.Kind())
	assert.Equal(t, []string{"2", "2"}, window(t, scaled, 5, 7))

	// two tails multiply into a series that is not eventually constant
	sq := geo.Mul(geo)
	assert.Equal(t, series.KindMultiply, sq.Kind())
	assert.Equal(t, []string{"1", "2", "3", "4"}, window(t, sq, 0, 4))

	cube, err := e.FromPolynomial(rats(1, 1), 0, false).Pow(3)
	require.NoError(t, err)
	assert.Equal(t, series.KindExact, cube.Kind())
	assert.Equal(t, []string{"1", "3", "3", "1", "0"}, window(t, cube, 0, 5))
}

func TestPolynomialWithTailValidation(t *testing.T) {
	e := newQQ(t, series.Config{})
	_, err := e.FromPolynomialWithTail(rats(1, 2, 3), 0, false, big.NewRat(1, 1), 2)
	assert.ErrorIs(t, err, series.ErrInvalidDegree)

	s, err := e.FromPolynomialWithTail(nil, 0, false, new(big.Rat), 7)
	require.NoError(t, err)
	assert.Equal(t, series.KindZero, s.Kind())

	// a tail equal to the last coefficient is folded into it
	s, err = e.FromPolynomialWithTail(rats(4, 1, 1), 0, false, big.NewRat(1, 1), 3)
	require.NoError(t, err)
	other, err := e.FromPolynomialWithTail(rats(4), 0, false, big.NewRat(1, 1), 1)
	require.NoError(t, err)
	eq, err := s.Equal(other)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestLaurentDivision(t *testing.T) {
	e := newQQ(t, series.Config{})
	den := e.FromPolynomial(rats(1, 1), 1, false)
	q, err := e.One(false).Div(den)
	require.NoError(t, err)
	assert.Equal(t, series.KindDivide, q.Kind())
	assert.Equal(t, -1, q.ApproximateValuation())
	assert.Equal(t, []string{"1", "-1", "1", "-1"}, window(t, q, -1, 3))

	back := q.Mul(den)
	assert.Equal(t, []string{"0", "1", "0", "0", "0"}, window(t, back, -1, 4))
}

func TestInverseOfLazySeries(t *testing.T) {
	for _, sparse := range []bool{false, true} {
		e := newQQ(t, series.Config{})
		f := successor(e, sparse)
		inv, err := f.Invert()
		require.NoError(t, err)
		assert.Equal(t, series.KindInvert, inv.Kind())
		// 1/Σ(n+1)zⁿ = (1−z)²
		assert.Equal(t, []string{"1", "-2", "1", "0", "0", "0"}, window(t, inv, 0, 6))

		prod := f.Mul(inv)
		assert.Equal(t, []string{"1", "0", "0", "0", "0", "0", "0", "0"}, window(t, prod, 0, 8))

		again, err := inv.Invert()
		require.NoError(t, err)
		assert.Equal(t, f.ID(), again.ID())
	}
}

func TestQuotientOfLazySeries(t *testing.T) {
	e := newQQ(t, series.Config{})
	f := successor(e, false)
	q, err := f.Div(f)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "0", "0", "0"}, window(t, q, 0, 4))

	shifted := f.Mul(e.Monomial(big.NewRat(1, 1), 2, false))
	q, err = f.Div(shifted)
	require.NoError(t, err)
	assert.Equal(t, -2, q.ApproximateValuation())
	assert.Equal(t, []string{"1", "0", "0"}, window(t, q, -2, 1))
}

func TestDivisionErrors(t *testing.T) {
	e := newQQ(t, series.Config{})
	f := successor(e, false)

	_, err := f.Div(e.Zero(false))
	assert.ErrorIs(t, err, series.ErrDivisionByZero)
	_, err = e.Zero(false).Invert()
	assert.ErrorIs(t, err, series.ErrDivisionByZero)
	_, err = e.Zero(false).Pow(-2)
	assert.ErrorIs(t, err, series.ErrDivisionByZero)

	zz := newZZ(t, series.Config{})
	two := fromSlice(zz, 0, []int64{2, 1})
	_, err = two.Invert()
	assert.ErrorIs(t, err, ring.ErrNotInvertible)
	_, err = zz.One(false).Div(two)
	assert.ErrorIs(t, err, ring.ErrNotInvertible)

	unit := fromSlice(zz, 0, []int64{-1, 1})
	inv, err := unit.Invert()
	require.NoError(t, err)
	assert.Equal(t, []string{"-1", "-1", "-1", "-1"}, window(t, inv, 0, 4))
}

func TestPow(t *testing.T) {
	e := newQQ(t, series.Config{})
	f := successor(e, false)

	p0, err := f.Pow(0)
	require.NoError(t, err)
	assert.Equal(t, series.KindExact, p0.Kind())

	p1, err := f.Pow(1)
	require.NoError(t, err)
	assert.Equal(t, f.ID(), p1.ID())

	// Σ(n+1)zⁿ = 1/(1−z)², so its square has coefficients C(n+3, 3)
	p2, err := f.Pow(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4", "10", "20", "35"}, window(t, p2, 0, 5))

	p5, err := f.Pow(5)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "10", "55"}, window(t, p5, 0, 3))

	m2, err := f.Pow(-2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "-4", "6", "-4", "1", "0"}, window(t, m2, 0, 6))

	inv, err := geometric(t, e, false).Pow(-1)
	require.NoError(t, err)
	assert.Equal(t, series.KindExact, inv.Kind())
	assert.Equal(t, []string{"1", "-1", "0"}, window(t, inv, 0, 3))
}

func TestConvolutionMatchesDirectSum(t *testing.T) {
	rnd := rand.New(rand.NewPCG(7, 11))
	draw := func(n int) []int64 {
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(rnd.IntN(19) - 9)
		}
		return out
	}

	for round := 0; round < 10; round++ {
		e := newZZ(t, series.Config{})
		as, bs := draw(8), draw(6)
		a := fromSlice(e, -2, as)
		b := fromSlice(e, 1, bs)
		pb := e.FromPolynomial(bigs(bs...), 1, false)

		lazyProd := a.Mul(b)
		mixedProd := a.Mul(pb)
		for n := -1; n < 13; n++ {
			want := new(big.Int)
			for i, x := range as {
				j := n - (-2 + i) - 1
				if j >= 0 && j < len(bs) {
					want.Add(want, big.NewInt(x*bs[j]))
				}
			}
			got, err := lazyProd.Coefficient(n)
			require.NoError(t, err)
			assert.Equal(t, want.String(), got.String(), "round %d, n=%d", round, n)

			got, err = mixedProd.Coefficient(n)
			require.NoError(t, err)
			assert.Equal(t, want.String(), got.String(), "round %d, n=%d", round, n)
		}
	}
}

func TestInterning(t *testing.T) {
	e := newQQ(t, series.Config{InternCapacity: 1024})
	a := successor(e, false)
	b := successor(e, false)

	assert.Equal(t, a.Add(b).ID(), b.Add(a).ID())
	assert.Equal(t, a.Mul(b).ID(), b.Mul(a).ID())
	assert.Equal(t, a.Neg().ID(), a.Neg().ID())
	assert.NotEqual(t, a.Sub(b).ID(), b.Sub(a).ID())
	assert.Equal(t, a.Sub(b).ID(), a.Sub(b).ID())

	half := big.NewRat(1, 2)
	assert.Equal(t, a.Scale(half).ID(), a.Scale(big.NewRat(2, 4)).ID())
	assert.NotEqual(t, a.Scale(half).ID(), a.Scale(big.NewRat(1, 3)).ID())

	q1, err := a.Div(b)
	require.NoError(t, err)
	q2, err := a.Div(b)
	require.NoError(t, err)
	assert.Equal(t, q1.ID(), q2.ID())
	assert.Equal(t, []string{"1", "0", "0"}, window(t, q1, 0, 3))

	// shared nodes keep their cached coefficients
	sum := a.Add(b)
	assert.Equal(t, []string{"2", "4", "6"}, window(t, sum, 0, 3))
	assert.Equal(t, []string{"2", "4", "6"}, window(t, b.Add(a), 0, 3))

	plain := newQQ(t, series.Config{})
	c := successor(plain, false)
	assert.NotEqual(t, c.Add(c).ID(), c.Add(c).ID())
}
