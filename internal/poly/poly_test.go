package poly_test

import (
	"math/big"
	"testing"

	"github.com/on-the-ground/lazy_series_go/internal/poly"
	"github.com/on-the-ground/lazy_series_go/ring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zz = poly.Over(ring.Integers())

func p(shift int, coeffs ...int64) poly.Laurent[*big.Int] {
	cs := make([]*big.Int, len(coeffs))
	for i, c := range coeffs {
		cs[i] = big.NewInt(c)
	}
	return zz.Normalize(shift, cs)
}

func ints(q poly.Laurent[*big.Int]) []string {
	out := make([]string, len(q.Coeffs))
	for i, c := range q.Coeffs {
		out[i] = c.String()
	}
	return out
}

func TestNormalize(t *testing.T) {
	q := p(-2, 0, 0, 1, 2, 0)
	assert.Equal(t, 0, q.Shift)
	assert.Equal(t, []string{"1", "2"}, ints(q))
	assert.Equal(t, 1, q.Degree())

	assert.True(t, p(3, 0, 0).IsZero())
	assert.True(t, zz.Equal(p(3, 0), p(-1)))
}

func TestAddSubMul(t *testing.T) {
	a := p(0, 1, 1)      // 1 + z
	b := p(-1, 1, 0, -1) // z^-1 - z

	assert.True(t, zz.Equal(p(-1, 1, 1, 0), zz.Add(a, b)))
	assert.True(t, zz.Equal(p(-1, -1, 1, 2), zz.Sub(a, b)))
	assert.True(t, zz.Equal(p(-1, 1, 1, -1, -1), zz.Mul(a, b)))
	assert.True(t, zz.Sub(a, a).IsZero())
	assert.True(t, zz.Mul(a, p(0)).IsZero())
}

func TestDivExact(t *testing.T) {
	a := p(0, 1, 1)
	b := p(2, 1, -1)
	prod := zz.Mul(a, b)

	q, ok := zz.DivExact(prod, b)
	require.True(t, ok)
	assert.True(t, zz.Equal(a, q))

	_, ok = zz.DivExact(p(0, 1), p(0, 1, -1))
	assert.False(t, ok)

	// 2 is not a unit over ZZ
	_, ok = zz.DivExact(p(0, 2, 2), p(0, 2))
	assert.False(t, ok)

	q, ok = zz.DivExact(p(0), b)
	require.True(t, ok)
	assert.True(t, q.IsZero())
}

func TestCompose(t *testing.T) {
	f := p(0, 1, 0, 1) // 1 + z^2
	g := p(1, 1, 1)    // z + z^2
	// 1 + z^2 + 2z^3 + z^4
	assert.True(t, zz.Equal(p(0, 1, 0, 1, 2, 1), zz.Compose(f, g)))

	assert.Panics(t, func() { zz.Compose(p(-1, 1), g) })
}

func TestSubstituteMonomial(t *testing.T) {
	f := p(-1, 1, 0, 3) // z^-1 + 3z
	q, err := zz.SubstituteMonomial(f, big.NewInt(-1), 2)
	require.NoError(t, err)
	assert.True(t, zz.Equal(p(-2, -1, 0, 0, 0, -3), q))

	_, err = zz.SubstituteMonomial(f, big.NewInt(2), 1)
	assert.ErrorIs(t, err, ring.ErrNotInvertible)
}

func TestAccumulate(t *testing.T) {
	// (1 + 2z - 3z^3) / (1 - z) = 1 + 3z + 3z^2 + 0z^3 + ...
	sums, constant, degree := zz.Accumulate(p(0, 1, 2, 0, -3))
	assert.Equal(t, []string{"1", "3", "3"}, ints(sums))
	assert.Equal(t, "0", constant.String())
	assert.Equal(t, 3, degree)

	sums, constant, degree = zz.Accumulate(p(2, 5))
	assert.True(t, sums.IsZero())
	assert.Equal(t, "5", constant.String())
	assert.Equal(t, 2, degree)
}

func TestMapAndTransform(t *testing.T) {
	a := p(1, 2, 0, 4)
	doubled := zz.Map(a, func(c *big.Int) *big.Int { return new(big.Int).Lsh(c, 1) })
	assert.Equal(t, []string{"4", "0", "8"}, ints(doubled))
	bumped := zz.Map(a, func(c *big.Int) *big.Int { return new(big.Int).Add(c, big.NewInt(1)) })
	assert.Equal(t, []string{"3", "1", "5"}, ints(bumped))

	z4, err := ring.IntegersMod(4)
	require.NoError(t, err)
	mod := poly.Over(z4)
	reduced, err := poly.Transform(a, mod, ring.IntegerToModular(4))
	require.NoError(t, err)
	assert.Equal(t, 1, reduced.Shift)
	assert.Equal(t, []int64{2}, reduced.Coeffs)

	assert.True(t, zz.IsOne(p(0, 1)))
	assert.Equal(t, "6", zz.Sum(a).String())
}
