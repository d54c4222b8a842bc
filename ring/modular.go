package ring

import (
	"fmt"
	"math/bits"
	"strconv"
)

type integersMod struct {
	m int64
}

// IntegersMod returns the ring Z/mZ with residues represented in [0, m).
func IntegersMod(m int64) (Ring[int64], error) {
	if m < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidModulus, m)
	}
	return integersMod{m: m}, nil
}

func (r integersMod) Name() string { return "Z/" + strconv.FormatInt(r.m, 10) }

func (r integersMod) Zero() int64 { return 0 }

func (r integersMod) One() int64 { return 1 }

func (r integersMod) FromInt64(n int64) int64 {
	n %= r.m
	if n < 0 {
		n += r.m
	}
	return n
}

func (r integersMod) Add(a, b int64) int64 {
	s := uint64(a) + uint64(b)
	if s >= uint64(r.m) {
		s -= uint64(r.m)
	}
	return int64(s)
}

func (r integersMod) Sub(a, b int64) int64 {
	if a >= b {
		return a - b
	}
	return a - b + r.m
}

func (r integersMod) Neg(a int64) int64 {
	if a == 0 {
		return 0
	}
	return r.m - a
}

func (r integersMod) Mul(a, b int64) int64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return int64(bits.Rem64(hi, lo, uint64(r.m)))
}

// Inverse uses the extended Euclidean algorithm; a is a unit iff gcd(a, m) = 1.
func (r integersMod) Inverse(a int64) (int64, error) {
	t, newT := int64(0), int64(1)
	rem, newRem := r.m, a
	for newRem != 0 {
		q := rem / newRem
		t, newT = newT, t-q*newT
		rem, newRem = newRem, rem-q*newRem
	}
	if rem != 1 {
		return 0, fmt.Errorf("%w: %d in %s", ErrNotInvertible, a, r.Name())
	}
	return r.FromInt64(t), nil
}

func (r integersMod) IsZero(a int64) bool { return a == 0 }

func (r integersMod) Equal(a, b int64) bool { return a == b }

func (r integersMod) Format(a int64) string { return strconv.FormatInt(a, 10) }

func (r integersMod) Parse(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q in %s: %w", ErrInvalidElement, s, r.Name(), err)
	}
	return r.FromInt64(v), nil
}
