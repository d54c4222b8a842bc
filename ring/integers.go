package ring

import (
	"fmt"
	"math/big"
)

type integers struct{}

// Integers returns the ring ZZ of arbitrary precision integers.
func Integers() Ring[*big.Int] { return integers{} }

func (integers) Name() string { return "ZZ" }

func (integers) Zero() *big.Int { return new(big.Int) }

func (integers) One() *big.Int { return big.NewInt(1) }

func (integers) FromInt64(n int64) *big.Int { return big.NewInt(n) }

func (integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }

func (integers) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }

func (integers) Neg(a *big.Int) *big.Int { return new(big.Int).Neg(a) }

func (integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }

// Inverse succeeds only for the units 1 and -1.
func (integers) Inverse(a *big.Int) (*big.Int, error) {
	if a.IsInt64() && (a.Int64() == 1 || a.Int64() == -1) {
		return new(big.Int).Set(a), nil
	}
	return nil, fmt.Errorf("%w: %s in ZZ", ErrNotInvertible, a)
}

func (integers) IsZero(a *big.Int) bool { return a.Sign() == 0 }

func (integers) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

func (integers) Format(a *big.Int) string { return a.String() }

func (integers) Parse(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q in ZZ", ErrInvalidElement, s)
	}
	return v, nil
}

// IntegerToRational embeds ZZ into QQ.
func IntegerToRational() Converter[*big.Int, *big.Rat] {
	return func(a *big.Int) (*big.Rat, error) {
		return new(big.Rat).SetInt(a), nil
	}
}

// IntegerToModular reduces integers modulo m.
func IntegerToModular(m int64) Converter[*big.Int, int64] {
	mod := big.NewInt(m)
	return func(a *big.Int) (int64, error) {
		if m < 2 {
			return 0, fmt.Errorf("%w: %d", ErrInvalidModulus, m)
		}
		return new(big.Int).Mod(a, mod).Int64(), nil
	}
}
