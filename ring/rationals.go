package ring

import (
	"fmt"
	"math/big"
)

type rationals struct{}

// Rationals returns the field QQ of arbitrary precision fractions.
func Rationals() Ring[*big.Rat] { return rationals{} }

func (rationals) Name() string { return "QQ" }

func (rationals) Zero() *big.Rat { return new(big.Rat) }

func (rationals) One() *big.Rat { return big.NewRat(1, 1) }

func (rationals) FromInt64(n int64) *big.Rat { return big.NewRat(n, 1) }

func (rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }

func (rationals) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }

func (rationals) Neg(a *big.Rat) *big.Rat { return new(big.Rat).Neg(a) }

func (rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }

func (rationals) Inverse(a *big.Rat) (*big.Rat, error) {
	if a.Sign() == 0 {
		return nil, fmt.Errorf("%w: 0 in QQ", ErrNotInvertible)
	}
	return new(big.Rat).Inv(a), nil
}

func (rationals) IsZero(a *big.Rat) bool { return a.Sign() == 0 }

func (rationals) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }

func (rationals) Format(a *big.Rat) string { return a.RatString() }

func (rationals) Parse(s string) (*big.Rat, error) {
	v, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q in QQ", ErrInvalidElement, s)
	}
	return v, nil
}

// RationalToInteger maps fractions with denominator 1 back into ZZ.
func RationalToInteger() Converter[*big.Rat, *big.Int] {
	return func(a *big.Rat) (*big.Int, error) {
		if !a.IsInt() {
			return nil, fmt.Errorf("%w: %s", ErrNotIntegral, a.RatString())
		}
		return new(big.Int).Set(a.Num()), nil
	}
}
