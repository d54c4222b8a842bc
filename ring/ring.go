// Package ring provides the commutative coefficient rings series are built over.
package ring

import (
	"fmt"
)

var (
	ErrNotInvertible  = fmt.Errorf("element is not invertible")
	ErrNotIntegral    = fmt.Errorf("element is not an integer")
	ErrInvalidModulus = fmt.Errorf("modulus must be at least 2")
	ErrInvalidElement = fmt.Errorf("invalid ring element")
)

// Ring is a commutative ring with unity over element type T.
// Implementations never mutate their arguments, so elements may be shared
// freely between caches and series.
type Ring[T any] interface {
	// Name identifies the ring in snapshots, e.g. "ZZ", "QQ" or "Z/7".
	Name() string
	Zero() T
	One() T
	FromInt64(int64) T
	Add(a, b T) T
	Sub(a, b T) T
	Neg(a T) T
	Mul(a, b T) T
	// Inverse returns the multiplicative inverse of a unit, or ErrNotInvertible.
	Inverse(a T) (T, error)
	IsZero(a T) bool
	Equal(a, b T) bool
	// Format and Parse round-trip every element.
	Format(a T) string
	Parse(s string) (T, error)
}

// Converter maps elements of one ring into another.
type Converter[S, T any] func(S) (T, error)

// IsUnit reports whether a has a multiplicative inverse in r.
func IsUnit[T any](r Ring[T], a T) bool {
	_, err := r.Inverse(a)
	return err == nil
}

// Pow raises a to a non-negative power by repeated squaring.
func Pow[T any](r Ring[T], a T, n int) T {
	res := r.One()
	for n > 0 {
		if n&1 == 1 {
			res = r.Mul(res, a)
		}
		a = r.Mul(a, a)
		n >>= 1
	}
	return res
}
