package pure

import (
	"fmt"
)

// ComparableOrStringer is an input that is either comparable or a fmt.Stringer.
// Stringers are keyed by their text, so pointer types such as *big.Int are
// keyed by value.
type ComparableOrStringer any
type ComparableOrString any

// Tableize memoizes a pure function of one argument. At most about
// 2*maxTableSize results are kept.
func Tableize[I ComparableOrStringer, O any](
	pureFn func(I) O,
	maxTableSize uint32,
) func(I) O {
	memo := NewTable[O](maxTableSize)
	return func(i I) O {
		key := tableKey(i)
		if v, ok := memo.Load(key); ok {
			return v
		}
		v := pureFn(i)
		memo.Store(key, v)
		return v
	}
}

type pair[O1, O2 any] struct {
	o1 O1
	o2 O2
}

// Tableize2 memoizes a pure function with two results, typically a value and
// an error.
func Tableize2[I ComparableOrStringer, O1, O2 any](
	pureFn func(I) (O1, O2),
	maxTableSize uint32,
) func(I) (O1, O2) {
	tableized := Tableize(
		func(i I) pair[O1, O2] {
			o1, o2 := pureFn(i)
			return pair[O1, O2]{o1, o2}
		},
		maxTableSize,
	)
	return func(i I) (O1, O2) {
		p := tableized(i)
		return p.o1, p.o2
	}
}

func tableKey(i ComparableOrStringer) ComparableOrString {
	if stringer, ok := i.(fmt.Stringer); ok {
		return stringer.String()
	}
	return i
}
