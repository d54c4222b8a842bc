package series

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/on-the-ground/lazy_series_go/internal/cache"
)

// Infinity is the valuation of the zero series.
const Infinity = math.MaxInt

// Kind names the variant of the node behind a series.
type Kind string

const (
	KindZero        Kind = "zero"
	KindExact       Kind = "exact"
	KindFunction    Kind = "function"
	KindPlaceholder Kind = "placeholder"
	KindNegate      Kind = "negate"
	KindScale       Kind = "scale"
	KindAdd         Kind = "add"
	KindSubtract    Kind = "subtract"
	KindMultiply    Kind = "multiply"
	KindDivide      Kind = "divide"
	KindInvert      Kind = "invert"
	KindCompose     Kind = "compose"
	KindApply       Kind = "apply"
)

// node is the closed set of series variants.
type node[T any] interface {
	id() string
	kind() Kind
	// approx is a lower bound of the valuation that only ever grows.
	approx() int
	coefficient(n int) (T, error)
	sparse() bool
	operands() []node[T]
}

func newID() string { return uuid.New().String() }

// lazy is shared by every variant whose coefficients come from a formula.
type lazy[T any] struct {
	ident    string
	eng      *Engine[T]
	lo       int
	isSparse bool
	sig      string
	memo     cache.Cache[T]
	formula  cache.Formula[T]
}

func newLazy[T any](e *Engine[T], lo int, sparse bool) lazy[T] {
	l := lazy[T]{ident: newID(), eng: e, lo: lo, isSparse: sparse}
	if sparse {
		l.memo = cache.NewSparse[T]()
	} else {
		l.memo = cache.NewDense[T](lo)
	}
	return l
}

func (l *lazy[T]) id() string { return l.ident }

func (l *lazy[T]) approx() int { return l.lo }

func (l *lazy[T]) sparse() bool { return l.isSparse }

// raise promotes the valuation bound once coefficients below v are known to vanish.
func (l *lazy[T]) raise(v int) {
	if v > l.lo {
		l.lo = v
	}
}

func (l *lazy[T]) coefficient(n int) (T, error) {
	if n < l.lo {
		return l.eng.ring.Zero(), nil
	}
	if err := l.eng.enter(); err != nil {
		var zero T
		return zero, err
	}
	defer l.eng.leave()
	return l.memo.Get(n, l.formula)
}

func (l *lazy[T]) base() *lazy[T] { return l }

type lazyNode[T any] interface {
	node[T]
	base() *lazy[T]
}

func signatureOf[T any](n node[T]) string {
	if l, ok := n.(lazyNode[T]); ok {
		return l.base().sig
	}
	return ""
}

func signature[T any](k Kind, sparse bool, extra string, operands ...node[T]) string {
	var b strings.Builder
	b.WriteString(string(k))
	if sparse {
		b.WriteString("|sparse")
	}
	for _, op := range operands {
		b.WriteByte('|')
		b.WriteString(op.id())
	}
	if extra != "" {
		b.WriteByte('|')
		b.WriteString(extra)
	}
	return b.String()
}
