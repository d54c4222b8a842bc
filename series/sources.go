package series

import (
	"fmt"

	"github.com/on-the-ground/lazy_series_go/internal/cache"
)

// funcNode draws its coefficients from a user function.
type funcNode[T any] struct {
	lazy[T]
	name string
	f    CoefficientFunc[T]
}

func (e *Engine[T]) newFunc(f CoefficientFunc[T], name string, valuation int, sparse bool) *funcNode[T] {
	n := &funcNode[T]{lazy: newLazy(e, valuation, sparse), name: name, f: f}
	n.formula = cache.Formula[T](f)
	return n
}

func (n *funcNode[T]) kind() Kind          { return KindFunction }
func (n *funcNode[T]) operands() []node[T] { return nil }

// placeholderNode is declared first and bound to its defining expression
// later, which may refer back to the placeholder.
type placeholderNode[T any] struct {
	lazy[T]
	target node[T]
}

func (e *Engine[T]) newPlaceholder(valuation int, sparse bool) *placeholderNode[T] {
	n := &placeholderNode[T]{lazy: newLazy(e, valuation, sparse)}
	n.formula = n.compute
	return n
}

func (n *placeholderNode[T]) kind() Kind          { return KindPlaceholder }
func (n *placeholderNode[T]) operands() []node[T] { return nil }

func (n *placeholderNode[T]) compute(k int) (T, error) {
	if n.target == nil {
		var zero T
		return zero, fmt.Errorf("%w: coefficient %d of placeholder %s", ErrUndefined, k, n.ident)
	}
	return n.target.coefficient(k)
}
